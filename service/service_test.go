package service

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/sbom/cidutil"
	"xdao.co/sbom/codec"
	"xdao.co/sbom/internal/bomtest"
	"xdao.co/sbom/model"
	"xdao.co/sbom/specversion"
	"xdao.co/sbom/storage"
)

func start(t *testing.T, srv *Server) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	RegisterBOMServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	cc, err := grpc.NewClient(
		"passthrough:///bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) { return lis.Dial() }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { _ = cc.Close() })
	return cc
}

func fixture(t *testing.T, f specversion.Format) []byte {
	t.Helper()
	b, err := codec.Marshal(bomtest.Full(), f)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return b
}

func TestConvertAndValidateOverGRPC(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	cas := &storage.MemCAS{}
	client := NewClient(start(t, &Server{Options: model.Options{CAS: cas}, Metrics: metrics}))

	conv, err := client.Convert(ctx, model.ConvertRequest{
		Input:  model.BlobRef{Bytes: fixture(t, specversion.JSON)},
		Output: model.Output{Format: "xml", SpecVersion: "1.3", Store: true},
	})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if conv.Output.SpecVersion != "1.3" || !conv.Output.Stored || cas.Len() != 1 {
		t.Fatalf("Convert = %+v (stored %d)", conv.Output, cas.Len())
	}

	val, err := client.Validate(ctx, model.ValidateRequest{Input: model.BlobRef{CID: conv.Output.CID}})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !val.Valid || val.Format != "xml" || val.SpecVersion != "1.3" {
		t.Fatalf("Validate = %+v", val)
	}

	if got := testutil.ToFloat64(metrics.requests.WithLabelValues("Convert", "OK")); got != 1 {
		t.Fatalf("Convert OK count = %v", got)
	}
	if got := testutil.CollectAndCount(metrics.duration); got != len(methods) {
		t.Fatalf("duration series = %d", got)
	}
}

func TestMergeAndDiffOverGRPC(t *testing.T) {
	ctx := context.Background()
	client := NewClient(start(t, &Server{}))
	in := model.BlobRef{Bytes: fixture(t, specversion.Protobuf)}

	merged, err := client.Merge(ctx, model.MergeRequest{
		Inputs:  []model.BlobRef{in, in},
		Subject: &model.Subject{Name: "suite", Version: "1"},
	})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	diff, err := client.Diff(ctx, model.DiffRequest{From: in, To: model.BlobRef{Bytes: merged.Output.Bytes}})
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	lib := diff.Components["org.acme:lib"]
	if len(lib.Unchanged) != 1 || len(lib.Added) != 0 || len(lib.Removed) != 0 {
		t.Fatalf("lib diff = %+v", lib)
	}
	// The inputs' metadata component is listed in the merged document.
	app := diff.Components["org.acme:app"]
	if len(app.Added) != 1 || app.Added[0].BomRef != "app" {
		t.Fatalf("app diff = %+v", app)
	}
}

func TestErrorsKeepTheirCode(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	cc := start(t, &Server{Metrics: metrics})
	client := NewClient(cc)

	_, err = client.Convert(ctx, model.ConvertRequest{Input: model.BlobRef{Bytes: []byte(`{"bomFormat":`)}})
	var ce *model.CodedError
	if !errors.As(err, &ce) || ce.Code != model.ErrParse || ce.RuleID == "" {
		t.Fatalf("Convert malformed: %v", err)
	}
	if got := testutil.ToFloat64(metrics.requests.WithLabelValues("Convert", "PARSE")); got != 1 {
		t.Fatalf("PARSE count = %v", got)
	}

	_, err = client.Convert(ctx, model.ConvertRequest{Input: model.BlobRef{CID: cidutil.String([]byte("x"))}})
	if !errors.As(err, &ce) || ce.Code != model.ErrMissingCAS {
		t.Fatalf("Convert by CID without CAS: %v", err)
	}

	// Unknown request fields are rejected before the operation runs.
	out := new(wrapperspb.BytesValue)
	err = cc.Invoke(ctx, "/"+serviceName+"/Diff", wrapperspb.Bytes([]byte(`{"from":{},"bogus":1}`)), out)
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("unknown field: %v", err)
	}
}

func TestNewMetricsRejectsDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewMetrics(reg); err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	if _, err := NewMetrics(reg); err == nil {
		t.Fatalf("second registration accepted")
	}
}
