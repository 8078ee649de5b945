package main

import (
	"bytes"
	"context"
	"net"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"xdao.co/sbom/cidutil"
	"xdao.co/sbom/codec"
	"xdao.co/sbom/internal/bomtest"
	"xdao.co/sbom/model"
	"xdao.co/sbom/service"
	"xdao.co/sbom/specversion"
	"xdao.co/sbom/storage"
	"xdao.co/sbom/storage/grpccas"
)

func TestListBackends(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"--list-backends"}, &out, &errOut); code != 0 {
		t.Fatalf("exit %d: %s", code, errOut.String())
	}
	for _, name := range []string{"localfs", "memory"} {
		if !strings.Contains(out.String(), name+"\t") {
			t.Fatalf("backend %s not listed:\n%s", name, out.String())
		}
	}
	if strings.Contains(out.String(), "grpc\t") {
		t.Fatalf("CLI-only grpc backend listed for the daemon:\n%s", out.String())
	}
}

func TestStartupErrors(t *testing.T) {
	for _, args := range [][]string{
		{"--no-such-flag"},
		{"--log-level", "loud"},
		{"--backend", "nope"},
		{"--backend", "localfs"},
	} {
		var out, errOut bytes.Buffer
		if code := run(args, &out, &errOut); code != 2 {
			t.Fatalf("%q: exit %d, want 2", args, code)
		}
	}
}

func TestServerServesBOMAndCAS(t *testing.T) {
	ctx := context.Background()
	cas := &storage.MemCAS{}
	reg := prometheus.NewRegistry()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	srv, err := newServer(cas, codec.Limits{}, reg, log)
	if err != nil {
		t.Fatalf("newServer: %v", err)
	}
	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	cc, err := grpc.NewClient(
		"passthrough:///bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) { return lis.Dial() }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { _ = cc.Close() })

	in, err := codec.Marshal(bomtest.Full(), specversion.XML)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	resp, err := service.NewClient(cc).Convert(ctx, model.ConvertRequest{
		Input:  model.BlobRef{Bytes: in},
		Output: model.Output{Format: "json", Store: true},
	})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !resp.Output.Stored {
		t.Fatalf("result not stored")
	}

	id, err := cidutil.Parse(resp.Output.CID)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got, err := grpccas.NewClient(cc).Get(ctx, id)
	if err != nil {
		t.Fatalf("CAS Get: %v", err)
	}
	if !bytes.Equal(got, resp.Output.Bytes) {
		t.Fatalf("CAS returned different bytes")
	}

	if _, err := service.NewClient(cc).Convert(ctx, model.ConvertRequest{Input: model.BlobRef{Bytes: []byte("{")}}); err == nil {
		t.Fatalf("expected parse error")
	}

	if n, err := testutil.GatherAndCount(reg, "sbom_service_requests_total"); err != nil || n == 0 {
		t.Fatalf("request metrics: %d series, %v", n, err)
	}
	var failed int
	for _, e := range hook.AllEntries() {
		if e.Message == "request failed" {
			failed++
		}
	}
	if failed != 1 {
		t.Fatalf("logged %d failed requests, want 1", failed)
	}
}
