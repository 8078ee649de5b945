package storage_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ipfs/go-cid"

	"xdao.co/sbom/cidutil"
	"xdao.co/sbom/codec"
	"xdao.co/sbom/convert"
	"xdao.co/sbom/internal/bomtest"
	"xdao.co/sbom/specversion"
	"xdao.co/sbom/storage"
	"xdao.co/sbom/storage/testkit"
)

func TestMemCAS_Conformance(t *testing.T) {
	testkit.RunCASConformance(t, func(t *testing.T) storage.CAS { return &storage.MemCAS{} })
}

func TestMultiCAS_Conformance(t *testing.T) {
	testkit.RunCASConformance(t, func(t *testing.T) storage.CAS {
		return storage.MultiCAS{Adapters: []storage.CAS{&storage.MemCAS{}, &storage.MemCAS{}}}
	})
}

func TestReplicatingCAS_Conformance(t *testing.T) {
	testkit.RunCASConformance(t, func(t *testing.T) storage.CAS {
		return storage.ReplicatingCAS{Backends: []storage.NamedCAS{
			{Name: "a", CAS: &storage.MemCAS{}},
			{Name: "b", CAS: &storage.MemCAS{}},
		}}
	})
}

func TestMultiCAS_FallsBackInOrder(t *testing.T) {
	ctx := context.Background()
	first, second := &storage.MemCAS{}, &storage.MemCAS{}
	id, err := second.Put(ctx, []byte("only in second"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	m := storage.MultiCAS{Adapters: []storage.CAS{first, second}}
	got, err := m.Get(ctx, id)
	if err != nil || string(got) != "only in second" {
		t.Fatalf("Get = %q, %v", got, err)
	}
	if _, err := m.Put(ctx, []byte("new")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if first.Len() != 1 || second.Len() != 1 {
		t.Fatalf("Put must write only to the first adapter: %d %d", first.Len(), second.Len())
	}
	if _, err := (storage.MultiCAS{}).Put(ctx, nil); !errors.Is(err, storage.ErrNoBackends) {
		t.Fatalf("empty MultiCAS Put: %v", err)
	}
}

// lyingCAS stores the bytes but reports the CID of something else.
type lyingCAS struct{ storage.MemCAS }

func (l *lyingCAS) Put(ctx context.Context, data []byte) (cid.Cid, error) {
	if _, err := l.MemCAS.Put(ctx, data); err != nil {
		return cid.Undef, err
	}
	return cidutil.Sum([]byte("something else"))
}

func TestReplicatingCAS_PutAll(t *testing.T) {
	ctx := context.Background()
	a, b := &storage.MemCAS{}, &storage.MemCAS{}
	r := storage.ReplicatingCAS{Backends: []storage.NamedCAS{{Name: "a", CAS: a}, {Name: "b", CAS: b}}}
	id, per, err := r.PutAll(ctx, []byte("x"))
	if err != nil {
		t.Fatalf("PutAll: %v", err)
	}
	if len(per) != 2 || !per["a"].Equals(id) || !per["b"].Equals(id) {
		t.Fatalf("per-backend CIDs = %v", per)
	}
	if a.Len() != 1 || b.Len() != 1 {
		t.Fatalf("not replicated")
	}

	bad := storage.ReplicatingCAS{Backends: []storage.NamedCAS{{Name: "a", CAS: &storage.MemCAS{}}, {Name: "liar", CAS: &lyingCAS{}}}}
	if _, err := bad.Put(ctx, []byte("x")); !errors.Is(err, storage.ErrCIDMismatch) || !strings.Contains(err.Error(), "liar") {
		t.Fatalf("mismatch: %v", err)
	}
	if _, err := (storage.ReplicatingCAS{}).Put(ctx, nil); !errors.Is(err, storage.ErrNoBackends) {
		t.Fatalf("no backends: %v", err)
	}
}

func TestMemCAS_HonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (&storage.MemCAS{}).Put(ctx, []byte("x")); !errors.Is(err, context.Canceled) {
		t.Fatalf("Put on cancelled context: %v", err)
	}
}

func TestTypedStore(t *testing.T) {
	ctx := context.Background()
	s := storage.NewTypedStore(&storage.MemCAS{})

	doc, err := convert.Convert(bomtest.Full(), specversion.V1_4)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	e, err := s.PutDocument(ctx, doc, specversion.XML)
	if err != nil {
		t.Fatalf("PutDocument: %v", err)
	}
	if e.Format != "xml" || e.SpecVersion != "1.4" || e.SerialNumber != bomtest.Full().SerialNumber || e.Version != 1 {
		t.Fatalf("entry = %+v", e)
	}
	id, err := cidutil.Parse(e.CID)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got, ge, err := s.GetDocument(ctx, id)
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if ge != e || got.SchemaVersion() != specversion.V1_4 {
		t.Fatalf("GetDocument = %v, %+v", got.SchemaVersion(), ge)
	}

	next := bomtest.Full()
	next.Version = 2
	raw, err := codec.Marshal(next, specversion.JSON)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if _, err := s.PutBytes(ctx, raw); err != nil {
		t.Fatalf("PutBytes: %v", err)
	}
	hist := s.BySerial(next.SerialNumber)
	if len(hist) != 2 || hist[0].Version != 1 || hist[1].Version != 2 {
		t.Fatalf("BySerial = %+v", hist)
	}
	if _, err := s.PutBytes(ctx, []byte(`{"bomFormat":`)); err == nil {
		t.Fatalf("PutBytes accepted a malformed document")
	}
}

func TestTypedStore_IndexRoundTrip(t *testing.T) {
	ctx := context.Background()
	cas := &storage.MemCAS{}
	s := storage.NewTypedStore(cas)
	e, err := s.PutDocument(ctx, bomtest.Full(), specversion.Protobuf)
	if err != nil {
		t.Fatalf("PutDocument: %v", err)
	}
	var buf bytes.Buffer
	if err := s.SaveIndex(&buf); err != nil {
		t.Fatalf("SaveIndex: %v", err)
	}

	reopened := storage.NewTypedStore(cas)
	if err := reopened.LoadIndex(&buf); err != nil {
		t.Fatalf("LoadIndex: %v", err)
	}
	if got := reopened.Entries(); len(got) != 1 || got[0] != e {
		t.Fatalf("Entries = %+v", got)
	}
	if err := reopened.LoadIndex(strings.NewReader(`[{"cid":"nope"}]`)); !errors.Is(err, storage.ErrInvalidCID) {
		t.Fatalf("LoadIndex bad cid: %v", err)
	}
}

func TestTypedStore_UnindexedBlob(t *testing.T) {
	ctx := context.Background()
	cas := &storage.MemCAS{}
	raw := testkit.Document(t)
	id, err := cas.Put(ctx, raw)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	s := storage.NewTypedStore(cas)
	doc, e, err := s.GetDocument(ctx, id)
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if e.Format != "json" || doc.SchemaVersion() != specversion.Latest {
		t.Fatalf("detected %+v", e)
	}
	if _, ok := s.Lookup(id); !ok {
		t.Fatalf("detected entry was not indexed")
	}
}
