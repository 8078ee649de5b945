package bundle_test

import (
	"archive/tar"
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/ipfs/go-cid"

	"xdao.co/sbom/cidutil"
	"xdao.co/sbom/internal/bomtest"
	"xdao.co/sbom/specversion"
	"xdao.co/sbom/storage"
	"xdao.co/sbom/storage/bundle"
	"xdao.co/sbom/storage/localfs"
)

func TestBundle_ExportIsDeterministic(t *testing.T) {
	ctx := context.Background()
	cas, err := localfs.New(t.TempDir(), localfs.Options{Compression: localfs.Zstd})
	if err != nil {
		t.Fatal(err)
	}
	id1, err := cas.Put(ctx, []byte("hello"))
	if err != nil {
		t.Fatal(err)
	}
	id2, err := cas.Put(ctx, []byte("world"))
	if err != nil {
		t.Fatal(err)
	}

	var outA, outB bytes.Buffer
	opts := bundle.ExportOptions{IncludeIndex: true, Labels: map[string]cid.Cid{"b": id2, "a": id1}}
	if err := bundle.Export(ctx, &outA, cas, []cid.Cid{id2, id1}, opts); err != nil {
		t.Fatal(err)
	}
	if err := bundle.Export(ctx, &outB, cas, []cid.Cid{id1, id2, id1}, opts); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(outA.Bytes(), outB.Bytes()) {
		t.Fatalf("expected deterministic bundle bytes")
	}
}

func TestBundle_StoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := storage.NewTypedStore(&storage.MemCAS{})
	xml, err := src.PutDocument(ctx, bomtest.Full(), specversion.XML)
	if err != nil {
		t.Fatal(err)
	}
	pb, err := src.PutDocument(ctx, bomtest.Full(), specversion.Protobuf)
	if err != nil {
		t.Fatal(err)
	}
	release, err := cidutil.Parse(xml.CID)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := bundle.ExportStore(ctx, &buf, src, map[string]cid.Cid{"release": release}); err != nil {
		t.Fatal(err)
	}

	dstDir := t.TempDir()
	dstCAS, err := localfs.New(dstDir, localfs.Options{})
	if err != nil {
		t.Fatal(err)
	}
	dst := storage.NewTypedStore(dstCAS)
	got, err := bundle.ImportStore(ctx, bytes.NewReader(buf.Bytes()), dst)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("imported %d documents", len(got))
	}
	for _, want := range []storage.Entry{xml, pb} {
		id, _ := cidutil.Parse(want.CID)
		e, ok := dst.Lookup(id)
		if !ok || e != want {
			t.Fatalf("index for %s = %+v, want %+v", want.CID, e, want)
		}
	}

	_, idx, err := bundle.Import(ctx, bytes.NewReader(buf.Bytes()), &storage.MemCAS{}, bundle.ImportOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if idx == nil || len(idx.Documents) != 2 || len(idx.Labels) != 1 || idx.Labels[0].CID != xml.CID {
		t.Fatalf("index = %+v", idx)
	}
}

func TestBundle_ImportRejectsCIDMismatch(t *testing.T) {
	good := []byte("good")
	other, err := cidutil.Sum([]byte("other"))
	if err != nil {
		t.Fatal(err)
	}
	// The name says "other" but the bytes are "good".
	bundleBytes := makeDeterministicTar(t, "blocks/"+other.String(), good)

	_, _, err = bundle.Import(context.Background(), bytes.NewReader(bundleBytes), &storage.MemCAS{}, bundle.ImportOptions{})
	if err != storage.ErrCIDMismatch {
		t.Fatalf("expected ErrCIDMismatch, got %v", err)
	}
}

func TestBundle_ImportRejectsUnknownAndUnsafe(t *testing.T) {
	ctx := context.Background()
	unknown := makeDeterministicTar(t, "notes.txt", []byte("hi"))
	if _, _, err := bundle.Import(ctx, bytes.NewReader(unknown), &storage.MemCAS{}, bundle.ImportOptions{}); err == nil {
		t.Fatalf("unknown entry accepted")
	}
	if _, _, err := bundle.Import(ctx, bytes.NewReader(unknown), &storage.MemCAS{}, bundle.ImportOptions{IgnoreUnknown: true}); err != nil {
		t.Fatalf("IgnoreUnknown: %v", err)
	}
	escape := makeDeterministicTar(t, "blocks/../../etc/passwd", []byte("x"))
	if _, _, err := bundle.Import(ctx, bytes.NewReader(escape), &storage.MemCAS{}, bundle.ImportOptions{IgnoreUnknown: true}); err == nil {
		t.Fatalf("path traversal accepted")
	}
}

func makeDeterministicTar(t *testing.T, name string, content []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	h := &tar.Header{
		Name:     name,
		Mode:     0o644,
		Size:     int64(len(content)),
		ModTime:  time.Unix(0, 0).UTC(),
		Typeflag: tar.TypeReg,
	}
	if err := tw.WriteHeader(h); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
