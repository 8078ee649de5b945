package localfs

import (
	"bytes"
	"context"
	"os"
	"testing"

	"xdao.co/sbom/storage"
	"xdao.co/sbom/storage/testkit"
)

func TestLocalFS_Conformance(t *testing.T) {
	for _, comp := range compressions {
		t.Run(string(comp), func(t *testing.T) {
			testkit.RunCASConformance(t, func(t *testing.T) storage.CAS {
				t.Helper()
				cas, err := New(t.TempDir(), Options{Compression: comp})
				if err != nil {
					t.Fatalf("New failed: %v", err)
				}
				return cas
			})
		})
	}
}

func TestLocalFS_CompressesAtRest(t *testing.T) {
	ctx := context.Background()
	doc := testkit.Document(t)
	for _, comp := range []Compression{Zstd, LZ4, Brotli} {
		cas, err := New(t.TempDir(), Options{Compression: comp})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		id, err := cas.Put(ctx, doc)
		if err != nil {
			t.Fatalf("%s Put: %v", comp, err)
		}
		raw, err := os.ReadFile(cas.pathFor(id, comp))
		if err != nil {
			t.Fatalf("%s: stored file: %v", comp, err)
		}
		if bytes.Equal(raw, doc) || len(raw) >= len(doc) {
			t.Fatalf("%s: stored %d bytes for a %d byte document", comp, len(raw), len(doc))
		}
	}
}

func TestLocalFS_ReadsOtherCompressions(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	w, err := New(dir, Options{Compression: Brotli})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	doc := testkit.Document(t)
	id, err := w.Put(ctx, doc)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	r, err := New(dir, Options{Compression: Zstd})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := r.Get(ctx, id)
	if err != nil || !bytes.Equal(got, doc) {
		t.Fatalf("Get across compressions: %v", err)
	}
	// Already present in another variant: no second copy.
	if _, err := r.Put(ctx, doc); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := os.Stat(r.pathFor(id, Zstd)); !os.IsNotExist(err) {
		t.Fatalf("duplicate zstd copy written: %v", err)
	}
}

func TestLocalFS_RejectMutationByOverwrite(t *testing.T) {
	ctx := context.Background()
	cas, err := New(t.TempDir(), Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	orig := []byte("original")
	id, err := cas.Put(ctx, orig)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	path := cas.pathFor(id, None)
	if err := os.Chmod(path, 0o644); err != nil {
		t.Fatalf("Chmod failed: %v", err)
	}
	if err := os.WriteFile(path, []byte("corrupted"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := cas.Get(ctx, id); err != storage.ErrCIDMismatch {
		t.Fatalf("Get mismatch: got %v want %v", err, storage.ErrCIDMismatch)
	}
	if _, err := cas.Put(ctx, orig); err != storage.ErrImmutable {
		t.Fatalf("Put after corruption: got %v want %v", err, storage.ErrImmutable)
	}
}

func TestParseCompression(t *testing.T) {
	if c, err := ParseCompression(""); err != nil || c != None {
		t.Fatalf("empty = %q, %v", c, err)
	}
	if _, err := ParseCompression("gzip"); err == nil {
		t.Fatalf("gzip accepted")
	}
	if _, err := New(t.TempDir(), Options{Compression: "gzip"}); err == nil {
		t.Fatalf("New accepted gzip")
	}
}
