package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/ipfs/go-cid"
	"golang.org/x/sync/errgroup"

	"xdao.co/sbom/cidutil"
)

// NamedCAS pairs a CAS with the stable name it is reported under.
type NamedCAS struct {
	Name string
	CAS  CAS
}

// ReplicatingCAS writes every blob to all Backends concurrently and reads
// them back in order. A backend that answers a Put with a different CID
// fails the write with ErrCIDMismatch.
type ReplicatingCAS struct {
	Backends []NamedCAS
}

var _ CAS = ReplicatingCAS{}

// PutAll writes data to every backend and returns the CID computed from
// the bytes together with what each backend reported, keyed by name.
func (r ReplicatingCAS) PutAll(ctx context.Context, data []byte) (cid.Cid, map[string]cid.Cid, error) {
	want, err := cidutil.Sum(data)
	if err != nil {
		return cid.Undef, nil, err
	}
	if len(r.Backends) == 0 {
		return cid.Undef, nil, ErrNoBackends
	}
	for _, b := range r.Backends {
		if b.CAS == nil {
			return cid.Undef, nil, fmt.Errorf("storage: nil CAS for backend %q", b.Name)
		}
	}

	var mu sync.Mutex
	out := make(map[string]cid.Cid, len(r.Backends))
	g, gctx := errgroup.WithContext(ctx)
	for _, b := range r.Backends {
		g.Go(func() error {
			got, err := b.CAS.Put(gctx, data)
			if err != nil {
				return fmt.Errorf("storage: backend %q: %w", b.Name, err)
			}
			mu.Lock()
			out[b.Name] = got
			mu.Unlock()
			if !got.Equals(want) {
				return fmt.Errorf("storage: backend %q: %w", b.Name, ErrCIDMismatch)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return cid.Undef, out, err
	}
	return want, out, nil
}

func (r ReplicatingCAS) Put(ctx context.Context, data []byte) (cid.Cid, error) {
	id, _, err := r.PutAll(ctx, data)
	return id, err
}

func (r ReplicatingCAS) Get(ctx context.Context, id cid.Cid) ([]byte, error) {
	return MultiCAS{Adapters: r.adapters()}.Get(ctx, id)
}

func (r ReplicatingCAS) Has(ctx context.Context, id cid.Cid) (bool, error) {
	return MultiCAS{Adapters: r.adapters()}.Has(ctx, id)
}

func (r ReplicatingCAS) adapters() []CAS {
	out := make([]CAS, 0, len(r.Backends))
	for _, b := range r.Backends {
		if b.CAS != nil {
			out = append(out, b.CAS)
		}
	}
	return out
}
