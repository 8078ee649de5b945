package storage

import (
	"bytes"
	"context"
	"sync"

	"github.com/ipfs/go-cid"

	"xdao.co/sbom/cidutil"
)

// MemCAS is an in-process CAS. The zero value is ready to use.
type MemCAS struct {
	mu    sync.RWMutex
	blobs map[cid.Cid][]byte
}

var _ CAS = (*MemCAS)(nil)

func (m *MemCAS) Put(ctx context.Context, data []byte) (cid.Cid, error) {
	if err := ctx.Err(); err != nil {
		return cid.Undef, err
	}
	id, err := cidutil.Sum(data)
	if err != nil {
		return cid.Undef, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.blobs == nil {
		m.blobs = map[cid.Cid][]byte{}
	}
	if old, ok := m.blobs[id]; ok {
		if !bytes.Equal(old, data) {
			return cid.Undef, ErrImmutable
		}
		return id, nil
	}
	m.blobs[id] = bytes.Clone(data)
	return id, nil
}

func (m *MemCAS) Get(ctx context.Context, id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, ErrInvalidCID
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	b, ok := m.blobs[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(b), nil
}

func (m *MemCAS) Has(ctx context.Context, id cid.Cid) (bool, error) {
	if !id.Defined() {
		return false, ErrInvalidCID
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.RLock()
	_, ok := m.blobs[id]
	m.mu.RUnlock()
	return ok, nil
}

// Len returns the number of stored blobs.
func (m *MemCAS) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.blobs)
}
