// Package storage keeps encoded BOM documents in content-addressed stores.
package storage

import (
	"context"

	"github.com/ipfs/go-cid"
)

// CAS is a content-addressed blob store.
//
// Contract:
//   - Put is idempotent and returns the CID of the bytes written
//     (CIDv1 raw sha2-256, see cidutil.Sum).
//   - Stored blobs are immutable.
//   - Get returns ErrNotFound for an absent CID and never returns bytes
//     that do not hash to the requested CID.
//   - An undefined CID is rejected with ErrInvalidCID.
type CAS interface {
	Put(ctx context.Context, data []byte) (cid.Cid, error)
	Get(ctx context.Context, id cid.Cid) ([]byte, error)
	Has(ctx context.Context, id cid.Cid) (bool, error)
}
