// Package localfs is a filesystem-backed storage.CAS with optional
// at-rest compression.
package localfs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ipfs/go-cid"

	"xdao.co/sbom/cidutil"
	"xdao.co/sbom/storage"
)

// CAS stores each blob immutably under root/<first two CID chars>/<CID>,
// plus a suffix naming the compression it was written with. Reads accept
// any variant, so a store can change compression without migrating.
type CAS struct {
	root        string
	compression Compression
}

var _ storage.CAS = (*CAS)(nil)

// Options configures New.
type Options struct {
	Compression Compression
}

// New constructs a filesystem CAS rooted at root, creating the directory
// if needed.
func New(root string, opts Options) (*CAS, error) {
	if root == "" {
		return nil, errors.New("localfs: root directory is required")
	}
	c, err := ParseCompression(string(opts.Compression))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &CAS{root: root, compression: c}, nil
}

// Root returns the store directory.
func (c *CAS) Root() string { return c.root }

func (c *CAS) Put(ctx context.Context, data []byte) (cid.Cid, error) {
	if err := ctx.Err(); err != nil {
		return cid.Undef, err
	}
	id, err := cidutil.Sum(data)
	if err != nil {
		return cid.Undef, err
	}

	if _, _, err := c.find(id); err == nil {
		existing, rerr := c.Get(ctx, id)
		if rerr != nil || !bytes.Equal(existing, data) {
			// Present but unreadable or different: never repaired in place.
			return cid.Undef, storage.ErrImmutable
		}
		return id, nil
	}

	stored, err := c.compression.compress(data)
	if err != nil {
		return cid.Undef, fmt.Errorf("localfs: %s: %w", c.compression, err)
	}
	path := c.pathFor(id, c.compression)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return cid.Undef, err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o444)
	if err != nil {
		if os.IsExist(err) {
			// Lost a race with a concurrent writer of the same blob.
			return c.Put(ctx, data)
		}
		return cid.Undef, err
	}
	if _, err := f.Write(stored); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return cid.Undef, err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return cid.Undef, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return cid.Undef, err
	}
	return id, nil
}

func (c *CAS) Get(ctx context.Context, id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, storage.ErrInvalidCID
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, comp, err := c.find(id)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b, err := comp.decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("localfs: %s %s: %w", comp, id, storage.ErrCIDMismatch)
	}
	if !cidutil.Verify(id, b) {
		return nil, storage.ErrCIDMismatch
	}
	return b, nil
}

func (c *CAS) Has(ctx context.Context, id cid.Cid) (bool, error) {
	if !id.Defined() {
		return false, storage.ErrInvalidCID
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, _, err := c.find(id)
	if storage.IsNotFound(err) {
		return false, nil
	}
	return err == nil, err
}

// find locates the on-disk variant of id.
func (c *CAS) find(id cid.Cid) (string, Compression, error) {
	for _, comp := range compressions {
		path := c.pathFor(id, comp)
		_, err := os.Stat(path)
		if err == nil {
			return path, comp, nil
		}
		if !os.IsNotExist(err) {
			return "", "", err
		}
	}
	return "", "", storage.ErrNotFound
}

func (c *CAS) pathFor(id cid.Cid, comp Compression) string {
	s := id.String()
	return filepath.Join(c.root, s[:2], s+comp.suffix())
}
