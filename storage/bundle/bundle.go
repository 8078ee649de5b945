// Package bundle moves stored BOM documents between stores as a single
// deterministic TAR archive.
//
// Layout:
//
//	blocks/<cid>   the encoded document bytes
//	index.json     optional: block sizes, labels and the format and
//	               generation of each document
//
// Blocks are authoritative; the index is advisory and is ignored when it
// disagrees with the blocks.
package bundle

import (
	"archive/tar"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/ipfs/go-cid"

	"xdao.co/sbom/cidutil"
	"xdao.co/sbom/storage"
)

// FormatVersion is the current bundle index schema version.
const FormatVersion = 1

var epoch0 = time.Unix(0, 0).UTC()

// ExportOptions controls bundle export behavior.
type ExportOptions struct {
	// Labels maps names (e.g. "release/1.2") to CIDs.
	Labels map[string]cid.Cid
	// IncludeIndex controls whether index.json is written.
	IncludeIndex bool
	// Documents are the index records of the exported blocks.
	Documents []storage.Entry
}

// Index is the decoded index.json.
type Index struct {
	Version   int             `json:"version"`
	CIDCodec  string          `json:"cidCodec"`
	Multihash string          `json:"multihash"`
	Blocks    []IndexBlock    `json:"blocks"`
	Labels    []IndexLabel    `json:"labels,omitempty"`
	Documents []storage.Entry `json:"documents,omitempty"`
}

type IndexBlock struct {
	CID  string `json:"cid"`
	Size int    `json:"size"`
}

type IndexLabel struct {
	Name string `json:"name"`
	CID  string `json:"cid"`
}

// Export writes the blocks for ids to w. Entry order is lexicographic,
// headers are normalized and every block is checked against its CID, so
// the same inputs always give the same bytes.
func Export(ctx context.Context, w io.Writer, cas storage.CAS, ids []cid.Cid, opts ExportOptions) error {
	if cas == nil {
		return fmt.Errorf("bundle: nil CAS")
	}

	uniq := make(map[string]cid.Cid, len(ids))
	for _, id := range ids {
		if !id.Defined() {
			return storage.ErrInvalidCID
		}
		uniq[id.String()] = id
	}
	keys := make([]string, 0, len(uniq))
	for s := range uniq {
		keys = append(keys, s)
	}
	sort.Strings(keys)

	tw := tar.NewWriter(w)
	fail := func(err error) error {
		_ = tw.Close()
		return err
	}

	blocks := make([]IndexBlock, 0, len(keys))
	for _, s := range keys {
		id := uniq[s]
		b, err := cas.Get(ctx, id)
		if err != nil {
			return fail(fmt.Errorf("bundle: %s: %w", s, err))
		}
		if !cidutil.Verify(id, b) {
			return fail(storage.ErrCIDMismatch)
		}
		if err := writeFile(tw, "blocks/"+s, b); err != nil {
			return fail(err)
		}
		blocks = append(blocks, IndexBlock{CID: s, Size: len(b)})
	}

	if opts.IncludeIndex {
		idx := Index{
			Version:   FormatVersion,
			CIDCodec:  "raw",
			Multihash: "sha2-256",
			Blocks:    blocks,
		}
		names := make([]string, 0, len(opts.Labels))
		for k := range opts.Labels {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			if k == "" {
				return fail(fmt.Errorf("bundle: empty label key"))
			}
			v := opts.Labels[k]
			if !v.Defined() {
				return fail(storage.ErrInvalidCID)
			}
			idx.Labels = append(idx.Labels, IndexLabel{Name: k, CID: v.String()})
		}
		for _, e := range opts.Documents {
			if _, ok := uniq[e.CID]; ok {
				idx.Documents = append(idx.Documents, e)
			}
		}
		sort.Slice(idx.Documents, func(i, j int) bool { return idx.Documents[i].CID < idx.Documents[j].CID })

		b, err := json.Marshal(idx)
		if err != nil {
			return fail(err)
		}
		if err := writeFile(tw, "index.json", append(b, '\n')); err != nil {
			return fail(err)
		}
	}

	return tw.Close()
}

// ExportStore writes every document in store together with its index.
func ExportStore(ctx context.Context, w io.Writer, store *storage.TypedStore, labels map[string]cid.Cid) error {
	entries := store.Entries()
	ids := make([]cid.Cid, 0, len(entries))
	for _, e := range entries {
		id, err := cidutil.Parse(e.CID)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	return Export(ctx, w, store.CAS, ids, ExportOptions{Labels: labels, IncludeIndex: true, Documents: entries})
}

// ImportOptions controls bundle import behavior.
type ImportOptions struct {
	// IgnoreUnknown skips unknown TAR entries instead of failing.
	IgnoreUnknown bool
}

// Import reads a bundle from r into cas and returns the imported CIDs in
// archive order plus the index, if the bundle carried one. Each block
// must hash to the CID in its name.
func Import(ctx context.Context, r io.Reader, cas storage.CAS, opts ImportOptions) ([]cid.Cid, *Index, error) {
	if cas == nil {
		return nil, nil, fmt.Errorf("bundle: nil CAS")
	}

	tr := tar.NewReader(r)
	seen := map[string]struct{}{}
	var ids []cid.Cid
	var idx *Index

	for {
		h, err := tr.Next()
		if err == io.EOF {
			return ids, idx, nil
		}
		if err != nil {
			return nil, nil, err
		}
		name := cleanTarPath(h.Name)
		if name == "" {
			return nil, nil, fmt.Errorf("bundle: invalid entry path: %q", h.Name)
		}
		if h.Typeflag != tar.TypeReg {
			if opts.IgnoreUnknown {
				continue
			}
			return nil, nil, fmt.Errorf("bundle: unexpected tar entry type: %v (%s)", h.Typeflag, name)
		}

		if name == "index.json" {
			var parsed Index
			if err := json.NewDecoder(tr).Decode(&parsed); err != nil {
				return nil, nil, fmt.Errorf("bundle: index.json: %w", err)
			}
			idx = &parsed
			continue
		}
		if !strings.HasPrefix(name, "blocks/") {
			if opts.IgnoreUnknown {
				continue
			}
			return nil, nil, fmt.Errorf("bundle: unknown entry: %s", name)
		}

		key := strings.TrimPrefix(name, "blocks/")
		id, err := cidutil.Parse(key)
		if err != nil {
			return nil, nil, storage.ErrInvalidCID
		}
		payload, err := io.ReadAll(tr)
		if err != nil {
			return nil, nil, err
		}
		if !cidutil.Verify(id, payload) {
			return nil, nil, storage.ErrCIDMismatch
		}
		if _, ok := seen[key]; ok {
			return nil, nil, fmt.Errorf("bundle: duplicate block entry: %s", key)
		}
		seen[key] = struct{}{}

		got, err := cas.Put(ctx, payload)
		if err != nil {
			return nil, nil, err
		}
		if !got.Equals(id) {
			return nil, nil, storage.ErrCIDMismatch
		}
		ids = append(ids, id)
	}
}

// ImportStore imports a bundle into store and indexes every imported
// document by decoding it.
func ImportStore(ctx context.Context, r io.Reader, store *storage.TypedStore) ([]storage.Entry, error) {
	ids, _, err := Import(ctx, r, store.CAS, ImportOptions{})
	if err != nil {
		return nil, err
	}
	out := make([]storage.Entry, 0, len(ids))
	for _, id := range ids {
		_, e, err := store.GetDocument(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("bundle: %s: %w", id, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func writeFile(tw *tar.Writer, name string, content []byte) error {
	hdr := &tar.Header{
		Name:     name,
		Mode:     0o644,
		Size:     int64(len(content)),
		ModTime:  epoch0,
		Typeflag: tar.TypeReg,
		Format:   tar.FormatUSTAR,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err := tw.Write(content)
	return err
}

func cleanTarPath(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimPrefix(name, "./")
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return ""
	}
	for _, part := range strings.Split(name, "/") {
		if part == "" || part == "." || part == ".." {
			return ""
		}
	}
	return name
}
