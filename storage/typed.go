package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/ipfs/go-cid"

	"xdao.co/sbom/bom"
	"xdao.co/sbom/cidutil"
	"xdao.co/sbom/codec"
	"xdao.co/sbom/convert"
	"xdao.co/sbom/specversion"
)

// Entry is the sidecar index record for one stored document.
type Entry struct {
	CID          string `json:"cid"`
	Format       string `json:"format"`
	SpecVersion  string `json:"specVersion"`
	SerialNumber string `json:"serialNumber,omitempty"`
	Version      int    `json:"version,omitempty"`
	Size         int    `json:"size"`
}

// TypedStore keeps encoded BOM documents in a CAS and remembers the
// format and generation of each one, so reads decode without sniffing.
//
// The index is advisory: a CID missing from it is still readable, its
// format and generation are then detected from the bytes.
type TypedStore struct {
	CAS CAS

	mu    sync.RWMutex
	index map[string]Entry
}

func NewTypedStore(cas CAS) *TypedStore {
	return &TypedStore{CAS: cas, index: map[string]Entry{}}
}

// PutDocument encodes doc in format f and stores the bytes.
func (s *TypedStore) PutDocument(ctx context.Context, doc bom.Document, f specversion.Format, opts ...codec.Option) (Entry, error) {
	data, err := codec.Marshal(doc, f, opts...)
	if err != nil {
		return Entry{}, err
	}
	return s.put(ctx, data, doc, f)
}

// PutBytes stores an already encoded document. The bytes are decoded
// first, so only well-formed documents enter the store.
func (s *TypedStore) PutBytes(ctx context.Context, data []byte) (Entry, error) {
	doc, f, err := codec.DecodeAny(data)
	if err != nil {
		return Entry{}, err
	}
	return s.put(ctx, data, doc, f)
}

func (s *TypedStore) put(ctx context.Context, data []byte, doc bom.Document, f specversion.Format) (Entry, error) {
	id, err := s.CAS.Put(ctx, data)
	if err != nil {
		return Entry{}, err
	}
	if !cidutil.Verify(id, data) {
		return Entry{}, ErrCIDMismatch
	}
	e, err := describe(id, data, doc, f)
	if err != nil {
		return Entry{}, err
	}
	s.mu.Lock()
	if s.index == nil {
		s.index = map[string]Entry{}
	}
	s.index[e.CID] = e
	s.mu.Unlock()
	return e, nil
}

func describe(id cid.Cid, data []byte, doc bom.Document, f specversion.Format) (Entry, error) {
	latest, err := convert.ToLatest(doc)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		CID:          id.String(),
		Format:       f.String(),
		SpecVersion:  doc.SchemaVersion().String(),
		SerialNumber: latest.SerialNumber,
		Version:      latest.Version,
		Size:         len(data),
	}, nil
}

// GetDocument fetches and decodes the document stored under id.
func (s *TypedStore) GetDocument(ctx context.Context, id cid.Cid) (bom.Document, Entry, error) {
	data, err := s.CAS.Get(ctx, id)
	if err != nil {
		return nil, Entry{}, err
	}
	if e, ok := s.Lookup(id); ok {
		f, ferr := specversion.ParseFormat(e.Format)
		v, verr := specversion.ParseVersion(e.SpecVersion)
		if ferr == nil && verr == nil {
			doc, err := codec.Unmarshal(data, f, v)
			return doc, e, err
		}
	}
	doc, f, err := codec.DecodeAny(data)
	if err != nil {
		return nil, Entry{}, err
	}
	e, err := describe(id, data, doc, f)
	if err != nil {
		return nil, Entry{}, err
	}
	s.mu.Lock()
	if s.index == nil {
		s.index = map[string]Entry{}
	}
	s.index[e.CID] = e
	s.mu.Unlock()
	return doc, e, nil
}

// Lookup returns the index record for id.
func (s *TypedStore) Lookup(id cid.Cid) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.index[id.String()]
	return e, ok
}

// Entries returns every index record ordered by CID.
func (s *TypedStore) Entries() []Entry {
	s.mu.RLock()
	out := make([]Entry, 0, len(s.index))
	for _, e := range s.index {
		out = append(out, e)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CID < out[j].CID })
	return out
}

// BySerial returns the records of every stored version of the BOM with
// the given serial number, lowest version first.
func (s *TypedStore) BySerial(serial string) []Entry {
	var out []Entry
	for _, e := range s.Entries() {
		if e.SerialNumber == serial {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out
}

// SaveIndex writes the index as a JSON array ordered by CID.
func (s *TypedStore) SaveIndex(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s.Entries())
}

// LoadIndex merges a previously saved index into s. Records whose CID
// does not parse are rejected.
func (s *TypedStore) LoadIndex(r io.Reader) error {
	var entries []Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return fmt.Errorf("storage: load index: %w", err)
	}
	for _, e := range entries {
		if _, err := cidutil.Parse(e.CID); err != nil {
			return fmt.Errorf("storage: load index: %w", ErrInvalidCID)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == nil {
		s.index = map[string]Entry{}
	}
	for _, e := range entries {
		s.index[e.CID] = e
	}
	return nil
}
