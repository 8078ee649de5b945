// Package cidutil derives content identifiers for encoded BOM documents.
//
// Every identifier is a CIDv1 with the "raw" multicodec and a sha2-256
// multihash computed over the exact encoded bytes. The same document
// encoded in two formats, or with and without indentation, therefore has
// two identifiers.
package cidutil

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"xdao.co/sbom/bom"
	"xdao.co/sbom/codec"
	"xdao.co/sbom/sbomerr"
	"xdao.co/sbom/specversion"
)

// Sum returns the identifier of data.
func Sum(data []byte) (cid.Cid, error) {
	mh, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, sbomerr.Wrap(sbomerr.KindInternal, "SBOM-CID-001", "multihash", err)
	}
	return cid.NewCidV1(cid.Raw, mh), nil
}

// String is Sum rendered in the default multibase. It returns "" if
// hashing fails, which cannot happen for sha2-256.
func String(data []byte) string {
	id, err := Sum(data)
	if err != nil {
		return ""
	}
	return id.String()
}

// Parse decodes s and rejects identifiers that do not use the raw codec
// and a sha2-256 multihash.
func Parse(s string) (cid.Cid, error) {
	id, err := cid.Decode(s)
	if err != nil || !id.Defined() {
		return cid.Undef, sbomerr.Wrap(sbomerr.KindParse, "SBOM-CID-002", "invalid CID "+s, err)
	}
	p := id.Prefix()
	if p.Version != 1 || p.Codec != cid.Raw || p.MhType != multihash.SHA2_256 {
		return cid.Undef, sbomerr.New(sbomerr.KindUnsupported, "SBOM-CID-003", "CID "+s+" is not CIDv1 raw sha2-256")
	}
	return id, nil
}

// Verify reports whether id addresses data.
func Verify(id cid.Cid, data []byte) bool {
	got, err := Sum(data)
	return err == nil && got.Equals(id)
}

// BomCID encodes doc in format f and returns the identifier together with
// the encoded bytes it was computed over.
func BomCID(doc bom.Document, f specversion.Format, opts ...codec.Option) (cid.Cid, []byte, error) {
	data, err := codec.Marshal(doc, f, opts...)
	if err != nil {
		return cid.Undef, nil, err
	}
	id, err := Sum(data)
	if err != nil {
		return cid.Undef, nil, err
	}
	return id, data, nil
}
