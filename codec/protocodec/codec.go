// Package protocodec reads and writes BOM documents in the CycloneDX
// Protocol Buffers encoding (generations 1.3 and later).
//
// All generations share one set of field numbers. Documents older than 1.6
// are projected up to the 1.6 model for encoding and projected back down
// after decoding; the spec_version field records the generation on the wire.
package protocodec

import (
	"embed"
	"fmt"
	"io"
	"reflect"

	"xdao.co/sbom/bom"
	v16 "xdao.co/sbom/bom/v16"
	"xdao.co/sbom/convert"
	"xdao.co/sbom/sbomerr"
	"xdao.co/sbom/specversion"
)

//go:embed schema/*.proto
var schemas embed.FS

// Schema returns the .proto definition for generation v.
func Schema(v specversion.Version) ([]byte, error) {
	if err := specversion.Supports(specversion.Protobuf, v); err != nil {
		return nil, err
	}
	return schemas.ReadFile("schema/bom-" + v.String() + ".proto")
}

// Serialize writes doc in the binary encoding. The caller's document is not
// modified.
func Serialize(w io.Writer, doc bom.Document) error {
	b, err := Marshal(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// Marshal is Serialize returning the encoded bytes.
func Marshal(doc bom.Document) ([]byte, error) {
	if doc == nil || reflect.ValueOf(doc).IsNil() {
		return nil, sbomerr.New(sbomerr.KindInternal, "SBOM-ENC-001", "document is nil")
	}
	v := doc.SchemaVersion()
	if err := specversion.Supports(specversion.Protobuf, v); err != nil {
		return nil, err
	}
	latest, err := convert.ToLatest(doc)
	if err != nil {
		return nil, err
	}
	bom.Normalize(latest)

	e := &encoder{}
	encBom(e, latest, v.String())
	if e.err != nil {
		return nil, sbomerr.Wrap(sbomerr.KindInternal, "SBOM-ENC-004", "protobuf encode failed", e.err)
	}
	return e.b, nil
}

// Deserialize reads one document of generation v from r. The message's
// spec_version must name v.
func Deserialize(r io.Reader, v specversion.Version) (bom.Document, error) {
	if err := specversion.Supports(specversion.Protobuf, v); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data, v)
}

// Unmarshal is Deserialize over a byte slice.
func Unmarshal(data []byte, v specversion.Version) (bom.Document, error) {
	if err := specversion.Supports(specversion.Protobuf, v); err != nil {
		return nil, err
	}
	latest, sv, err := decBom(data)
	if err != nil {
		return nil, sbomerr.Wrap(sbomerr.KindParse, "SBOM-DEC-PB-001", "malformed "+v.String()+" protobuf document", err)
	}
	if sv != v.String() {
		return nil, sbomerr.New(sbomerr.KindParse, "SBOM-DEC-PB-002", fmt.Sprintf("spec_version %q does not match requested version %s", sv, v))
	}
	var doc bom.Document = &latest
	if v != specversion.V1_6 {
		if doc, err = convert.Convert(&latest, v); err != nil {
			return nil, err
		}
	}
	bom.Normalize(doc)
	return doc, nil
}

// DetectVersion returns the generation named by the spec_version field.
func DetectVersion(data []byte) (specversion.Version, error) {
	var sv string
	err := eachField(data, func(f field) (err error) {
		if f.num == 1 {
			sv, err = f.str()
		}
		return err
	})
	if err != nil {
		return 0, sbomerr.Wrap(sbomerr.KindParse, "SBOM-DEC-PB-001", "malformed protobuf document", err)
	}
	v, err := specversion.ParseVersion(sv)
	if err != nil {
		return 0, sbomerr.Wrap(sbomerr.KindParse, "SBOM-DEC-PB-003", "spec_version missing or unknown", err)
	}
	return v, nil
}

// Decode16 is Unmarshal narrowed to the latest model.
func Decode16(data []byte) (*v16.Bom, error) {
	doc, err := Unmarshal(data, specversion.V1_6)
	if err != nil {
		return nil, err
	}
	return doc.(*v16.Bom), nil
}
