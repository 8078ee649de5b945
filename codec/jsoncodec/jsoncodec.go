// Package jsoncodec reads and writes BOM documents as JSON (generations
// 1.2 and later).
package jsoncodec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"regexp"

	"github.com/mohae/deepcopy"

	"xdao.co/sbom/bom"
	"xdao.co/sbom/sbomerr"
	"xdao.co/sbom/specversion"
)

// BOMFormat is the fixed value of the top-level bomFormat property.
const BOMFormat = "CycloneDX"

var timestampProp = regexp.MustCompile(`("(?:` + bom.TimestampFields + `)"\s*:\s*")([^"\\]*)(")`)

type header struct {
	BOMFormat   string `json:"bomFormat"`
	SpecVersion string `json:"specVersion"`
}

// Serialize writes doc as two-space indented JSON.
func Serialize(w io.Writer, doc bom.Document) error {
	return Encode(w, doc, true)
}

// Encode writes doc as JSON with bomFormat and specVersion leading the
// object. The caller's document is not modified.
func Encode(w io.Writer, doc bom.Document, indent bool) error {
	if doc == nil || reflect.ValueOf(doc).IsNil() {
		return sbomerr.New(sbomerr.KindInternal, "SBOM-ENC-001", "document is nil")
	}
	v := doc.SchemaVersion()
	if err := specversion.Supports(specversion.JSON, v); err != nil {
		return err
	}
	cp := deepcopy.Copy(doc)
	bom.Normalize(cp)

	body, err := marshal(cp)
	if err != nil {
		return sbomerr.Wrap(sbomerr.KindInternal, "SBOM-ENC-003", "json encode failed", err)
	}
	head, err := marshal(header{BOMFormat: BOMFormat, SpecVersion: v.String()})
	if err != nil {
		return sbomerr.Wrap(sbomerr.KindInternal, "SBOM-ENC-003", "json encode failed", err)
	}

	// Splice {"bomFormat":…,"specVersion":…} in front of the document's own
	// properties.
	var obj bytes.Buffer
	obj.Write(head[:len(head)-1])
	if len(body) > 2 {
		obj.WriteByte(',')
		obj.Write(body[1:])
	} else {
		obj.WriteByte('}')
	}

	out := obj.Bytes()
	if indent {
		var ind bytes.Buffer
		if err := json.Indent(&ind, out, "", "  "); err != nil {
			return sbomerr.Wrap(sbomerr.KindInternal, "SBOM-ENC-003", "json encode failed", err)
		}
		ind.WriteByte('\n')
		out = ind.Bytes()
	}
	_, err = w.Write(out)
	return err
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Deserialize reads one document of generation v from r. The document's
// specVersion must name v.
func Deserialize(r io.Reader, v specversion.Version) (bom.Document, error) {
	if err := specversion.Supports(specversion.JSON, v); err != nil {
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
	if err := specversion.Supports(specversion.JSON, v); err != nil {
		return nil, err
	}
	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, sbomerr.Wrap(sbomerr.KindParse, "SBOM-DEC-JSON-001", "malformed JSON document", err)
	}
	if h.BOMFormat != BOMFormat {
		return nil, sbomerr.New(sbomerr.KindParse, "SBOM-DEC-JSON-002", fmt.Sprintf("bomFormat must be %q, got %q", BOMFormat, h.BOMFormat))
	}
	if h.SpecVersion != v.String() {
		return nil, sbomerr.New(sbomerr.KindParse, "SBOM-DEC-JSON-003", fmt.Sprintf("specVersion %q does not match requested version %s", h.SpecVersion, v))
	}
	doc, err := bom.New(v)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(bom.RewriteTimestamps(timestampProp, data), doc); err != nil {
		return nil, sbomerr.Wrap(sbomerr.KindParse, "SBOM-DEC-JSON-001", "malformed "+v.String()+" JSON document", err)
	}
	bom.Normalize(doc)
	return doc, nil
}

// DetectVersion returns the generation named by the document's specVersion.
func DetectVersion(data []byte) (specversion.Version, error) {
	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return 0, sbomerr.Wrap(sbomerr.KindParse, "SBOM-DEC-JSON-001", "malformed JSON document", err)
	}
	v, err := specversion.ParseVersion(h.SpecVersion)
	if err != nil {
		return 0, sbomerr.Wrap(sbomerr.KindParse, "SBOM-DEC-JSON-004", "specVersion missing or unknown", err)
	}
	return v, nil
}
