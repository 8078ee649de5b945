// Package codec encodes and decodes BOM documents in any supported wire
// format.
//
// Every entry point checks the format/version pair first, so an impossible
// combination (JSON before 1.2, Protocol Buffers before 1.3) fails with an
// Unsupported error before any byte is read or written. Malformed input
// fails with a Parse error and no partial document.
package codec

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"reflect"

	"xdao.co/sbom/bom"
	"xdao.co/sbom/codec/jsoncodec"
	"xdao.co/sbom/codec/protocodec"
	"xdao.co/sbom/codec/xmlcodec"
	"xdao.co/sbom/sbomerr"
	"xdao.co/sbom/specversion"
)

// Encode writes doc to w in format f.
func Encode(w io.Writer, doc bom.Document, f specversion.Format, opts ...Option) error {
	b, err := Marshal(doc, f, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// Marshal returns doc encoded in format f.
func Marshal(doc bom.Document, f specversion.Format, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)
	if doc == nil || reflect.ValueOf(doc).IsNil() {
		return nil, sbomerr.New(sbomerr.KindInternal, "SBOM-ENC-001", "document is nil")
	}
	if err := specversion.Supports(f, doc.SchemaVersion()); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	var err error
	switch f {
	case specversion.XML:
		err = xmlcodec.Encode(&buf, doc, cfg.indent)
	case specversion.JSON:
		err = jsoncodec.Encode(&buf, doc, cfg.indent)
	case specversion.Protobuf:
		err = protocodec.Serialize(&buf, doc)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads one document of generation v in format f from r.
func Decode(r io.Reader, f specversion.Format, v specversion.Version, opts ...Option) (bom.Document, error) {
	cfg := newConfig(opts)
	if err := specversion.Supports(f, v); err != nil {
		return nil, err
	}
	data, err := readAll(r, cfg.limits)
	if err != nil {
		return nil, err
	}
	return unmarshal(data, f, v)
}

// Unmarshal is Decode over a byte slice.
func Unmarshal(data []byte, f specversion.Format, v specversion.Version, opts ...Option) (bom.Document, error) {
	cfg := newConfig(opts)
	if err := specversion.Supports(f, v); err != nil {
		return nil, err
	}
	if int64(len(data)) > cfg.limits.MaxDocumentSize {
		return nil, limitError(cfg.limits)
	}
	return unmarshal(data, f, v)
}

func unmarshal(data []byte, f specversion.Format, v specversion.Version) (bom.Document, error) {
	switch f {
	case specversion.XML:
		return xmlcodec.Deserialize(bytes.NewReader(data), v)
	case specversion.JSON:
		return jsoncodec.Unmarshal(data, v)
	default:
		return protocodec.Unmarshal(data, v)
	}
}

// DecodeAs decodes into the model type T; the generation is T's.
//
//	b, err := codec.DecodeAs[*v14.Bom](r, specversion.JSON)
func DecodeAs[T bom.Document](r io.Reader, f specversion.Format, opts ...Option) (T, error) {
	var zero T
	doc, err := Decode(r, f, zero.SchemaVersion(), opts...)
	if err != nil {
		return zero, err
	}
	return doc.(T), nil
}

// EncodeContext is Encode that gives up when ctx is done. Writing to w is
// the only point where the call waits.
func EncodeContext(ctx context.Context, w io.Writer, doc bom.Document, f specversion.Format, opts ...Option) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := Marshal(doc, f, opts...)
	if err != nil {
		return err
	}
	_, err = io.Copy(ctxWriter{ctx, w}, bytes.NewReader(b))
	return err
}

// DecodeContext is Decode that gives up when ctx is done. Reading from r is
// the only point where the call waits.
func DecodeContext(ctx context.Context, r io.Reader, f specversion.Format, v specversion.Version, opts ...Option) (bom.Document, error) {
	if err := specversion.Supports(f, v); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Decode(ctxReader{ctx, r}, f, v, opts...)
}

// DetectVersion returns the generation a document declares: the JSON
// specVersion, the XML root namespace or the protobuf spec_version field.
func DetectVersion(data []byte, f specversion.Format) (specversion.Version, error) {
	switch f {
	case specversion.XML:
		return xmlcodec.DetectVersion(data)
	case specversion.JSON:
		return jsoncodec.DetectVersion(data)
	case specversion.Protobuf:
		return protocodec.DetectVersion(data)
	}
	return 0, sbomerr.New(sbomerr.KindUnsupported, "SBOM-FMT-000", fmt.Sprintf("unknown format %s", f))
}

// Sniff guesses the format from the first significant byte: '<' is XML,
// '{' is JSON, anything else is treated as Protocol Buffers.
func Sniff(data []byte) specversion.Format {
	trimmed := bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	trimmed = bytes.TrimLeft(trimmed, " \t\r\n")
	if len(trimmed) == 0 {
		return specversion.Protobuf
	}
	switch trimmed[0] {
	case '<':
		return specversion.XML
	case '{':
		return specversion.JSON
	}
	return specversion.Protobuf
}

// DecodeAny sniffs the format, detects the generation and decodes.
func DecodeAny(data []byte, opts ...Option) (bom.Document, specversion.Format, error) {
	f := Sniff(data)
	v, err := DetectVersion(data, f)
	if err != nil {
		return nil, f, err
	}
	doc, err := Unmarshal(data, f, v, opts...)
	return doc, f, err
}

func readAll(r io.Reader, l Limits) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.MaxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > l.MaxDocumentSize {
		return nil, limitError(l)
	}
	return data, nil
}

func limitError(l Limits) error {
	return sbomerr.New(sbomerr.KindParse, "SBOM-DEC-LIM-001", fmt.Sprintf("document exceeds %d bytes", l.MaxDocumentSize))
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

type ctxWriter struct {
	ctx context.Context
	w   io.Writer
}

func (c ctxWriter) Write(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.w.Write(p)
}
