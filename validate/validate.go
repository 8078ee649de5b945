// Package validate checks serialized BOM documents against the published
// schema of their generation.
//
// Schema non-conformance is reported as Result data, never as an error. An
// error means the request itself cannot be served: an impossible
// format/version combination, or a schema resource that fails to load.
//
// Schemas are embedded, compiled on first use and shared by every caller;
// all functions are safe for concurrent use.
package validate

import (
	"context"
	"embed"
	"io"
	"path"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"xdao.co/sbom/sbomerr"
	"xdao.co/sbom/specversion"
	"xdao.co/sbom/validate/xsd"
)

//go:embed schema
var schemaFS embed.FS

// Result is the outcome of validating one document. A Result with Valid
// false always carries at least one message.
type Result struct {
	Valid    bool
	Messages []string
}

func valid() Result { return Result{Valid: true} }

func invalid(msgs ...string) Result { return Result{Valid: false, Messages: msgs} }

// Validate checks doc, serialized in format f, against the schema of
// generation v.
func Validate(doc []byte, v specversion.Version, f specversion.Format) (Result, error) {
	if err := specversion.Supports(f, v); err != nil {
		return Result{}, err
	}
	switch f {
	case specversion.JSON:
		return validateJSON(doc, v)
	case specversion.XML:
		return validateXML(doc, v)
	}
	return Result{}, sbomerr.New(sbomerr.KindUnsupported, "SBOM-VAL-002", "Protocol Buffers documents cannot be schema-validated.")
}

// ValidateReader is Validate over a stream. Reading from r is the only point
// where the call waits; a cancelled ctx aborts the read.
func ValidateReader(ctx context.Context, r io.Reader, v specversion.Version, f specversion.Format) (Result, error) {
	if err := specversion.Supports(f, v); err != nil {
		return Result{}, err
	}
	if f == specversion.Protobuf {
		return Validate(nil, v, f)
	}
	data, err := io.ReadAll(ctxReader{ctx, r})
	if err != nil {
		return Result{}, err
	}
	return Validate(data, v, f)
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

type cacheKey struct {
	f specversion.Format
	v specversion.Version
}

// compiled is one cache slot. It is filled exactly once.
type compiled struct {
	once sync.Once
	json *jsonschema.Schema
	xml  *xsd.Schema
	err  error
}

var cache = func() map[cacheKey]*compiled {
	m := map[cacheKey]*compiled{}
	for _, v := range specversion.Versions() {
		for _, f := range []specversion.Format{specversion.XML, specversion.JSON} {
			if specversion.Supports(f, v) == nil {
				m[cacheKey{f, v}] = &compiled{}
			}
		}
	}
	return m
}()

func schemaFor(f specversion.Format, v specversion.Version) (*compiled, error) {
	c, ok := cache[cacheKey{f, v}]
	if !ok {
		return nil, sbomerr.New(sbomerr.KindInternal, "SBOM-VAL-003", "no schema slot for "+f.String()+" "+v.String())
	}
	c.once.Do(func() {
		switch f {
		case specversion.JSON:
			c.json, c.err = compileJSON(v)
		case specversion.XML:
			c.xml, c.err = compileXML(v)
		}
		if c.err != nil {
			c.err = sbomerr.Wrap(sbomerr.KindSchema, "SBOM-VAL-001", "schema for "+f.String()+" "+v.String()+" failed to load", c.err)
		}
	})
	return c, c.err
}

func readSchema(name string) ([]byte, error) {
	return schemaFS.ReadFile(path.Join("schema", path.Base(name)))
}
