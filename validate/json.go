package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"xdao.co/sbom/codec/jsoncodec"
	"xdao.co/sbom/sbomerr"
	"xdao.co/sbom/specversion"
)

const jsonSchemaBase = "http://cyclonedx.org/schema/"

func jsonSchemaName(v specversion.Version) string {
	return "bom-" + v.String() + ".schema.json"
}

// compileJSON builds the draft-07 schema of generation v. References are
// served from the embedded files only.
func compileJSON(v specversion.Version) (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft7
	c.AssertFormat = true
	c.LoadURL = func(u string) (io.ReadCloser, error) {
		b, err := readSchema(u)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(b)), nil
	}
	for _, name := range []string{"spdx.schema.json", jsonSchemaName(v)} {
		b, err := readSchema(name)
		if err != nil {
			return nil, err
		}
		if err := c.AddResource(jsonSchemaBase+name, bytes.NewReader(b)); err != nil {
			return nil, err
		}
	}
	return c.Compile(jsonSchemaBase + jsonSchemaName(v))
}

// ValidateJSON validates a JSON document against the generation named by
// its own specVersion.
func ValidateJSON(doc []byte) (Result, error) {
	v, err := jsoncodec.DetectVersion(doc)
	if err != nil {
		if sbomerr.RuleID(err) == "SBOM-DEC-JSON-001" {
			return parseFailure(err), nil
		}
		return invalid("specVersion missing or unknown."), nil
	}
	if specversion.Supports(specversion.JSON, v) != nil {
		return invalid("specVersion missing or unknown."), nil
	}
	return Validate(doc, v, specversion.JSON)
}

func validateJSON(doc []byte, v specversion.Version) (Result, error) {
	s, err := schemaFor(specversion.JSON, v)
	if err != nil {
		return Result{}, err
	}
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	var inst any
	if err := dec.Decode(&inst); err != nil {
		return parseFailure(err), nil
	}
	if _, err := dec.Token(); err != io.EOF {
		return parseFailure(errors.New("unexpected data after the top-level value")), nil
	}
	if err := s.json.Validate(inst); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return Result{}, sbomerr.Wrap(sbomerr.KindInternal, "SBOM-VAL-004", "JSON schema evaluation failed", err)
		}
		return invalid(flatten(ve)...), nil
	}
	if obj, ok := inst.(map[string]any); ok {
		if got, _ := obj["specVersion"].(string); got != v.String() {
			return invalid(fmt.Sprintf("Incorrect schema version: expected %s actual %s", v, got)), nil
		}
	}
	return valid(), nil
}

func parseFailure(err error) Result {
	return invalid("Unable to parse JSON document: " + err.Error())
}

// flatten lists the causes of a validation failure breadth-first as
// "<instance location>: <message>" lines. Wrapper entries that only say a
// subschema failed are dropped in favour of their causes.
func flatten(root *jsonschema.ValidationError) []string {
	out := []string{"Validation failed:"}
	seen := map[string]bool{}
	queue := []*jsonschema.ValidationError{root}
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		queue = append(queue, e.Causes...)
		if len(e.Causes) > 0 && isWrapper(e.Message) {
			continue
		}
		line := "#" + e.InstanceLocation + ": " + e.Message
		if !seen[line] {
			seen[line] = true
			out = append(out, line)
		}
	}
	if len(out) == 1 {
		out = append(out, "#"+root.InstanceLocation+": "+root.Message)
	}
	return out
}

func isWrapper(msg string) bool {
	return msg == "" || strings.HasPrefix(msg, "doesn't validate with")
}
