package validate

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"xdao.co/sbom/codec/xmlcodec"
	"xdao.co/sbom/sbomerr"
	"xdao.co/sbom/specversion"
	"xdao.co/sbom/validate/xsd"
)

func xmlSchemaName(v specversion.Version) string {
	return "bom-" + v.String() + ".xsd"
}

func compileXML(v specversion.Version) (*xsd.Schema, error) {
	return xsd.Compile(xmlSchemaName(v), readSchema)
}

// ValidateXML validates an XML document against the generation named by
// its root namespace.
func ValidateXML(doc []byte) (Result, error) {
	v, err := xmlcodec.DetectVersion(doc)
	if err != nil {
		if sbomerr.RuleID(err) == "SBOM-DEC-XML-003" {
			ns, _ := rootNamespace(doc)
			return invalid(fmt.Sprintf("Unknown namespace URI: %s", ns)), nil
		}
		return invalid("Unable to parse XML document: " + err.Error()), nil
	}
	return Validate(doc, v, specversion.XML)
}

func validateXML(doc []byte, v specversion.Version) (Result, error) {
	s, err := schemaFor(specversion.XML, v)
	if err != nil {
		return Result{}, err
	}
	if ns, ok := rootNamespace(doc); ok && ns != specversion.XMLNamespace(v) {
		return invalid(fmt.Sprintf("Invalid namespace URI: expected %s actual %s", specversion.XMLNamespace(v), ns)), nil
	}
	errs, err := s.xml.Validate(bytes.NewReader(doc))
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, fmt.Sprintf("Validation failed at line number %d and position %d: %s", e.Line, e.Column, e.Message))
	}
	if se, ok := err.(*xsd.SyntaxError); ok {
		msgs = append(msgs, fmt.Sprintf("Validation failed at line number %d and position %d: %v", se.Line, se.Column, se.Err))
	}
	if len(msgs) > 0 {
		return invalid(msgs...), nil
	}
	return valid(), nil
}

// rootNamespace returns the namespace of the first element, if there is one.
func rootNamespace(doc []byte) (string, bool) {
	dec := xml.NewDecoder(bytes.NewReader(doc))
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", false
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se.Name.Space, true
		}
	}
}
