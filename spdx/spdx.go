// Package spdx reads and writes SPDX 2.x JSON documents using the
// tools-golang object model. Documents of every 2.x version are upgraded to
// the 2.3 model on Read.
package spdx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	spdxjson "github.com/spdx/tools-golang/json"
	"github.com/spdx/tools-golang/spdx/v2/common"
	"github.com/spdx/tools-golang/spdx/v2/v2_1"
	"github.com/spdx/tools-golang/spdx/v2/v2_2"
	"github.com/spdx/tools-golang/spdx/v2/v2_3"

	"xdao.co/sbom/sbomerr"
)

const (
	Version     = v2_3.Version
	DataLicense = v2_3.DataLicense
	NoAssertion = "NOASSERTION"
	None        = "NONE"

	// DocumentID is the conventional document element, without the
	// SPDXRef- prefix the model strips.
	DocumentID common.ElementID = "DOCUMENT"
)

// External reference categories.
const (
	CategorySecurity       = common.CategorySecurity
	CategoryPackageManager = common.CategoryPackageManager
	CategoryPersistentID   = common.CategoryPersistentId
	CategoryOther          = common.CategoryOther
)

// Relationship types written by the interop converter.
const (
	RelationshipDescribes = common.TypeRelationshipDescribe
	RelationshipDependsOn = common.TypeRelationshipDependsOn
)

type (
	Document                 = v2_3.Document
	CreationInfo             = v2_3.CreationInfo
	Package                  = v2_3.Package
	PackageExternalReference = v2_3.PackageExternalReference
	Relationship             = v2_3.Relationship
	OtherLicense             = v2_3.OtherLicense
	Annotation               = v2_3.Annotation
	ExternalDocumentRef      = v2_3.ExternalDocumentRef
)

const (
	elementPrefix  = "SPDXRef-"
	documentPrefix = "DocumentRef-"
)

// ElementID strips the SPDXRef- prefix from an identifier.
func ElementID(s string) common.ElementID {
	return common.ElementID(strings.TrimPrefix(s, elementPrefix))
}

// DocElementID parses a possibly external element reference such as
// "DocumentRef-a:SPDXRef-b", "SPDXRef-b" or NONE.
func DocElementID(s string) common.DocElementID {
	if s == None || s == NoAssertion {
		return common.MakeDocElementSpecial(s)
	}
	if rest, ok := strings.CutPrefix(s, documentPrefix); ok {
		doc, elem, _ := strings.Cut(rest, ":")
		return common.MakeDocElementID(doc, string(ElementID(elem)))
	}
	return common.MakeDocElementID("", string(ElementID(s)))
}

// Read decodes an SPDX 2.x JSON document.
func Read(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	var head struct {
		SPDXVersion string `json:"spdxVersion"`
	}
	if err := dec.Decode(&head); err != nil {
		return nil, sbomerr.Wrap(sbomerr.KindParse, "SBOM-SPDX-001", "decode SPDX JSON", err)
	}
	if dec.More() {
		return nil, sbomerr.New(sbomerr.KindParse, "SBOM-SPDX-001", "trailing data after SPDX document")
	}
	switch head.SPDXVersion {
	case v2_1.Version, v2_2.Version, v2_3.Version:
	default:
		return nil, sbomerr.New(sbomerr.KindUnsupported, "SBOM-SPDX-002", "unsupported spdxVersion "+head.SPDXVersion)
	}
	doc, err := spdxjson.Read(bytes.NewReader(data))
	if err != nil {
		return nil, sbomerr.Wrap(sbomerr.KindParse, "SBOM-SPDX-001", "decode SPDX JSON", err)
	}
	for _, p := range doc.Packages {
		if p != nil {
			canonicalCategories(p.PackageExternalReferences)
		}
	}
	return doc, nil
}

// canonicalCategories accepts the lower case and underscore spellings of
// external reference categories that some producers emit.
func canonicalCategories(refs []*PackageExternalReference) {
	for _, ref := range refs {
		if ref != nil {
			ref.Category = strings.ReplaceAll(strings.ToUpper(ref.Category), "_", "-")
		}
	}
}

// Write encodes doc as indented JSON.
func Write(w io.Writer, doc *Document) error {
	if doc == nil {
		return sbomerr.New(sbomerr.KindInternal, "SBOM-SPDX-003", "nil SPDX document")
	}
	if err := spdxjson.Write(doc, w, spdxjson.Indent("  "), spdxjson.EscapeHTML(false)); err != nil {
		return fmt.Errorf("spdx: write: %w", err)
	}
	return nil
}
