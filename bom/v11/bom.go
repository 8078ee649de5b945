// Package v11 is the CycloneDX 1.1 document model.
package v11

import (
	"encoding/xml"

	"xdao.co/sbom/specversion"
)

type Bom struct {
	XMLName            xml.Name            `xml:"http://cyclonedx.org/schema/bom/1.1 bom" json:"-"`
	SerialNumber       string              `xml:"serialNumber,attr,omitempty" json:"serialNumber,omitempty"`
	Version            int                 `xml:"version,attr,omitempty" json:"version,omitempty"`
	Components         []Component         `xml:"components>component,omitempty" json:"components,omitempty"`
	ExternalReferences []ExternalReference `xml:"externalReferences>reference,omitempty" json:"externalReferences,omitempty"`
}

func (*Bom) SchemaVersion() specversion.Version { return specversion.V1_1 }

type ExternalReference struct {
	Type    ExternalReferenceType `xml:"type,attr" json:"type"`
	URL     string                `xml:"url" json:"url"`
	Comment string                `xml:"comment,omitempty" json:"comment,omitempty"`
}
