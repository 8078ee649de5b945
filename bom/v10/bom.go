// Package v10 is the CycloneDX 1.0 document model.
package v10

import (
	"encoding/xml"

	"xdao.co/sbom/specversion"
)

type Bom struct {
	XMLName    xml.Name    `xml:"http://cyclonedx.org/schema/bom/1.0 bom" json:"-"`
	Version    int         `xml:"version,attr,omitempty" json:"version,omitempty"`
	Components []Component `xml:"components>component,omitempty" json:"components,omitempty"`
}

func (*Bom) SchemaVersion() specversion.Version { return specversion.V1_0 }
