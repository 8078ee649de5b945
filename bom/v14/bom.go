// Package v14 is the CycloneDX 1.4 document model, the first generation
// carrying vulnerabilities.
package v14

import (
	"encoding/xml"
	"time"

	"xdao.co/sbom/specversion"
)

type Bom struct {
	XMLName            xml.Name            `xml:"http://cyclonedx.org/schema/bom/1.4 bom" json:"-"`
	SerialNumber       string              `xml:"serialNumber,attr,omitempty" json:"serialNumber,omitempty"`
	Version            int                 `xml:"version,attr,omitempty" json:"version,omitempty"`
	Metadata           *Metadata           `xml:"metadata,omitempty" json:"metadata,omitempty"`
	Components         []Component         `xml:"components>component,omitempty" json:"components,omitempty"`
	Services           []Service           `xml:"services>service,omitempty" json:"services,omitempty"`
	ExternalReferences []ExternalReference `xml:"externalReferences>reference,omitempty" json:"externalReferences,omitempty"`
	Dependencies       []Dependency        `xml:"dependencies>dependency,omitempty" json:"dependencies,omitempty"`
	Compositions       []Composition       `xml:"compositions>composition,omitempty" json:"compositions,omitempty"`
	Vulnerabilities    []Vulnerability     `xml:"vulnerabilities>vulnerability,omitempty" json:"vulnerabilities,omitempty"`
}

func (*Bom) SchemaVersion() specversion.Version { return specversion.V1_4 }

type Metadata struct {
	Timestamp   *time.Time              `xml:"timestamp,omitempty" json:"timestamp,omitempty"`
	Tools       []Tool                  `xml:"tools>tool,omitempty" json:"tools,omitempty"`
	Authors     []OrganizationalContact `xml:"authors>author,omitempty" json:"authors,omitempty"`
	Component   *Component              `xml:"component,omitempty" json:"component,omitempty"`
	Manufacture *OrganizationalEntity   `xml:"manufacture,omitempty" json:"manufacture,omitempty"`
	Supplier    *OrganizationalEntity   `xml:"supplier,omitempty" json:"supplier,omitempty"`
	Licenses    Licenses                `xml:"licenses,omitempty" json:"licenses,omitempty"`
	Properties  []Property              `xml:"properties>property,omitempty" json:"properties,omitempty"`
}

type Tool struct {
	Vendor             string              `xml:"vendor,omitempty" json:"vendor,omitempty"`
	Name               string              `xml:"name,omitempty" json:"name,omitempty"`
	Version            string              `xml:"version,omitempty" json:"version,omitempty"`
	Hashes             []Hash              `xml:"hashes>hash,omitempty" json:"hashes,omitempty"`
	ExternalReferences []ExternalReference `xml:"externalReferences>reference,omitempty" json:"externalReferences,omitempty"`
}

type OrganizationalEntity struct {
	Name    string                  `xml:"name,omitempty" json:"name,omitempty"`
	URL     []string                `xml:"url,omitempty" json:"url,omitempty"`
	Contact []OrganizationalContact `xml:"contact,omitempty" json:"contact,omitempty"`
}

type OrganizationalContact struct {
	Name  string `xml:"name,omitempty" json:"name,omitempty"`
	Email string `xml:"email,omitempty" json:"email,omitempty"`
	Phone string `xml:"phone,omitempty" json:"phone,omitempty"`
}

type Property struct {
	Name  string `xml:"name,attr" json:"name"`
	Value string `xml:",chardata" json:"value,omitempty"`
}

type ExternalReference struct {
	Type    ExternalReferenceType `xml:"type,attr" json:"type"`
	URL     string                `xml:"url" json:"url"`
	Comment string                `xml:"comment,omitempty" json:"comment,omitempty"`
	Hashes  []Hash                `xml:"hashes>hash,omitempty" json:"hashes,omitempty"`
}

type Dependency struct {
	Ref       string         `xml:"ref,attr" json:"ref"`
	DependsOn []BomReference `xml:"dependency,omitempty" json:"dependsOn,omitempty"`
}

type Composition struct {
	Aggregate    Aggregate      `xml:"aggregate" json:"aggregate"`
	Assemblies   []BomReference `xml:"assemblies>assembly,omitempty" json:"assemblies,omitempty"`
	Dependencies []BomReference `xml:"dependencies>dependency,omitempty" json:"dependencies,omitempty"`
}
