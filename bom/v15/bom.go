// Package v15 is the CycloneDX 1.5 document model.
package v15

import (
	"encoding/xml"
	"time"

	"xdao.co/sbom/specversion"
)

type Bom struct {
	XMLName            xml.Name            `xml:"http://cyclonedx.org/schema/bom/1.5 bom" json:"-"`
	SerialNumber       string              `xml:"serialNumber,attr,omitempty" json:"serialNumber,omitempty"`
	Version            int                 `xml:"version,attr,omitempty" json:"version,omitempty"`
	Metadata           *Metadata           `xml:"metadata,omitempty" json:"metadata,omitempty"`
	Components         []Component         `xml:"components>component,omitempty" json:"components,omitempty"`
	Services           []Service           `xml:"services>service,omitempty" json:"services,omitempty"`
	ExternalReferences []ExternalReference `xml:"externalReferences>reference,omitempty" json:"externalReferences,omitempty"`
	Dependencies       []Dependency        `xml:"dependencies>dependency,omitempty" json:"dependencies,omitempty"`
	Compositions       []Composition       `xml:"compositions>composition,omitempty" json:"compositions,omitempty"`
	Properties         []Property          `xml:"properties>property,omitempty" json:"properties,omitempty"`
	Vulnerabilities    []Vulnerability     `xml:"vulnerabilities>vulnerability,omitempty" json:"vulnerabilities,omitempty"`
	Annotations        []Annotation        `xml:"annotations>annotation,omitempty" json:"annotations,omitempty"`
}

func (*Bom) SchemaVersion() specversion.Version { return specversion.V1_5 }

type Metadata struct {
	Timestamp   *time.Time              `xml:"timestamp,omitempty" json:"timestamp,omitempty"`
	Lifecycles  []Lifecycle             `xml:"lifecycles>lifecycle,omitempty" json:"lifecycles,omitempty"`
	Tools       []Tool                  `xml:"tools>tool,omitempty" json:"tools,omitempty"`
	Authors     []OrganizationalContact `xml:"authors>author,omitempty" json:"authors,omitempty"`
	Component   *Component              `xml:"component,omitempty" json:"component,omitempty"`
	Manufacture *OrganizationalEntity   `xml:"manufacture,omitempty" json:"manufacture,omitempty"`
	Supplier    *OrganizationalEntity   `xml:"supplier,omitempty" json:"supplier,omitempty"`
	Licenses    Licenses                `xml:"licenses,omitempty" json:"licenses,omitempty"`
	Properties  []Property              `xml:"properties>property,omitempty" json:"properties,omitempty"`
}

// Lifecycle is either a predefined Phase or a custom Name/Description pair.
type Lifecycle struct {
	Phase       LifecyclePhase `xml:"phase,omitempty" json:"phase,omitempty"`
	Name        string         `xml:"name,omitempty" json:"name,omitempty"`
	Description string         `xml:"description,omitempty" json:"description,omitempty"`
}

type Tool struct {
	Vendor             string              `xml:"vendor,omitempty" json:"vendor,omitempty"`
	Name               string              `xml:"name,omitempty" json:"name,omitempty"`
	Version            string              `xml:"version,omitempty" json:"version,omitempty"`
	Hashes             []Hash              `xml:"hashes>hash,omitempty" json:"hashes,omitempty"`
	ExternalReferences []ExternalReference `xml:"externalReferences>reference,omitempty" json:"externalReferences,omitempty"`
}

type OrganizationalEntity struct {
	BomRef  string                  `xml:"bom-ref,attr,omitempty" json:"bom-ref,omitempty"`
	Name    string                  `xml:"name,omitempty" json:"name,omitempty"`
	URL     []string                `xml:"url,omitempty" json:"url,omitempty"`
	Contact []OrganizationalContact `xml:"contact,omitempty" json:"contact,omitempty"`
}

type OrganizationalContact struct {
	BomRef string `xml:"bom-ref,attr,omitempty" json:"bom-ref,omitempty"`
	Name   string `xml:"name,omitempty" json:"name,omitempty"`
	Email  string `xml:"email,omitempty" json:"email,omitempty"`
	Phone  string `xml:"phone,omitempty" json:"phone,omitempty"`
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
	BomRef       string         `xml:"bom-ref,attr,omitempty" json:"bom-ref,omitempty"`
	Aggregate    Aggregate      `xml:"aggregate" json:"aggregate"`
	Assemblies   []BomReference `xml:"assemblies>assembly,omitempty" json:"assemblies,omitempty"`
	Dependencies []BomReference `xml:"dependencies>dependency,omitempty" json:"dependencies,omitempty"`
}

type Annotation struct {
	BomRef    string         `xml:"bom-ref,attr,omitempty" json:"bom-ref,omitempty"`
	Subjects  []BomReference `xml:"subjects>subject,omitempty" json:"subjects,omitempty"`
	Annotator *Annotator     `xml:"annotator,omitempty" json:"annotator,omitempty"`
	Timestamp *time.Time     `xml:"timestamp,omitempty" json:"timestamp,omitempty"`
	Text      string         `xml:"text" json:"text"`
}

// Annotator holds exactly one of its fields.
type Annotator struct {
	Organization *OrganizationalEntity  `xml:"organization,omitempty" json:"organization,omitempty"`
	Individual   *OrganizationalContact `xml:"individual,omitempty" json:"individual,omitempty"`
	Component    *Component             `xml:"component,omitempty" json:"component,omitempty"`
	Service      *Service               `xml:"service,omitempty" json:"service,omitempty"`
}
