package v10

type Component struct {
	Type        ComponentType `xml:"type,attr" json:"type"`
	Publisher   string        `xml:"publisher,omitempty" json:"publisher,omitempty"`
	Group       string        `xml:"group,omitempty" json:"group,omitempty"`
	Name        string        `xml:"name" json:"name"`
	Version     string        `xml:"version" json:"version"`
	Description string        `xml:"description,omitempty" json:"description,omitempty"`
	Scope       *Scope        `xml:"scope,omitempty" json:"scope,omitempty"`
	Hashes      []Hash        `xml:"hashes>hash,omitempty" json:"hashes,omitempty"`
	Licenses    []License     `xml:"licenses>license,omitempty" json:"licenses,omitempty"`
	Copyright   string        `xml:"copyright,omitempty" json:"copyright,omitempty"`
	Cpe         string        `xml:"cpe,omitempty" json:"cpe,omitempty"`
	Purl        string        `xml:"purl,omitempty" json:"purl,omitempty"`
	Modified    *bool         `xml:"modified,omitempty" json:"modified,omitempty"`
	Components  []Component   `xml:"components>component,omitempty" json:"components,omitempty"`
}

type Hash struct {
	Alg     HashAlgorithm `xml:"alg,attr" json:"alg"`
	Content string        `xml:",chardata" json:"content"`
}

// License names a license by SPDX id or by free-text name. 1.0 has no
// license expressions.
type License struct {
	ID   string `xml:"id,omitempty" json:"id,omitempty"`
	Name string `xml:"name,omitempty" json:"name,omitempty"`
}
