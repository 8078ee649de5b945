package v11

import "time"

type Component struct {
	Type               ComponentType       `xml:"type,attr" json:"type"`
	BomRef             string              `xml:"bom-ref,attr,omitempty" json:"bom-ref,omitempty"`
	Publisher          string              `xml:"publisher,omitempty" json:"publisher,omitempty"`
	Group              string              `xml:"group,omitempty" json:"group,omitempty"`
	Name               string              `xml:"name" json:"name"`
	Version            string              `xml:"version" json:"version"`
	Description        string              `xml:"description,omitempty" json:"description,omitempty"`
	Scope              *Scope              `xml:"scope,omitempty" json:"scope,omitempty"`
	Hashes             []Hash              `xml:"hashes>hash,omitempty" json:"hashes,omitempty"`
	Licenses           Licenses            `xml:"licenses,omitempty" json:"licenses,omitempty"`
	Copyright          string              `xml:"copyright,omitempty" json:"copyright,omitempty"`
	Cpe                string              `xml:"cpe,omitempty" json:"cpe,omitempty"`
	Purl               string              `xml:"purl,omitempty" json:"purl,omitempty"`
	Modified           *bool               `xml:"modified,omitempty" json:"modified,omitempty"`
	Pedigree           *Pedigree           `xml:"pedigree,omitempty" json:"pedigree,omitempty"`
	ExternalReferences []ExternalReference `xml:"externalReferences>reference,omitempty" json:"externalReferences,omitempty"`
	Components         []Component         `xml:"components>component,omitempty" json:"components,omitempty"`
}

type Hash struct {
	Alg     HashAlgorithm `xml:"alg,attr" json:"alg"`
	Content string        `xml:",chardata" json:"content"`
}

type AttachedText struct {
	ContentType string `xml:"content-type,attr,omitempty" json:"contentType,omitempty"`
	Encoding    string `xml:"encoding,attr,omitempty" json:"encoding,omitempty"`
	Content     string `xml:",chardata" json:"content"`
}

type Pedigree struct {
	Ancestors   []Component `xml:"ancestors>component,omitempty" json:"ancestors,omitempty"`
	Descendants []Component `xml:"descendants>component,omitempty" json:"descendants,omitempty"`
	Variants    []Component `xml:"variants>component,omitempty" json:"variants,omitempty"`
	Commits     []Commit    `xml:"commits>commit,omitempty" json:"commits,omitempty"`
	Notes       string      `xml:"notes,omitempty" json:"notes,omitempty"`
}

type Commit struct {
	UID       string              `xml:"uid,omitempty" json:"uid,omitempty"`
	URL       string              `xml:"url,omitempty" json:"url,omitempty"`
	Author    *IdentifiableAction `xml:"author,omitempty" json:"author,omitempty"`
	Committer *IdentifiableAction `xml:"committer,omitempty" json:"committer,omitempty"`
	Message   string              `xml:"message,omitempty" json:"message,omitempty"`
}

type IdentifiableAction struct {
	Timestamp *time.Time `xml:"timestamp,omitempty" json:"timestamp,omitempty"`
	Name      string     `xml:"name,omitempty" json:"name,omitempty"`
	Email     string     `xml:"email,omitempty" json:"email,omitempty"`
}
