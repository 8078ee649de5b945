package v12

import "time"

type Component struct {
	Type               ComponentType         `xml:"type,attr" json:"type"`
	MimeType           string                `xml:"mime-type,attr,omitempty" json:"mime-type,omitempty"`
	BomRef             string                `xml:"bom-ref,attr,omitempty" json:"bom-ref,omitempty"`
	Supplier           *OrganizationalEntity `xml:"supplier,omitempty" json:"supplier,omitempty"`
	Author             string                `xml:"author,omitempty" json:"author,omitempty"`
	Publisher          string                `xml:"publisher,omitempty" json:"publisher,omitempty"`
	Group              string                `xml:"group,omitempty" json:"group,omitempty"`
	Name               string                `xml:"name" json:"name"`
	Version            string                `xml:"version" json:"version"`
	Description        string                `xml:"description,omitempty" json:"description,omitempty"`
	Scope              *Scope                `xml:"scope,omitempty" json:"scope,omitempty"`
	Hashes             []Hash                `xml:"hashes>hash,omitempty" json:"hashes,omitempty"`
	Licenses           Licenses              `xml:"licenses,omitempty" json:"licenses,omitempty"`
	Copyright          string                `xml:"copyright,omitempty" json:"copyright,omitempty"`
	Cpe                string                `xml:"cpe,omitempty" json:"cpe,omitempty"`
	Purl               string                `xml:"purl,omitempty" json:"purl,omitempty"`
	Swid               *Swid                 `xml:"swid,omitempty" json:"swid,omitempty"`
	Modified           *bool                 `xml:"modified,omitempty" json:"modified,omitempty"`
	Pedigree           *Pedigree             `xml:"pedigree,omitempty" json:"pedigree,omitempty"`
	ExternalReferences []ExternalReference   `xml:"externalReferences>reference,omitempty" json:"externalReferences,omitempty"`
	Components         []Component           `xml:"components>component,omitempty" json:"components,omitempty"`
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

type Swid struct {
	TagID      string        `xml:"tagId,attr" json:"tagId"`
	Name       string        `xml:"name,attr" json:"name"`
	Version    string        `xml:"version,attr,omitempty" json:"version,omitempty"`
	TagVersion *int          `xml:"tagVersion,attr,omitempty" json:"tagVersion,omitempty"`
	Patch      *bool         `xml:"patch,attr,omitempty" json:"patch,omitempty"`
	Text       *AttachedText `xml:"text,omitempty" json:"text,omitempty"`
	URL        string        `xml:"url,omitempty" json:"url,omitempty"`
}

type Pedigree struct {
	Ancestors   []Component `xml:"ancestors>component,omitempty" json:"ancestors,omitempty"`
	Descendants []Component `xml:"descendants>component,omitempty" json:"descendants,omitempty"`
	Variants    []Component `xml:"variants>component,omitempty" json:"variants,omitempty"`
	Commits     []Commit    `xml:"commits>commit,omitempty" json:"commits,omitempty"`
	Patches     []Patch     `xml:"patches>patch,omitempty" json:"patches,omitempty"`
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

type Patch struct {
	Type     PatchType `xml:"type,attr" json:"type"`
	Diff     *Diff     `xml:"diff,omitempty" json:"diff,omitempty"`
	Resolves []Issue   `xml:"resolves>issue,omitempty" json:"resolves,omitempty"`
}

type Diff struct {
	Text *AttachedText `xml:"text,omitempty" json:"text,omitempty"`
	URL  string        `xml:"url,omitempty" json:"url,omitempty"`
}

type Issue struct {
	Type        IssueType `xml:"type,attr" json:"type"`
	ID          string    `xml:"id,omitempty" json:"id,omitempty"`
	Name        string    `xml:"name,omitempty" json:"name,omitempty"`
	Description string    `xml:"description,omitempty" json:"description,omitempty"`
	Source      *Source   `xml:"source,omitempty" json:"source,omitempty"`
	References  []string  `xml:"references>url,omitempty" json:"references,omitempty"`
}

type Source struct {
	Name string `xml:"name,omitempty" json:"name,omitempty"`
	URL  string `xml:"url,omitempty" json:"url,omitempty"`
}
