package model

// BlobRef refers to an encoded document directly or by CID.
// Exactly one of CID or Bytes must be set.
//
// JSON note: Bytes are encoded as base64 by encoding/json.
type BlobRef struct {
	CID   string `json:"cid,omitempty"`
	Bytes []byte `json:"bytes,omitempty"`
}

// Document is an encoded BOM produced by an operation.
type Document struct {
	Bytes       []byte `json:"bytes"`
	CID         string `json:"cid"`
	Format      string `json:"format"`
	SpecVersion string `json:"specVersion"`
	MediaType   string `json:"mediaType"`
	// Stored is true when the bytes were written to the CAS.
	Stored bool `json:"stored,omitempty"`
}

// Output selects the encoding of an operation's result. Empty fields
// default to JSON at the latest generation.
type Output struct {
	Format      string `json:"format,omitempty"`
	SpecVersion string `json:"specVersion,omitempty"`
	Indent      bool   `json:"indent,omitempty"`
	// Store persists the result in the CAS.
	Store bool `json:"store,omitempty"`
}

type ConvertRequest struct {
	Input  BlobRef `json:"input"`
	Output Output  `json:"output"`
}

type ConvertResponse struct {
	InputFormat      string   `json:"inputFormat"`
	InputSpecVersion string   `json:"inputSpecVersion"`
	Output           Document `json:"output"`
}

type ValidateRequest struct {
	Input BlobRef `json:"input"`
	// Format and SpecVersion are detected from the bytes when empty.
	Format      string `json:"format,omitempty"`
	SpecVersion string `json:"specVersion,omitempty"`
	// CheckReferences also reports duplicate and dangling bom-refs.
	CheckReferences bool `json:"checkReferences,omitempty"`
}

type ValidateResponse struct {
	Valid             bool     `json:"valid"`
	Format            string   `json:"format"`
	SpecVersion       string   `json:"specVersion,omitempty"`
	Messages          []string `json:"messages"`
	ReferenceProblems []string `json:"referenceProblems,omitempty"`
}

// Subject identifies the component a merged BOM describes.
type Subject struct {
	BomRef  string `json:"bomRef,omitempty"`
	Group   string `json:"group,omitempty"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

type MergeRequest struct {
	Inputs       []BlobRef `json:"inputs"`
	Hierarchical bool      `json:"hierarchical,omitempty"`
	Subject      *Subject  `json:"subject,omitempty"`
	Output       Output    `json:"output"`
}

type MergeResponse struct {
	Output Document `json:"output"`
}

type DiffRequest struct {
	From BlobRef `json:"from"`
	To   BlobRef `json:"to"`
}

// ComponentRef is the boundary projection of a component in a diff.
type ComponentRef struct {
	BomRef  string `json:"bomRef,omitempty"`
	Group   string `json:"group,omitempty"`
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Purl    string `json:"purl,omitempty"`
}

type ComponentDiff struct {
	Added     []ComponentRef `json:"added"`
	Removed   []ComponentRef `json:"removed"`
	Unchanged []ComponentRef `json:"unchanged"`
}

type DiffResponse struct {
	// Components is keyed by "group:name" (or "name" without a group).
	Components map[string]ComponentDiff `json:"components"`
}
