package v14

import "time"

type Vulnerability struct {
	BomRef         string                   `xml:"bom-ref,attr,omitempty" json:"bom-ref,omitempty"`
	ID             string                   `xml:"id,omitempty" json:"id,omitempty"`
	Source         *Source                  `xml:"source,omitempty" json:"source,omitempty"`
	References     []VulnerabilityReference `xml:"references>reference,omitempty" json:"references,omitempty"`
	Ratings        []Rating                 `xml:"ratings>rating,omitempty" json:"ratings,omitempty"`
	CWEs           []int                    `xml:"cwes>cwe,omitempty" json:"cwes,omitempty"`
	Description    string                   `xml:"description,omitempty" json:"description,omitempty"`
	Detail         string                   `xml:"detail,omitempty" json:"detail,omitempty"`
	Recommendation string                   `xml:"recommendation,omitempty" json:"recommendation,omitempty"`
	Advisories     []Advisory               `xml:"advisories>advisory,omitempty" json:"advisories,omitempty"`
	Created        *time.Time               `xml:"created,omitempty" json:"created,omitempty"`
	Published      *time.Time               `xml:"published,omitempty" json:"published,omitempty"`
	Updated        *time.Time               `xml:"updated,omitempty" json:"updated,omitempty"`
	Analysis       *Analysis                `xml:"analysis,omitempty" json:"analysis,omitempty"`
	Affects        []Affects                `xml:"affects>target,omitempty" json:"affects,omitempty"`
	Properties     []Property               `xml:"properties>property,omitempty" json:"properties,omitempty"`
}

type VulnerabilityReference struct {
	ID     string  `xml:"id" json:"id"`
	Source *Source `xml:"source" json:"source"`
}

type Rating struct {
	Source        *Source     `xml:"source,omitempty" json:"source,omitempty"`
	Score         *float64    `xml:"score,omitempty" json:"score,omitempty"`
	Severity      Severity    `xml:"severity,omitempty" json:"severity,omitempty"`
	Method        ScoreMethod `xml:"method,omitempty" json:"method,omitempty"`
	Vector        string      `xml:"vector,omitempty" json:"vector,omitempty"`
	Justification string      `xml:"justification,omitempty" json:"justification,omitempty"`
}

type Advisory struct {
	Title string `xml:"title,omitempty" json:"title,omitempty"`
	URL   string `xml:"url" json:"url"`
}

type Analysis struct {
	State         ImpactAnalysisState         `xml:"state,omitempty" json:"state,omitempty"`
	Justification ImpactAnalysisJustification `xml:"justification,omitempty" json:"justification,omitempty"`
	Responses     []ImpactAnalysisResponse    `xml:"responses>response,omitempty" json:"response,omitempty"`
	Detail        string                      `xml:"detail,omitempty" json:"detail,omitempty"`
}

type Affects struct {
	Ref      string            `xml:"ref" json:"ref"`
	Versions []AffectedVersion `xml:"versions>version,omitempty" json:"versions,omitempty"`
}

// AffectedVersion names either a single Version or a Range.
type AffectedVersion struct {
	Version string         `xml:"version,omitempty" json:"version,omitempty"`
	Range   string         `xml:"range,omitempty" json:"range,omitempty"`
	Status  AffectedStatus `xml:"status,omitempty" json:"status,omitempty"`
}
