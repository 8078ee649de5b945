package v12

type Service struct {
	BomRef             string                `xml:"bom-ref,attr,omitempty" json:"bom-ref,omitempty"`
	Provider           *OrganizationalEntity `xml:"provider,omitempty" json:"provider,omitempty"`
	Group              string                `xml:"group,omitempty" json:"group,omitempty"`
	Name               string                `xml:"name" json:"name"`
	Version            string                `xml:"version,omitempty" json:"version,omitempty"`
	Description        string                `xml:"description,omitempty" json:"description,omitempty"`
	Endpoints          []string              `xml:"endpoints>endpoint,omitempty" json:"endpoints,omitempty"`
	Authenticated      *bool                 `xml:"authenticated,omitempty" json:"authenticated,omitempty"`
	XTrustBoundary     *bool                 `xml:"x-trust-boundary,omitempty" json:"x-trust-boundary,omitempty"`
	Data               []DataClassification  `xml:"data>classification,omitempty" json:"data,omitempty"`
	Licenses           Licenses              `xml:"licenses,omitempty" json:"licenses,omitempty"`
	ExternalReferences []ExternalReference   `xml:"externalReferences>reference,omitempty" json:"externalReferences,omitempty"`
	Services           []Service             `xml:"services>service,omitempty" json:"services,omitempty"`
}

type DataClassification struct {
	Flow           DataFlow `xml:"flow,attr" json:"flow"`
	Classification string   `xml:",chardata" json:"classification"`
}
