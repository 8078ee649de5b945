package v12

import (
	"encoding/xml"
	"fmt"
)

type License struct {
	ID   string        `xml:"id,omitempty" json:"id,omitempty"`
	Name string        `xml:"name,omitempty" json:"name,omitempty"`
	Text *AttachedText `xml:"text,omitempty" json:"text,omitempty"`
	URL  string        `xml:"url,omitempty" json:"url,omitempty"`
}

// LicenseChoice holds either a License or an SPDX Expression.
type LicenseChoice struct {
	License    *License `json:"license,omitempty"`
	Expression string   `json:"expression,omitempty"`
}

// Licenses is the ordered license choice list. On the XML wire the choices
// are sibling <license> and <expression> elements.
type Licenses []LicenseChoice

func (l Licenses) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if len(l) == 0 {
		return nil
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range l {
		switch {
		case c.License != nil:
			if err := e.EncodeElement(c.License, xml.StartElement{Name: xml.Name{Local: "license"}}); err != nil {
				return err
			}
		case c.Expression != "":
			if err := e.EncodeElement(c.Expression, xml.StartElement{Name: xml.Name{Local: "expression"}}); err != nil {
				return err
			}
		}
	}
	return e.EncodeToken(start.End())
}

func (l *Licenses) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var out Licenses
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "license":
				var lic License
				if err := d.DecodeElement(&lic, &t); err != nil {
					return err
				}
				out = append(out, LicenseChoice{License: &lic})
			case "expression":
				var expr string
				if err := d.DecodeElement(&expr, &t); err != nil {
					return err
				}
				out = append(out, LicenseChoice{Expression: expr})
			default:
				return fmt.Errorf("v1.2: unexpected <%s> in <licenses>", t.Name.Local)
			}
		case xml.EndElement:
			*l = append(*l, out...)
			return nil
		}
	}
}
