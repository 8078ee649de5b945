package v16

import "encoding/xml"

// BomReference is a reference to a bom-ref. XML carries it in a ref
// attribute of the list item; JSON carries the bare string.
type BomReference string

func (r BomReference) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "ref"}, Value: string(r)})
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

func (r *BomReference) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		if a.Name.Local == "ref" {
			*r = BomReference(a.Value)
		}
	}
	return d.Skip()
}
