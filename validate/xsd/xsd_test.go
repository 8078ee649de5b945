package xsd

import (
	"encoding/xml"
	"fmt"
	"strings"
	"testing"
)

const testNS = "urn:test"

const library = `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" xmlns:t="urn:test"
           xmlns:o="urn:other"
           targetNamespace="urn:test" elementFormDefault="qualified">
  <xs:import namespace="urn:other" schemaLocation="other.xsd"/>
  <xs:simpleType name="Kind">
    <xs:restriction base="xs:string">
      <xs:enumeration value="book"/>
      <xs:enumeration value="map"/>
    </xs:restriction>
  </xs:simpleType>
  <xs:simpleType name="Code">
    <xs:restriction base="xs:token">
      <xs:pattern value="[A-Z]{3}"/>
      <xs:pattern value="[0-9]{3}"/>
    </xs:restriction>
  </xs:simpleType>
  <xs:complexType name="Note">
    <xs:simpleContent>
      <xs:extension base="xs:string">
        <xs:attribute name="lang" type="xs:token" use="required"/>
      </xs:extension>
    </xs:simpleContent>
  </xs:complexType>
  <xs:complexType name="Item">
    <xs:sequence>
      <xs:element name="title" type="xs:string"/>
      <xs:choice minOccurs="0">
        <xs:element name="isbn" type="t:Code"/>
        <xs:element name="issn" type="t:Code"/>
      </xs:choice>
      <xs:element name="pages" type="xs:positiveInteger" minOccurs="0"/>
      <xs:element name="note" type="t:Note" minOccurs="0" maxOccurs="2"/>
      <xs:element name="item" type="t:Item" minOccurs="0" maxOccurs="unbounded"/>
      <xs:any namespace="##other" processContents="lax" minOccurs="0" maxOccurs="unbounded"/>
    </xs:sequence>
    <xs:attribute name="kind" type="t:Kind" use="required"/>
    <xs:attribute name="added" type="xs:dateTime"/>
    <xs:anyAttribute namespace="##other" processContents="lax"/>
  </xs:complexType>
  <xs:complexType name="Shelf">
    <xs:all>
      <xs:element name="label" type="xs:string"/>
      <xs:element name="floor" type="xs:integer" minOccurs="0"/>
    </xs:all>
  </xs:complexType>
  <xs:element name="library">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="shelf" type="t:Shelf" minOccurs="0"/>
        <xs:element name="item" type="t:Item" maxOccurs="unbounded"/>
      </xs:sequence>
      <xs:attribute name="open" type="xs:boolean"/>
    </xs:complexType>
  </xs:element>
</xs:schema>`

const other = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           targetNamespace="urn:other" elementFormDefault="qualified">
  <xs:element name="stamp" type="xs:date"/>
</xs:schema>`

func compileLibrary(t *testing.T) *Schema {
	t.Helper()
	s, err := Compile("schemas/library.xsd", func(loc string) ([]byte, error) {
		switch loc {
		case "schemas/library.xsd":
			return []byte(library), nil
		case "schemas/other.xsd":
			return []byte(other), nil
		}
		return nil, fmt.Errorf("no such schema %s", loc)
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return s
}

func validate(t *testing.T, s *Schema, doc string) []Error {
	t.Helper()
	errs, err := s.Validate(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return errs
}

func TestValidDocument(t *testing.T) {
	s := compileLibrary(t)
	doc := `<library xmlns="urn:test" xmlns:o="urn:other" xmlns:x="urn:ext" open="1">
  <shelf><floor> 2 </floor><label>A</label></shelf>
  <item kind="book" added="2024-05-01T10:00:00Z" x:tag="t">
    <title>Go</title>
    <isbn> ABC </isbn>
    <pages>300</pages>
    <note lang="en">first</note>
    <note lang="de">zweite</note>
    <item kind="map"><title>Inner</title></item>
    <o:stamp>2024-01-02</o:stamp>
    <x:unknown><anything/></x:unknown>
  </item>
</library>`
	if errs := validate(t, s, doc); len(errs) != 0 {
		t.Fatalf("unexpected failures: %v", errs)
	}
}

func TestFailures(t *testing.T) {
	s := compileLibrary(t)
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"undeclared root", `<shelf xmlns="urn:test"/>`, "The 'urn:test:shelf' element is not declared."},
		{"incomplete", `<library xmlns="urn:test"/>`, "has incomplete content. List of possible elements expected: 'item', 'shelf'."},
		{"order", `<library xmlns="urn:test"><item kind="book"><pages>1</pages><title>x</title></item></library>`, "has invalid child element 'pages' in namespace 'urn:test'."},
		{"choice once", `<library xmlns="urn:test"><item kind="book"><title>x</title><isbn>ABC</isbn><issn>123</issn></item></library>`, "invalid child element 'issn'"},
		{"max occurs", `<library xmlns="urn:test"><item kind="book"><title>x</title><note lang="a">1</note><note lang="a">2</note><note lang="a">3</note></item></library>`, "invalid child element 'note'"},
		{"enumeration", `<library xmlns="urn:test"><item kind="film"><title>x</title></item></library>`, "The 'kind' attribute is invalid - The value 'film' is invalid according to its datatype 'urn:test:Kind' - The Enumeration constraint failed."},
		{"required attribute", `<library xmlns="urn:test"><item><title>x</title></item></library>`, "The required attribute 'kind' is missing."},
		{"undeclared attribute", `<library xmlns="urn:test" color="red"><item kind="map"><title>x</title></item></library>`, "The 'color' attribute is not declared."},
		{"pattern", `<library xmlns="urn:test"><item kind="map"><title>x</title><isbn>AB1</isbn></item></library>`, "The Pattern constraint failed."},
		{"positive integer", `<library xmlns="urn:test"><item kind="map"><title>x</title><pages>0</pages></item></library>`, "'urn:test:pages' element is invalid"},
		{"dateTime", `<library xmlns="urn:test"><item kind="map" added="2024-13-01T00:00:00Z"><title>x</title></item></library>`, "The 'added' attribute is invalid"},
		{"text in element content", `<library xmlns="urn:test">stray<item kind="map"><title>x</title></item></library>`, "cannot contain text"},
		{"text only", `<library xmlns="urn:test"><item kind="map"><title><b/></title></item></library>`, "content model is text only"},
		{"all required", `<library xmlns="urn:test"><shelf><floor>1</floor></shelf><item kind="map"><title>x</title></item></library>`, "'shelf' in namespace 'urn:test' has incomplete content"},
		{"all twice", `<library xmlns="urn:test"><shelf><label>a</label><label>b</label></shelf><item kind="map"><title>x</title></item></library>`, "invalid child element 'label'"},
		{"lax wildcard validates known elements", `<library xmlns="urn:test" xmlns:o="urn:other"><item kind="map"><title>x</title><o:stamp>yesterday</o:stamp></item></library>`, "'urn:other:stamp' element is invalid"},
		{"wildcard excludes own namespace", `<library xmlns="urn:test"><item kind="map"><title>x</title><bogus/></item></library>`, "invalid child element 'bogus'"},
		{"simple content attribute", `<library xmlns="urn:test"><item kind="map"><title>x</title><note>n</note></item></library>`, "The required attribute 'lang' is missing."},
	}
	for _, tc := range cases {
		errs := validate(t, s, tc.doc)
		if len(errs) == 0 {
			t.Fatalf("%s: expected a failure", tc.name)
		}
		found := false
		for _, e := range errs {
			if strings.Contains(e.Message, tc.want) {
				found = true
			}
		}
		if !found {
			t.Fatalf("%s: no failure contains %q: %v", tc.name, tc.want, errs)
		}
	}
}

func TestPositions(t *testing.T) {
	s := compileLibrary(t)
	doc := "<library xmlns=\"urn:test\">\n  <item kind=\"map\">\n    <title>x</title>\n    <bogus/>\n  </item>\n</library>"
	errs := validate(t, s, doc)
	if len(errs) != 1 {
		t.Fatalf("expected one failure, got %v", errs)
	}
	if errs[0].Line != 4 || errs[0].Column != 5 {
		t.Fatalf("failure at %d:%d, want 4:5", errs[0].Line, errs[0].Column)
	}
}

func TestSyntaxError(t *testing.T) {
	s := compileLibrary(t)
	_, err := s.Validate(strings.NewReader(`<library xmlns="urn:test"><item>`))
	if _, ok := err.(*SyntaxError); !ok {
		t.Fatalf("expected *SyntaxError, got %v", err)
	}
	if _, err := s.Validate(strings.NewReader(``)); err == nil {
		t.Fatalf("expected an error for an empty document")
	}
}

func TestUnsupportedConstructs(t *testing.T) {
	for _, body := range []string{
		`<xs:group name="g"><xs:sequence/></xs:group>`,
		`<xs:simpleType name="l"><xs:list itemType="xs:string"/></xs:simpleType>`,
		`<xs:simpleType name="p"><xs:restriction base="xs:string"><xs:pattern value="[a-z-[aeiou]]"/></xs:restriction></xs:simpleType>`,
		`<xs:element name="e" type="xs:duration"/>`,
	} {
		doc := `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:x">` + body + `</xs:schema>`
		_, err := Compile("x.xsd", func(string) ([]byte, error) { return []byte(doc), nil })
		if err == nil {
			t.Fatalf("Compile accepted %s", body)
		}
	}
}

func TestTranslatePattern(t *testing.T) {
	for p, want := range map[string]bool{
		`urn:uuid:[0-9a-f]{8}-[0-9a-f]{4}-[89abAB][0-9a-f]{3}`: true,
		`[0-9]{3}-[A-Z]`:                                       true,
		`[\-[]x`:                                               true,
		`[a-z-[aeiou]]`:                                        false,
		`[\p{L}-[a]]`:                                          false,
	} {
		_, err := translatePattern(p)
		if got := err == nil; got != want {
			t.Errorf("translatePattern(%q): accepted=%v, want %v (%v)", p, got, want, err)
		}
	}
}

func name(local string) xml.Name { return xml.Name{Space: testNS, Local: local} }

func TestMatcher(t *testing.T) {
	a := &Particle{Kind: ElementParticle, Min: 1, Max: 1, Element: &Element{Name: name("a")}}
	b := &Particle{Kind: ElementParticle, Min: 0, Max: Unbounded, Element: &Element{Name: name("b")}}
	seq := &Particle{Kind: SequenceParticle, Min: 1, Max: 1, Children: []*Particle{a, b}}
	twice := &Particle{Kind: SequenceParticle, Min: 2, Max: 2, Children: []*Particle{a, b}}

	names := func(s string) []xml.Name {
		var out []xml.Name
		for _, r := range s {
			out = append(out, name(string(r)))
		}
		return out
	}
	cases := []struct {
		p       *Particle
		in      string
		accepts bool
		invalid int
	}{
		{seq, "a", true, 1},
		{seq, "abbb", true, 4},
		{seq, "", false, 0},
		{seq, "ba", false, 0},
		{seq, "abab", false, 2},
		{twice, "abab", true, 4},
		{twice, "aab", true, 3},
		{twice, "a", false, 1},
		{twice, "aaa", false, 2},
	}
	for _, tc := range cases {
		in := names(tc.in)
		if got := accepts(tc.p, in); got != tc.accepts {
			t.Fatalf("accepts(%q) = %v", tc.in, got)
		}
		if got := firstInvalid(tc.p, in); got != tc.invalid {
			t.Fatalf("firstInvalid(%q) = %d, want %d", tc.in, got, tc.invalid)
		}
	}
}

func TestBuiltinLexicalSpaces(t *testing.T) {
	cases := []struct {
		typ   string
		value string
		ok    bool
	}{
		{"boolean", " true ", true},
		{"boolean", "yes", false},
		{"integer", "-12", true},
		{"integer", "1.0", false},
		{"positiveInteger", "+7", true},
		{"positiveInteger", "000", false},
		{"nonNegativeInteger", "0", true},
		{"nonNegativeInteger", "-1", false},
		{"decimal", ".5", true},
		{"decimal", "1e3", false},
		{"double", "1e3", true},
		{"double", "INF", true},
		{"dateTime", "2024-02-29T23:59:59.5+01:00", true},
		{"dateTime", "2023-02-29T00:00:00Z", false},
		{"dateTime", "2024-01-01", false},
		{"date", "2024-01-01Z", true},
		{"hexBinary", "0a1B", true},
		{"hexBinary", "abc", false},
		{"base64Binary", "aGVsbG8=", true},
		{"int", "4294967296", false},
		{"string", "  any\ttext ", true},
	}
	for _, tc := range cases {
		err := builtin(tc.typ).Check(tc.value)
		if (err == nil) != tc.ok {
			t.Fatalf("%s %q: err = %v, want ok=%v", tc.typ, tc.value, err, tc.ok)
		}
	}
}
