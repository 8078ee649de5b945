// Package xsd compiles and applies the subset of W3C XML Schema 1.0 used by
// the BOM schemas: global and local element declarations, named and
// anonymous complex types with sequence, choice and all groups, element
// wildcards, attributes and attribute wildcards, simple content extension,
// and simple type restriction with enumeration, pattern and length facets.
//
// Identity constraints, substitution groups, redefinition and xsi:type are
// not supported; a schema using them fails to compile.
package xsd

import (
	"encoding/xml"
	"fmt"
	"path"
	"strconv"
	"strings"
)

// Unbounded is the Max of a particle with maxOccurs="unbounded".
const Unbounded = -1

// Schema is a compiled set of schema documents.
type Schema struct {
	elements map[xml.Name]*Element
	types    map[xml.Name]*Type
	simple   map[xml.Name]*SimpleType
}

// Element is an element declaration.
type Element struct {
	Name xml.Name
	Type *Type
}

// Type is the content type of an element. A Type with a non-nil Simple and
// no Content is text-only; a Type with both nil is empty.
type Type struct {
	Name     xml.Name
	Simple   *SimpleType
	Content  *Particle
	Mixed    bool
	Attrs    []*Attribute
	AnyAttr  *Wildcard
	declared map[xml.Name]*Element
	wild     []*Wildcard
	done     bool
	node     *node
	scope    scope
}

// scope is the namespace context of the schema document a component
// appears in.
type scope struct {
	target    string
	qualified bool
}

// local is the namespace of local element declarations.
func (s scope) local() string {
	if s.qualified {
		return s.target
	}
	return ""
}

// Attribute is an attribute use.
type Attribute struct {
	Name     xml.Name
	Type     *SimpleType
	Required bool
}

// Particle is a term of a content model with its occurrence bounds.
type Particle struct {
	Kind     ParticleKind
	Min, Max int
	Element  *Element
	Children []*Particle
	Wildcard *Wildcard
}

// ParticleKind distinguishes the terms of a content model.
type ParticleKind int

const (
	ElementParticle ParticleKind = iota
	SequenceParticle
	ChoiceParticle
	AllParticle
	AnyParticle
)

// Wildcard is an xs:any or xs:anyAttribute namespace constraint.
type Wildcard struct {
	Any     bool
	Other   bool
	List    []string
	Target  string
	Process string
}

// Allows reports whether namespace ns satisfies the wildcard.
func (w *Wildcard) Allows(ns string) bool {
	switch {
	case w.Any:
		return true
	case w.Other:
		return ns != w.Target && ns != ""
	}
	for _, s := range w.List {
		if s == ns {
			return true
		}
	}
	return false
}

// Loader returns the bytes of the schema document at location.
type Loader func(location string) ([]byte, error)

type compiler struct {
	s       *Schema
	load    Loader
	loaded  map[string]bool
	pending []*Type
}

// Compile parses the schema document at location, every document it imports
// or includes, and compiles them into one Schema.
func Compile(location string, load Loader) (*Schema, error) {
	c := &compiler{
		s: &Schema{
			elements: map[xml.Name]*Element{},
			types:    map[xml.Name]*Type{},
			simple:   map[xml.Name]*SimpleType{},
		},
		load:   load,
		loaded: map[string]bool{},
	}
	var docs []*node
	if err := c.collect(location, &docs); err != nil {
		return nil, err
	}
	// Register every named component first so references can be cyclic.
	for _, d := range docs {
		sc := docScope(d)
		for _, n := range d.children {
			name := xml.Name{Space: sc.target, Local: n.attr("name")}
			switch {
			case n.is("complexType"):
				t := &Type{Name: name, node: n, scope: sc}
				c.s.types[name] = t
				c.pending = append(c.pending, t)
			case n.is("simpleType"):
				c.s.simple[name] = &SimpleType{Name: name, node: n}
			case n.is("element"):
				c.s.elements[name] = &Element{Name: name}
			}
		}
	}
	for _, st := range c.s.simple {
		if err := c.simpleType(st); err != nil {
			return nil, err
		}
	}
	for _, d := range docs {
		sc := docScope(d)
		for _, n := range d.children {
			if !n.is("element") {
				continue
			}
			e := c.s.elements[xml.Name{Space: sc.target, Local: n.attr("name")}]
			t, err := c.elementType(n, sc)
			if err != nil {
				return nil, err
			}
			e.Type = t
		}
	}
	for len(c.pending) > 0 {
		t := c.pending[0]
		c.pending = c.pending[1:]
		if err := c.complexType(t); err != nil {
			return nil, err
		}
	}
	return c.s, nil
}

func docScope(d *node) scope {
	return scope{target: d.attr("targetNamespace"), qualified: d.attr("elementFormDefault") == "qualified"}
}

func (c *compiler) collect(location string, docs *[]*node) error {
	if c.loaded[location] {
		return nil
	}
	c.loaded[location] = true
	data, err := c.load(location)
	if err != nil {
		return fmt.Errorf("load %s: %w", location, err)
	}
	d, err := parseDocument(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", location, err)
	}
	*docs = append(*docs, d)
	for _, n := range d.children {
		switch {
		case n.is("import"), n.is("include"):
			loc := n.attr("schemaLocation")
			if loc == "" {
				continue
			}
			if !path.IsAbs(loc) {
				loc = path.Join(path.Dir(location), loc)
			}
			if err := c.collect(loc, docs); err != nil {
				return err
			}
		case n.is("redefine"), n.is("group"), n.is("attributeGroup"):
			return fmt.Errorf("%s line %d: xs:%s is not supported", location, n.line, n.name.Local)
		}
	}
	return nil
}

func (c *compiler) lookupType(n *node, ref string) (*Type, *SimpleType, error) {
	q, err := n.qname(ref)
	if err != nil {
		return nil, nil, err
	}
	if q.Space == Namespace {
		if st := builtin(q.Local); st != nil {
			return nil, st, nil
		}
		if q.Local == "anyType" {
			return anyType, nil, nil
		}
		return nil, nil, fmt.Errorf("line %d: unknown built-in type %s", n.line, q.Local)
	}
	if t, ok := c.s.types[q]; ok {
		return t, nil, nil
	}
	if st, ok := c.s.simple[q]; ok {
		if err := c.simpleType(st); err != nil {
			return nil, nil, err
		}
		return nil, st, nil
	}
	return nil, nil, fmt.Errorf("line %d: undefined type %s", n.line, ref)
}

// elementType resolves the type of an element declaration node.
func (c *compiler) elementType(n *node, sc scope) (*Type, error) {
	if ref := n.attr("type"); ref != "" {
		t, st, err := c.lookupType(n, ref)
		if err != nil {
			return nil, err
		}
		if st != nil {
			return &Type{Simple: st, done: true}, nil
		}
		return t, nil
	}
	if ct := n.first("complexType"); ct != nil {
		t := &Type{node: ct, scope: sc}
		if err := c.complexType(t); err != nil {
			return nil, err
		}
		return t, nil
	}
	if sn := n.first("simpleType"); sn != nil {
		st := &SimpleType{node: sn}
		if err := c.simpleType(st); err != nil {
			return nil, err
		}
		return &Type{Simple: st, done: true}, nil
	}
	return anyType, nil
}

func (c *compiler) complexType(t *Type) error {
	if t.done {
		return nil
	}
	t.done = true
	n := t.node
	t.Mixed = n.attr("mixed") == "true"
	body := n
	if sc := n.first("simpleContent"); sc != nil {
		ext := sc.first("extension")
		if ext == nil {
			return fmt.Errorf("line %d: simpleContent supports extension only", sc.line)
		}
		base, st, err := c.lookupType(ext, ext.attr("base"))
		if err != nil {
			return err
		}
		if st == nil {
			if err := c.complexType(base); err != nil {
				return err
			}
			st = base.Simple
			t.Attrs = append(t.Attrs, base.Attrs...)
			t.AnyAttr = base.AnyAttr
		}
		t.Simple = st
		return c.attributes(t, ext)
	}
	if cc := n.first("complexContent"); cc != nil {
		ext := cc.first("extension")
		if ext == nil {
			return fmt.Errorf("line %d: complexContent supports extension only", cc.line)
		}
		base, _, err := c.lookupType(ext, ext.attr("base"))
		if err != nil {
			return err
		}
		if base == nil {
			return fmt.Errorf("line %d: complexContent base must be a complex type", ext.line)
		}
		if err := c.complexType(base); err != nil {
			return err
		}
		t.Attrs = append(t.Attrs, base.Attrs...)
		t.AnyAttr = base.AnyAttr
		own, err := c.groupOf(ext, t.scope)
		if err != nil {
			return err
		}
		switch {
		case base.Content == nil:
			t.Content = own
		case own == nil:
			t.Content = base.Content
		default:
			t.Content = &Particle{Kind: SequenceParticle, Min: 1, Max: 1, Children: []*Particle{base.Content, own}}
		}
		t.index()
		return c.attributes(t, ext)
	}
	p, err := c.groupOf(body, t.scope)
	if err != nil {
		return err
	}
	t.Content = p
	t.index()
	return c.attributes(t, body)
}

// groupOf compiles the model group directly under n, if any.
func (c *compiler) groupOf(n *node, sc scope) (*Particle, error) {
	for _, ch := range n.children {
		if ch.is("sequence") || ch.is("choice") || ch.is("all") {
			return c.particle(ch, sc)
		}
	}
	return nil, nil
}

func (c *compiler) particle(n *node, sc scope) (*Particle, error) {
	lo, hi, err := occurs(n)
	if err != nil {
		return nil, err
	}
	p := &Particle{Min: lo, Max: hi}
	switch n.name.Local {
	case "element":
		p.Kind = ElementParticle
		if ref := n.attr("ref"); ref != "" {
			q, err := n.qname(ref)
			if err != nil {
				return nil, err
			}
			e, ok := c.s.elements[q]
			if !ok {
				return nil, fmt.Errorf("line %d: undefined element %s", n.line, ref)
			}
			p.Element = e
			return p, nil
		}
		t, err := c.elementType(n, sc)
		if err != nil {
			return nil, err
		}
		p.Element = &Element{Name: xml.Name{Space: sc.local(), Local: n.attr("name")}, Type: t}
		if t.node != nil && !t.done {
			c.pending = append(c.pending, t)
		}
	case "any":
		p.Kind = AnyParticle
		p.Wildcard = wildcard(n, sc.target)
	case "sequence", "choice", "all":
		p.Kind = map[string]ParticleKind{"sequence": SequenceParticle, "choice": ChoiceParticle, "all": AllParticle}[n.name.Local]
		for _, ch := range n.children {
			if ch.is("annotation") {
				continue
			}
			if !(ch.is("element") || ch.is("any") || ch.is("sequence") || ch.is("choice")) {
				return nil, fmt.Errorf("line %d: xs:%s is not supported inside xs:%s", ch.line, ch.name.Local, n.name.Local)
			}
			cp, err := c.particle(ch, sc)
			if err != nil {
				return nil, err
			}
			p.Children = append(p.Children, cp)
		}
		if p.Kind == AllParticle && len(p.Children) > 64 {
			return nil, fmt.Errorf("line %d: xs:all with more than 64 members", n.line)
		}
	default:
		return nil, fmt.Errorf("line %d: xs:%s is not supported", n.line, n.name.Local)
	}
	return p, nil
}

func (c *compiler) attributes(t *Type, n *node) error {
	for _, a := range n.children {
		switch {
		case a.is("attribute"):
			if a.attr("ref") != "" {
				return fmt.Errorf("line %d: attribute references are not supported", a.line)
			}
			at := &Attribute{Name: xml.Name{Local: a.attr("name")}, Required: a.attr("use") == "required"}
			if a.attr("form") == "qualified" {
				at.Name.Space = t.scope.target
			}
			switch {
			case a.attr("type") != "":
				_, st, err := c.lookupType(a, a.attr("type"))
				if err != nil {
					return err
				}
				if st == nil {
					return fmt.Errorf("line %d: attribute %s has a complex type", a.line, at.Name.Local)
				}
				at.Type = st
			case a.first("simpleType") != nil:
				st := &SimpleType{node: a.first("simpleType")}
				if err := c.simpleType(st); err != nil {
					return err
				}
				at.Type = st
			default:
				at.Type = builtin("anySimpleType")
			}
			t.Attrs = append(t.Attrs, at)
		case a.is("anyAttribute"):
			t.AnyAttr = wildcard(a, t.scope.target)
		}
	}
	return nil
}

// index records the element declarations and wildcards reachable in the
// content model, for resolving children by name.
func (t *Type) index() {
	t.declared = map[xml.Name]*Element{}
	var walk func(p *Particle)
	walk = func(p *Particle) {
		switch p.Kind {
		case ElementParticle:
			if _, ok := t.declared[p.Element.Name]; !ok {
				t.declared[p.Element.Name] = p.Element
			}
		case AnyParticle:
			t.wild = append(t.wild, p.Wildcard)
		default:
			for _, c := range p.Children {
				walk(c)
			}
		}
	}
	if t.Content != nil {
		walk(t.Content)
	}
}

func occurs(n *node) (lo, hi int, err error) {
	lo, hi = 1, 1
	if v := n.attr("minOccurs"); v != "" {
		if lo, err = strconv.Atoi(v); err != nil || lo < 0 {
			return 0, 0, fmt.Errorf("line %d: bad minOccurs %q", n.line, v)
		}
	}
	if v := n.attr("maxOccurs"); v != "" {
		if v == "unbounded" {
			hi = Unbounded
		} else if hi, err = strconv.Atoi(v); err != nil || hi < 0 {
			return 0, 0, fmt.Errorf("line %d: bad maxOccurs %q", n.line, v)
		}
	}
	if hi != Unbounded && hi < lo {
		return 0, 0, fmt.Errorf("line %d: maxOccurs below minOccurs", n.line)
	}
	return lo, hi, nil
}

func wildcard(n *node, target string) *Wildcard {
	w := &Wildcard{Target: target, Process: n.attr("processContents")}
	if w.Process == "" {
		w.Process = "strict"
	}
	ns := n.attr("namespace")
	switch ns {
	case "", "##any":
		w.Any = true
	case "##other":
		w.Other = true
	default:
		for _, s := range strings.Fields(ns) {
			switch s {
			case "##targetNamespace":
				w.List = append(w.List, target)
			case "##local":
				w.List = append(w.List, "")
			default:
				w.List = append(w.List, s)
			}
		}
	}
	return w
}

// anyType accepts any attributes and any well-formed content.
var anyType = &Type{
	Name:    xml.Name{Space: Namespace, Local: "anyType"},
	Mixed:   true,
	Content: &Particle{Kind: AnyParticle, Min: 0, Max: Unbounded, Wildcard: &Wildcard{Any: true, Process: "lax"}},
	AnyAttr: &Wildcard{Any: true, Process: "lax"},
	done:    true,
}

func init() { anyType.index() }

// Element returns the global element declaration for name.
func (s *Schema) Element(name xml.Name) (*Element, bool) {
	e, ok := s.elements[name]
	return e, ok
}
