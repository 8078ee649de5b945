package xsd

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Namespace is the XML Schema namespace.
const Namespace = "http://www.w3.org/2001/XMLSchema"

// node is one element of a schema document with the namespace bindings in
// scope at that element.
type node struct {
	name     xml.Name
	attrs    map[string]string
	ns       map[string]string
	children []*node
	line     int
}

func (n *node) attr(name string) string { return n.attrs[name] }

func (n *node) is(local string) bool {
	return n.name.Space == Namespace && n.name.Local == local
}

// each calls fn for every XSD child named local.
func (n *node) each(local string, fn func(*node) error) error {
	for _, c := range n.children {
		if c.is(local) {
			if err := fn(c); err != nil {
				return err
			}
		}
	}
	return nil
}

func (n *node) first(local string) *node {
	for _, c := range n.children {
		if c.is(local) {
			return c
		}
	}
	return nil
}

// qname resolves a prefixed attribute value such as "bom:Component".
func (n *node) qname(v string) (xml.Name, error) {
	prefix, local, ok := strings.Cut(v, ":")
	if !ok {
		return xml.Name{Space: n.ns[""], Local: v}, nil
	}
	space, found := n.ns[prefix]
	if !found {
		return xml.Name{}, fmt.Errorf("line %d: undeclared prefix %q in %q", n.line, prefix, v)
	}
	return xml.Name{Space: space, Local: local}, nil
}

func parseDocument(data []byte) (*node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var stack []*node
	var root *node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			line, _ := dec.InputPos()
			n := &node{name: t.Name, attrs: map[string]string{}, ns: map[string]string{}, line: line}
			if len(stack) > 0 {
				for k, v := range stack[len(stack)-1].ns {
					n.ns[k] = v
				}
			}
			for _, a := range t.Attr {
				switch {
				case a.Name.Space == "xmlns":
					n.ns[a.Name.Local] = a.Value
				case a.Name.Space == "" && a.Name.Local == "xmlns":
					n.ns[""] = a.Value
				case a.Name.Space == "":
					n.attrs[a.Name.Local] = a.Value
				}
			}
			if len(stack) > 0 {
				p := stack[len(stack)-1]
				p.children = append(p.children, n)
			} else {
				root = n
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}
	if root == nil || !root.is("schema") {
		return nil, fmt.Errorf("not an XML Schema document")
	}
	return root, nil
}
