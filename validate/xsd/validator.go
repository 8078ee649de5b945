package xsd

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// XSINamespace is the XML Schema instance namespace.
const XSINamespace = "http://www.w3.org/2001/XMLSchema-instance"

// Error is one validation failure at a position in the instance.
type Error struct {
	Line, Column int
	Message      string
}

func (e Error) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// SyntaxError reports input that is not well-formed XML.
type SyntaxError struct {
	Line, Column int
	Err          error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d, column %d: %v", e.Line, e.Column, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

type frame struct {
	elem      *Element
	typ       *Type
	skip      bool
	children  []xml.Name
	starts    []position
	text      strings.Builder
	at        position
	badChild  bool
	textError bool
}

type position struct{ line, col int }

type run struct {
	s      *Schema
	dec    *xml.Decoder
	stack  []*frame
	errs   []Error
	rooted bool
}

// Validate checks the document read from r against the schema and returns
// every failure in document order. A non-nil error means the input is not
// well-formed XML; failures found before that point are still returned.
func (s *Schema) Validate(r io.Reader) ([]Error, error) {
	v := &run{s: s, dec: xml.NewDecoder(r)}
	for {
		line, col := v.dec.InputPos()
		at := position{line, col}
		tok, err := v.dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			var se *xml.SyntaxError
			if errors.As(err, &se) {
				line = se.Line
			}
			return v.sorted(), &SyntaxError{Line: line, Column: col, Err: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			v.start(t, at)
		case xml.EndElement:
			v.end(at)
		case xml.CharData:
			if len(v.stack) > 0 {
				v.chars(t)
			}
		}
	}
	if !v.rooted {
		return v.sorted(), &SyntaxError{Line: 1, Column: 1, Err: errors.New("root element is missing")}
	}
	return v.sorted(), nil
}

func (v *run) sorted() []Error {
	sort.SliceStable(v.errs, func(i, j int) bool {
		a, b := v.errs[i], v.errs[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	return v.errs
}

func (v *run) fail(at position, format string, args ...any) {
	v.errs = append(v.errs, Error{Line: at.line, Column: at.col, Message: fmt.Sprintf(format, args...)})
}

func label(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func (v *run) start(t xml.StartElement, at position) {
	f := &frame{at: at}
	if len(v.stack) == 0 {
		v.rooted = true
		e, ok := v.s.elements[t.Name]
		if !ok {
			v.fail(at, "The '%s' element is not declared.", label(t.Name))
			f.skip = true
		} else {
			f.elem, f.typ = e, e.Type
		}
		v.stack = append(v.stack, f)
		if !f.skip {
			v.attributes(f, t)
		}
		return
	}
	parent := v.stack[len(v.stack)-1]
	if parent.skip {
		f.skip = true
		v.stack = append(v.stack, f)
		return
	}
	parent.children = append(parent.children, t.Name)
	parent.starts = append(parent.starts, at)
	e, skip := v.resolve(parent, t.Name, at)
	if skip {
		f.skip = true
	} else {
		f.elem, f.typ = e, e.Type
	}
	v.stack = append(v.stack, f)
	if !f.skip {
		v.attributes(f, t)
	}
}

// resolve finds the declaration for a child of parent. It reports skip for
// children handled by a lax or skip wildcard without a global declaration,
// and for undeclared children after recording the failure.
func (v *run) resolve(parent *frame, name xml.Name, at position) (*Element, bool) {
	pt := parent.typ
	if pt.Content == nil {
		if !parent.badChild {
			parent.badChild = true
			kind := "empty"
			if pt.Simple != nil {
				kind = "text only"
			}
			v.fail(at, "The element '%s' cannot contain child element '%s' because the parent element's content model is %s.", label(parent.elem.Name), label(name), kind)
		}
		return nil, true
	}
	if e, ok := pt.declared[name]; ok {
		return e, false
	}
	for _, w := range pt.wild {
		if !w.Allows(name.Space) {
			continue
		}
		if w.Process != "skip" {
			if e, ok := v.s.elements[name]; ok {
				return e, false
			}
			if w.Process == "strict" {
				v.fail(at, "The '%s' element is not declared.", label(name))
			}
		}
		return nil, true
	}
	// Content model checking at the end tag reports the invalid child.
	return nil, true
}

func (v *run) attributes(f *frame, t xml.StartElement) {
	seen := map[xml.Name]bool{}
	for _, a := range t.Attr {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") || a.Name.Space == XSINamespace {
			continue
		}
		if a.Name.Space == "xml" || a.Name.Space == "http://www.w3.org/XML/1998/namespace" {
			continue
		}
		decl := findAttr(f.typ, a.Name)
		if decl == nil {
			if f.typ.AnyAttr != nil && f.typ.AnyAttr.Allows(a.Name.Space) {
				continue
			}
			v.fail(f.at, "The '%s' attribute is not declared.", label(a.Name))
			continue
		}
		seen[decl.Name] = true
		if err := decl.Type.Check(a.Value); err != nil {
			v.fail(f.at, "The '%s' attribute is invalid - The value '%s' is invalid according to its datatype '%s' - %v.", label(a.Name), a.Value, decl.Type.Label(), err)
		}
	}
	for _, decl := range f.typ.Attrs {
		if decl.Required && !seen[decl.Name] {
			v.fail(f.at, "The required attribute '%s' is missing.", label(decl.Name))
		}
	}
}

func findAttr(t *Type, name xml.Name) *Attribute {
	for _, a := range t.Attrs {
		if a.Name == name {
			return a
		}
	}
	return nil
}

func (v *run) chars(data xml.CharData) {
	f := v.stack[len(v.stack)-1]
	if f.skip {
		return
	}
	if f.typ.Simple != nil || f.typ.Mixed {
		f.text.Write(data)
		return
	}
	if len(strings.TrimSpace(string(data))) > 0 && !f.textError {
		f.textError = true
		v.fail(f.at, "The element '%s' cannot contain text. The content model is element only.", label(f.elem.Name))
	}
}

func (v *run) end(at position) {
	f := v.stack[len(v.stack)-1]
	v.stack = v.stack[:len(v.stack)-1]
	if f.skip {
		return
	}
	t := f.typ
	if t.Simple != nil && t.Content == nil {
		value := f.text.String()
		if err := t.Simple.Check(value); err != nil {
			v.fail(f.at, "The '%s' element is invalid - The value '%s' is invalid according to its datatype '%s' - %v.", label(f.elem.Name), value, t.Simple.Label(), err)
		}
		return
	}
	if t.Content == nil || f.badChild {
		return
	}
	if accepts(t.Content, f.children) {
		return
	}
	i := firstInvalid(t.Content, f.children)
	ns := f.elem.Name.Space
	if i < len(f.children) {
		child := f.children[i]
		msg := fmt.Sprintf("The element '%s' in namespace '%s' has invalid child element '%s' in namespace '%s'.", f.elem.Name.Local, ns, child.Local, child.Space)
		if exp := expected(t, f.children[:i]); len(exp) > 0 {
			msg += " List of possible elements expected: " + names(exp) + "."
		}
		v.fail(f.starts[i], "%s", msg)
		return
	}
	msg := fmt.Sprintf("The element '%s' in namespace '%s' has incomplete content.", f.elem.Name.Local, ns)
	if exp := expected(t, f.children); len(exp) > 0 {
		msg += " List of possible elements expected: " + names(exp) + "."
	}
	v.fail(at, "%s", msg)
}

func names(ns []xml.Name) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = "'" + n.Local + "'"
	}
	return strings.Join(parts, ", ")
}
