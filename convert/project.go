package convert

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

type definer interface {
	IsDefined() bool
}

type typePair struct {
	src, dst reflect.Type
}

// hook replaces the default projection for one (source, target) type pair.
// It reports whether the projected value should be kept.
type hook func(p *projector, dst, src reflect.Value) bool

// projector copies a value of one model generation into the structurally
// similar type of an adjacent generation.
//
// Fields are matched by Go name. A field missing from the target is dropped;
// a field missing from the source is left zero. Every pointer and slice in
// the target is freshly allocated.
//
// Enumerations are checked with IsDefined on the target type. An undefined
// value in a required field (an xml tag without omitempty) removes the
// enclosing element: a slice item is filtered out, a pointer is left nil.
// An undefined value in an optional field clears that field only.
type projector struct {
	hooks map[typePair]hook
}

func newProjector() *projector {
	return &projector{hooks: map[typePair]hook{}}
}

func (p *projector) on(src, dst any, h hook) {
	p.hooks[typePair{reflect.TypeOf(src), reflect.TypeOf(dst)}] = h
}

// project fills the zero value behind dst from src. Both must be pointers to
// structs. It reports false when the root itself was filtered out.
func (p *projector) project(dst, src any) bool {
	return p.value(reflect.ValueOf(dst).Elem(), reflect.ValueOf(src).Elem())
}

func (p *projector) value(dst, src reflect.Value) bool {
	if h, ok := p.hooks[typePair{src.Type(), dst.Type()}]; ok {
		return h(p, dst, src)
	}
	switch src.Kind() {
	case reflect.Pointer:
		if src.IsNil() {
			return true
		}
		n := reflect.New(dst.Type().Elem())
		if p.value(n.Elem(), src.Elem()) {
			dst.Set(n)
		}
		return true
	case reflect.Slice:
		if src.Len() == 0 {
			return true
		}
		out := reflect.MakeSlice(dst.Type(), 0, src.Len())
		for i := 0; i < src.Len(); i++ {
			e := reflect.New(dst.Type().Elem()).Elem()
			if p.value(e, src.Index(i)) {
				out = reflect.Append(out, e)
			}
		}
		if out.Len() > 0 {
			dst.Set(out)
		}
		return true
	case reflect.Struct:
		if src.Type() == timeType {
			dst.Set(src)
			return true
		}
		return p.fields(dst, src)
	case reflect.String:
		s := src.String()
		if s == "" {
			return true
		}
		v := reflect.ValueOf(s).Convert(dst.Type())
		if d, ok := v.Interface().(definer); ok && !d.IsDefined() {
			return false
		}
		dst.Set(v)
		return true
	case reflect.Bool, reflect.Int, reflect.Int64, reflect.Float64:
		dst.Set(src.Convert(dst.Type()))
		return true
	}
	panic(fmt.Sprintf("convert: cannot project %s into %s", src.Type(), dst.Type()))
}

// fields is the default struct projection; hooks call it to reuse the
// field-by-field copy before applying their own adjustments.
func (p *projector) fields(dst, src reflect.Value) bool {
	dt := dst.Type()
	for i := 0; i < dt.NumField(); i++ {
		f := dt.Field(i)
		if !f.IsExported() || f.Name == "XMLName" {
			continue
		}
		sf := src.FieldByName(f.Name)
		if !sf.IsValid() {
			continue
		}
		if !p.value(dst.Field(i), sf) {
			if required(f) {
				return false
			}
			dst.Field(i).SetZero()
		}
	}
	return true
}

func required(f reflect.StructField) bool {
	tag := f.Tag.Get("xml")
	return tag != "" && !strings.Contains(tag, "omitempty")
}
