package bom

import (
	"reflect"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// Normalize canonicalizes a decoded model in place.
//
// Zero-length slices become nil, so a collection is either absent or
// non-empty. Timestamps are converted to UTC and truncated to whole seconds,
// which is the resolution every wire format carries.
//
// v must be a pointer; other values are ignored.
func Normalize(v any) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return
	}
	normalizeValue(rv.Elem())
}

func normalizeValue(v reflect.Value) {
	switch v.Kind() {
	case reflect.Pointer:
		if !v.IsNil() {
			normalizeValue(v.Elem())
		}
	case reflect.Struct:
		if v.Type() == timeType {
			if v.CanSet() {
				t := v.Interface().(time.Time)
				if !t.IsZero() {
					v.Set(reflect.ValueOf(t.UTC().Truncate(time.Second)))
				}
			}
			return
		}
		for i := 0; i < v.NumField(); i++ {
			f := v.Field(i)
			if !f.CanSet() {
				continue
			}
			normalizeValue(f)
		}
	case reflect.Slice:
		if v.IsNil() {
			return
		}
		if v.Len() == 0 {
			if v.CanSet() {
				v.Set(reflect.Zero(v.Type()))
			}
			return
		}
		switch v.Type().Elem().Kind() {
		case reflect.Struct, reflect.Pointer, reflect.Slice:
			for i := 0; i < v.Len(); i++ {
				normalizeValue(v.Index(i))
			}
		}
	}
}
