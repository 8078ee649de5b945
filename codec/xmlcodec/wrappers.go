package xmlcodec

import (
	"bytes"
	"reflect"
	"regexp"
	"strings"
	"sync"
)

// encoding/xml writes the parent elements of a "parent>child" field even
// when the slice is empty, so absent collections come out as <hashes></hashes>.
// Element names are restricted to the wrappers declared by the model, and
// text and attribute values are escaped, so the pattern below can only
// match markup.
var emptyElement = regexp.MustCompile(`(\n[ \t]*)?<([A-Za-z_][\w.\-]*)>\s*</([A-Za-z_][\w.\-]*)>`)

var wrapperCache sync.Map // reflect.Type -> map[string]bool

// wrappersOf returns the container element names of every "parent>child"
// tag reachable from t.
func wrappersOf(t reflect.Type) map[string]bool {
	if m, ok := wrapperCache.Load(t); ok {
		return m.(map[string]bool)
	}
	names := map[string]bool{}
	collectWrappers(t, map[reflect.Type]bool{}, names)
	wrapperCache.Store(t, names)
	return names
}

func collectWrappers(t reflect.Type, seen map[reflect.Type]bool, names map[string]bool) {
	for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || seen[t] {
		return
	}
	seen[t] = true
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(f.Tag.Get("xml"), ",")
		if _, local, ok := strings.Cut(tag, " "); ok {
			tag = local
		}
		if parents := strings.Split(tag, ">"); len(parents) > 1 {
			for _, p := range parents[:len(parents)-1] {
				names[p] = true
			}
		}
		collectWrappers(f.Type, seen, names)
	}
}

// dropEmptyWrappers removes wrapper elements that have no children,
// innermost first.
func dropEmptyWrappers(data []byte, wrappers map[string]bool) []byte {
	for {
		locs := emptyElement.FindAllSubmatchIndex(data, -1)
		var out bytes.Buffer
		last, dropped := 0, false
		for _, l := range locs {
			start, end := string(data[l[4]:l[5]]), string(data[l[6]:l[7]])
			if start != end || !wrappers[start] {
				continue
			}
			out.Write(data[last:l[0]])
			last = l[1]
			dropped = true
		}
		if !dropped {
			return data
		}
		out.Write(data[last:])
		data = out.Bytes()
	}
}
