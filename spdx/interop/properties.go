package interop

import (
	"encoding/json"

	v16 "xdao.co/sbom/bom/v16"
)

// props accumulates taxonomy properties. Empty values are not recorded.
type props []v16.Property

func (p *props) add(name, value string) {
	if value != "" {
		*p = append(*p, v16.Property{Name: name, Value: value})
	}
}

func (p *props) addAll(name string, values []string) {
	for _, v := range values {
		p.add(name, v)
	}
}

// addJSON records v in its compact JSON form.
func (p *props) addJSON(name string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	p.add(name, string(b))
}

func (p props) list() []v16.Property {
	if len(p) == 0 {
		return nil
	}
	return []v16.Property(p)
}

func first(ps []v16.Property, name string) string {
	for _, p := range ps {
		if p.Name == name {
			return p.Value
		}
	}
	return ""
}

func all(ps []v16.Property, name string) []string {
	var out []string
	for _, p := range ps {
		if p.Name == name {
			out = append(out, p.Value)
		}
	}
	return out
}

// allJSON decodes every property called name into a T, skipping values
// that do not decode.
func allJSON[T any](ps []v16.Property, name string) []T {
	var out []T
	for _, raw := range all(ps, name) {
		var v T
		if json.Unmarshal([]byte(raw), &v) == nil {
			out = append(out, v)
		}
	}
	return out
}

// assertion is v unless it is empty or NOASSERTION.
func assertion(v string) string {
	if v == "NOASSERTION" {
		return ""
	}
	return v
}
