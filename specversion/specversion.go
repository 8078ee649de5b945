// Package specversion enumerates CycloneDX schema generations and wire formats.
package specversion

import (
	"fmt"
	"regexp"
	"strings"

	"xdao.co/sbom/sbomerr"
)

// Version is one generation of the BOM schema. Values are ordered.
type Version int

const (
	V1_0 Version = iota
	V1_1
	V1_2
	V1_3
	V1_4
	V1_5
	V1_6

	// Latest is the newest generation with a model package.
	Latest = V1_6
)

var versionStrings = [...]string{"1.0", "1.1", "1.2", "1.3", "1.4", "1.5", "1.6"}

// Versions returns every known version in ascending order.
func Versions() []Version {
	out := make([]Version, 0, len(versionStrings))
	for v := V1_0; v <= Latest; v++ {
		out = append(out, v)
	}
	return out
}

func (v Version) Valid() bool { return v >= V1_0 && v <= Latest }

func (v Version) String() string {
	if !v.Valid() {
		return fmt.Sprintf("Version(%d)", int(v))
	}
	return versionStrings[v]
}

// Next returns the following version; ok is false at Latest.
func (v Version) Next() (Version, bool) {
	if v >= Latest {
		return v, false
	}
	return v + 1, true
}

// Prev returns the preceding version; ok is false at V1_0.
func (v Version) Prev() (Version, bool) {
	if v <= V1_0 {
		return v, false
	}
	return v - 1, true
}

// ParseVersion accepts "1.4", "v1.4" and "v1_4".
func ParseVersion(s string) (Version, error) {
	norm := strings.TrimPrefix(strings.TrimSpace(strings.ToLower(s)), "v")
	norm = strings.ReplaceAll(norm, "_", ".")
	for i, vs := range versionStrings {
		if vs == norm {
			return Version(i), nil
		}
	}
	return 0, sbomerr.New(sbomerr.KindUnsupported, "SBOM-VER-001", fmt.Sprintf("unknown specification version %q", s))
}

const namespacePrefix = "http://cyclonedx.org/schema/bom/"

var namespaceRE = regexp.MustCompile(`^http://cyclonedx\.org/schema/bom/(?P<version>\d+\.\d+)$`)

// XMLNamespace returns the root element namespace for v.
func XMLNamespace(v Version) string {
	return namespacePrefix + v.String()
}

// FromXMLNamespace maps a root namespace URI back to its version.
func FromXMLNamespace(ns string) (Version, bool) {
	m := namespaceRE.FindStringSubmatch(ns)
	if m == nil {
		return 0, false
	}
	v, err := ParseVersion(m[1])
	if err != nil {
		return 0, false
	}
	return v, true
}
