package xmlcodec

import (
	"bytes"
	"reflect"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	v10 "xdao.co/sbom/bom/v10"
	v14 "xdao.co/sbom/bom/v14"
	v16 "xdao.co/sbom/bom/v16"
	"xdao.co/sbom/convert"
	"xdao.co/sbom/internal/bomtest"
	"xdao.co/sbom/sbomerr"
	"xdao.co/sbom/specversion"
)

func TestSerializeLayout(t *testing.T) {
	doc := &v14.Bom{Version: 1, Components: []v14.Component{{Type: v14.ComponentTypeLibrary, Name: "lib", Version: "1"}}}
	var buf bytes.Buffer
	if err := Serialize(&buf, doc); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Fatalf("missing XML declaration:\n%s", out)
	}
	if !strings.Contains(out, `<bom xmlns="http://cyclonedx.org/schema/bom/1.4" version="1">`) {
		t.Fatalf("unexpected root element:\n%s", out)
	}
	if !strings.Contains(out, "\n  <components>\n    <component type=\"library\">") {
		t.Fatalf("expected two-space indentation:\n%s", out)
	}
	if doc.XMLName.Local != "" {
		t.Fatalf("Serialize modified its input")
	}
}

func emptyWrappers(t *testing.T, doc any, out string) []string {
	t.Helper()
	var found []string
	for name := range wrappersOf(reflect.TypeOf(doc)) {
		if regexp.MustCompile(`<` + name + `>\s*</` + name + `>`).MatchString(out) {
			found = append(found, name)
		}
	}
	return found
}

func TestAbsentCollectionsAreOmitted(t *testing.T) {
	for _, v := range specversion.Versions() {
		doc, err := convert.Convert(bomtest.Full(), v)
		if err != nil {
			t.Fatalf("Convert to %s: %v", v, err)
		}
		var buf bytes.Buffer
		if err := Serialize(&buf, doc); err != nil {
			t.Fatalf("Serialize %s: %v", v, err)
		}
		if found := emptyWrappers(t, doc, buf.String()); len(found) > 0 {
			t.Errorf("%s: empty collection elements %v", v, found)
		}
	}
}

func TestEmptyDocumentHasNoCollections(t *testing.T) {
	doc := &v16.Bom{Version: 1}
	var buf bytes.Buffer
	if err := Encode(&buf, doc, false); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		`<bom xmlns="http://cyclonedx.org/schema/bom/1.6" version="1"></bom>` + "\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("unexpected output:\n%s", diff)
	}
}

func TestDropEmptyWrappersKeepsOtherElements(t *testing.T) {
	in := "<c>\n  <hashes></hashes>\n  <name></name>\n  <outer>\n    <inner></inner>\n  </outer>\n</c>"
	got := string(dropEmptyWrappers([]byte(in), map[string]bool{"hashes": true, "outer": true, "inner": true}))
	want := "<c>\n  <name></name>\n</c>"
	if got != want {
		t.Fatalf("dropEmptyWrappers = %q, want %q", got, want)
	}
}

func TestDecodeISO8601Timestamps(t *testing.T) {
	for in, want := range map[string]time.Time{
		"2024-05-01T12:00Z":   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		"2024-05-01T12:00:00": time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		"2024-05-01":          time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	} {
		data := `<bom xmlns="http://cyclonedx.org/schema/bom/1.6" version="1"><metadata><timestamp>` + in + `</timestamp></metadata></bom>`
		doc, err := Deserialize(strings.NewReader(data), specversion.V1_6)
		if err != nil {
			t.Errorf("%s: %v", in, err)
			continue
		}
		if got := *doc.(*v16.Bom).Metadata.Timestamp; !got.Equal(want) {
			t.Errorf("%s: timestamp = %s, want %s", in, got, want)
		}
	}
}

func TestLicensesIn10(t *testing.T) {
	const in = `<?xml version="1.0"?>
<bom xmlns="http://cyclonedx.org/schema/bom/1.0" version="1">
  <components>
    <component type="library">
      <name>lib</name>
      <version>1.0</version>
      <licenses><license><id>MIT</id></license></licenses>
      <modified>false</modified>
    </component>
  </components>
</bom>`
	doc, err := Deserialize(strings.NewReader(in), specversion.V1_0)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	f := false
	want := &v10.Bom{Version: 1, Components: []v10.Component{{
		Type:     v10.ComponentTypeLibrary,
		Name:     "lib",
		Version:  "1.0",
		Licenses: []v10.License{{ID: "MIT"}},
		Modified: &f,
	}}}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Fatalf("decoded document differs:\n%s", diff)
	}
}

func TestNamespaceMismatch(t *testing.T) {
	const in = `<bom xmlns="http://cyclonedx.org/schema/bom/1.3" version="1"/>`
	_, err := Deserialize(strings.NewReader(in), specversion.V1_4)
	if !sbomerr.IsKind(err, sbomerr.KindParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestUndefinedEnumRejected(t *testing.T) {
	const in = `<bom xmlns="http://cyclonedx.org/schema/bom/1.0"><components><component type="firmware"><name>x</name><version>1</version></component></components></bom>`
	if _, err := Deserialize(strings.NewReader(in), specversion.V1_0); !sbomerr.IsKind(err, sbomerr.KindParse) {
		t.Fatalf("expected parse error for a 1.2 component type in 1.0, got %v", err)
	}
}

func TestDetectVersion(t *testing.T) {
	v, err := DetectVersion([]byte(`<?xml version="1.0"?><!-- c --><bom xmlns="http://cyclonedx.org/schema/bom/1.2"/>`))
	if err != nil || v != specversion.V1_2 {
		t.Fatalf("DetectVersion = %s, %v", v, err)
	}
	if _, err := DetectVersion([]byte(`<bom xmlns="urn:other"/>`)); sbomerr.RuleID(err) != "SBOM-DEC-XML-003" {
		t.Fatalf("foreign namespace: %v", err)
	}
	if _, err := DetectVersion(nil); sbomerr.RuleID(err) != "SBOM-DEC-XML-002" {
		t.Fatalf("empty input: %v", err)
	}
}
