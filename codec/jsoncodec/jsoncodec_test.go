package jsoncodec

import (
	"bytes"
	"strings"
	"testing"
	"time"

	v12 "xdao.co/sbom/bom/v12"
	v15 "xdao.co/sbom/bom/v15"
	v16 "xdao.co/sbom/bom/v16"
	"xdao.co/sbom/sbomerr"
	"xdao.co/sbom/specversion"
)

func TestEncodeHeaderAndTimestamps(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 999, time.FixedZone("x", 3600))
	doc := &v15.Bom{Metadata: &v15.Metadata{Timestamp: &ts}}
	var buf bytes.Buffer
	if err := Encode(&buf, doc, false); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `{"bomFormat":"CycloneDX","specVersion":"1.5","metadata":{"timestamp":"2024-01-02T02:04:05Z"}}`
	if got := buf.String(); got != want {
		t.Fatalf("Encode =\n%s\nwant\n%s", got, want)
	}
	if doc.Metadata.Timestamp.Nanosecond() != 999 {
		t.Fatalf("Encode modified its input")
	}
}

func TestEncodeEmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, &v12.Bom{}, false); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got := buf.String(); got != `{"bomFormat":"CycloneDX","specVersion":"1.2"}` {
		t.Fatalf("Encode = %s", got)
	}
}

func TestDecodeISO8601Timestamps(t *testing.T) {
	for in, want := range map[string]time.Time{
		"2024-05-01T12:00Z":   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		"2024-05-01T12:00:00": time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		"2024-05-01":          time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	} {
		data := `{"bomFormat":"CycloneDX","specVersion":"1.6","metadata":{"timestamp":"` + in + `"},` +
			`"vulnerabilities":[{"id":"CVE-1","published":"` + in + `"}]}`
		doc, err := Unmarshal([]byte(data), specversion.V1_6)
		if err != nil {
			t.Errorf("%s: %v", in, err)
			continue
		}
		b := doc.(*v16.Bom)
		if got := *b.Metadata.Timestamp; !got.Equal(want) {
			t.Errorf("%s: metadata timestamp = %s, want %s", in, got, want)
		}
		if got := *b.Vulnerabilities[0].Published; !got.Equal(want) {
			t.Errorf("%s: published = %s, want %s", in, got, want)
		}
	}
	_, err := Unmarshal([]byte(`{"bomFormat":"CycloneDX","specVersion":"1.6","metadata":{"timestamp":"May 1st"}}`), specversion.V1_6)
	if !sbomerr.IsKind(err, sbomerr.KindParse) {
		t.Fatalf("expected parse error for a non-date timestamp, got %v", err)
	}
}

func TestNoHTMLEscaping(t *testing.T) {
	doc := &v15.Bom{Components: []v15.Component{{Type: v15.ComponentTypeLibrary, Name: "a<b>&c"}}}
	var buf bytes.Buffer
	if err := Serialize(&buf, doc); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if !strings.Contains(buf.String(), `"name": "a<b>&c"`) {
		t.Fatalf("name was escaped:\n%s", buf.String())
	}
}

func TestUnmarshalHeaderChecks(t *testing.T) {
	cases := []struct {
		in   string
		rule string
	}{
		{`not json`, "SBOM-DEC-JSON-001"},
		{`{"bomFormat":"SPDX","specVersion":"1.5"}`, "SBOM-DEC-JSON-002"},
		{`{"bomFormat":"CycloneDX","specVersion":"1.4"}`, "SBOM-DEC-JSON-003"},
		{`{"bomFormat":"CycloneDX","specVersion":"1.5","components":[{"type":"nope","name":"x"}]}`, "SBOM-DEC-JSON-001"},
	}
	for _, tc := range cases {
		_, err := Unmarshal([]byte(tc.in), specversion.V1_5)
		if !sbomerr.IsKind(err, sbomerr.KindParse) || sbomerr.RuleID(err) != tc.rule {
			t.Fatalf("%s: got %v, want %s", tc.in, err, tc.rule)
		}
	}
}

func TestUnsupportedVersions(t *testing.T) {
	if _, err := Unmarshal([]byte(`{}`), specversion.V1_1); !sbomerr.IsKind(err, sbomerr.KindUnsupported) {
		t.Fatalf("1.1: %v", err)
	}
}

func TestDetectVersion(t *testing.T) {
	v, err := DetectVersion([]byte(`{"specVersion":"1.3"}`))
	if err != nil || v != specversion.V1_3 {
		t.Fatalf("DetectVersion = %s, %v", v, err)
	}
	if _, err := DetectVersion([]byte(`{"bomFormat":"CycloneDX"}`)); sbomerr.RuleID(err) != "SBOM-DEC-JSON-004" {
		t.Fatalf("missing specVersion: %v", err)
	}
}
