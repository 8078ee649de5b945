package bom

import (
	"regexp"
	"testing"
	"time"
)

func TestParseTime(t *testing.T) {
	noon := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for in, want := range map[string]time.Time{
		"2024-05-01T12:00:00Z":      noon,
		"2024-05-01T14:00:00+02:00": noon,
		"2024-05-01T12:00Z":         noon,
		"2024-05-01T12:00:00":       noon,
		"2024-05-01T12:00":          noon,
		"2024-05-01T12:00:00.5Z":    noon.Add(500 * time.Millisecond),
		"2024-05-01T12:00:00+0000":  noon,
		"20240501T120000Z":          noon,
		"2024-05-01":                time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	} {
		got, err := ParseTime(in)
		if err != nil {
			t.Errorf("ParseTime(%q): %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseTime(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := ParseTime("yesterday"); err == nil {
		t.Fatalf("ParseTime accepted a non-date")
	}
}

func TestCanonicalTimestamp(t *testing.T) {
	for in, want := range map[string]string{
		"2024-05-01T12:00:00.123+02:00": "2024-05-01T12:00:00.123+02:00",
		"2024-05-01T12:00Z":             "2024-05-01T12:00:00Z",
		" 2024-05-01 ":                  "2024-05-01T00:00:00Z",
		"not a date":                    "not a date",
	} {
		if got := CanonicalTimestamp(in); got != want {
			t.Errorf("CanonicalTimestamp(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRewriteTimestamps(t *testing.T) {
	re := regexp.MustCompile(`("(?:` + TimestampFields + `)":")([^"]*)(")`)
	in := `{"timestamp":"2024-05-01","name":"2024-05-01","created":"2024-05-01T12:00"}`
	want := `{"timestamp":"2024-05-01T00:00:00Z","name":"2024-05-01","created":"2024-05-01T12:00:00Z"}`
	if got := string(RewriteTimestamps(re, []byte(in))); got != want {
		t.Fatalf("RewriteTimestamps =\n%s\nwant\n%s", got, want)
	}
}
