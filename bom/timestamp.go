package bom

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// timeLayouts are the ISO 8601 forms accepted when decoding. Layouts
// without an offset are read as UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z0700",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
	"20060102T150405Z0700",
	"20060102T150405",
	"20060102",
}

// ParseTime parses an ISO 8601 date or date-time.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp %q is not an ISO 8601 date-time", s)
}

// TimestampFields names the properties and elements that carry date-times
// in every generation.
const TimestampFields = `timestamp|created|published|updated`

// CanonicalTimestamp rewrites an ISO 8601 value as RFC 3339. Values that are
// already RFC 3339, or are not dates at all, are returned unchanged so the
// decoder reports them.
func CanonicalTimestamp(s string) string {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return s
	}
	t, err := ParseTime(s)
	if err != nil {
		return s
	}
	return t.Format(time.RFC3339Nano)
}

// RewriteTimestamps applies CanonicalTimestamp to the second submatch of
// every match of re. re must capture the text before the value, the value
// and the text after it.
func RewriteTimestamps(re *regexp.Regexp, data []byte) []byte {
	return re.ReplaceAllFunc(data, func(m []byte) []byte {
		sub := re.FindSubmatch(m)
		if len(sub) != 4 {
			return m
		}
		v := CanonicalTimestamp(string(sub[2]))
		out := make([]byte, 0, len(m))
		out = append(out, sub[1]...)
		out = append(out, v...)
		return append(out, sub[3]...)
	})
}
