package bom

import (
	"testing"
	"time"
)

type leaf struct {
	Names []string
}

type node struct {
	Children []node
	Leaves   []*leaf
	Tags     []string
	When     *time.Time
	At       time.Time
	hidden   []string
}

func TestNormalize_EmptySlicesBecomeNil(t *testing.T) {
	n := &node{
		Children: []node{{Tags: []string{}}},
		Leaves:   []*leaf{{Names: []string{}}},
		Tags:     []string{},
		hidden:   []string{},
	}
	Normalize(n)

	if n.Tags != nil {
		t.Fatalf("top-level empty slice not cleared")
	}
	if n.Children[0].Tags != nil {
		t.Fatalf("nested empty slice not cleared")
	}
	if n.Leaves[0].Names != nil {
		t.Fatalf("empty slice behind pointer not cleared")
	}
	if n.hidden == nil {
		t.Fatalf("unexported fields must be left alone")
	}
}

func TestNormalize_TimestampsUTCSeconds(t *testing.T) {
	loc := time.FixedZone("X", 2*3600)
	ts := time.Date(2024, 3, 1, 12, 30, 15, 999, loc)
	n := &node{When: &ts, At: ts}
	Normalize(n)

	want := time.Date(2024, 3, 1, 10, 30, 15, 0, time.UTC)
	if !n.When.Equal(want) || n.When.Location() != time.UTC || n.When.Nanosecond() != 0 {
		t.Fatalf("pointer timestamp not normalized: %v", n.When)
	}
	if !n.At.Equal(want) || n.At.Location() != time.UTC {
		t.Fatalf("value timestamp not normalized: %v", n.At)
	}
}

func TestNormalize_NonPointerIgnored(t *testing.T) {
	n := node{Tags: []string{}}
	Normalize(n)
	if n.Tags == nil {
		t.Fatalf("value copy must not be mutated")
	}
	Normalize(nil)
}

func TestSerialNumber(t *testing.T) {
	s := NewSerialNumber()
	if !ValidSerialNumber(s) {
		t.Fatalf("generated serial %q does not validate", s)
	}
	if got := SerialUUID(s); len(got) != 36 {
		t.Fatalf("SerialUUID(%q) = %q", s, got)
	}
	if ValidSerialNumber("urn:uuid:not-a-uuid") {
		t.Fatalf("invalid serial accepted")
	}
}
