package cidutil

import (
	"strings"
	"testing"

	"xdao.co/sbom/codec"
	"xdao.co/sbom/internal/bomtest"
	"xdao.co/sbom/sbomerr"
	"xdao.co/sbom/specversion"
)

func TestSumIsRawSHA256(t *testing.T) {
	id, err := Sum([]byte("hello"))
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	if !strings.HasPrefix(id.String(), "bafkrei") {
		t.Fatalf("unexpected CID %s", id)
	}
	if String([]byte("hello")) != id.String() {
		t.Fatalf("String disagrees with Sum")
	}
	back, err := Parse(id.String())
	if err != nil || !back.Equals(id) {
		t.Fatalf("Parse(%s) = %s, %v", id, back, err)
	}
}

func TestParseRejects(t *testing.T) {
	if _, err := Parse("not-a-cid"); !sbomerr.IsKind(err, sbomerr.KindParse) {
		t.Fatalf("garbage: %v", err)
	}
	// CIDv0 (dag-pb) identifiers are well formed but not ours.
	if _, err := Parse("QmdfTbBqBPQ7VNxZEYEj14VmRuZBkqFbiwReogJgS1zR1n"); !sbomerr.IsKind(err, sbomerr.KindUnsupported) {
		t.Fatalf("CIDv0: %v", err)
	}
}

func TestBomCID(t *testing.T) {
	doc := bomtest.Full()
	a, data, err := BomCID(doc, specversion.JSON)
	if err != nil {
		t.Fatalf("BomCID: %v", err)
	}
	b, _, err := BomCID(bomtest.Full(), specversion.JSON)
	if err != nil {
		t.Fatalf("BomCID: %v", err)
	}
	if !a.Equals(b) {
		t.Fatalf("same document gave %s and %s", a, b)
	}
	if !Verify(a, data) {
		t.Fatalf("returned bytes do not match the CID")
	}
	x, _, err := BomCID(doc, specversion.XML)
	if err != nil {
		t.Fatalf("BomCID xml: %v", err)
	}
	if x.Equals(a) {
		t.Fatalf("XML and JSON encodings share a CID")
	}
	ind, _, err := BomCID(doc, specversion.JSON, codec.WithIndent(true))
	if err != nil {
		t.Fatalf("BomCID indented: %v", err)
	}
	pretty, err := codec.Marshal(doc, specversion.JSON, codec.WithIndent(true))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !Verify(ind, pretty) {
		t.Fatalf("indented CID is not over the indented bytes")
	}
	if Verify(a, append(data, ' ')) {
		t.Fatalf("Verify accepted altered bytes")
	}
}
