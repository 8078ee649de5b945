package spdx

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spdx/tools-golang/spdx/v2/common"

	"xdao.co/sbom/sbomerr"
)

func sample() *Document {
	return &Document{
		SPDXVersion:       Version,
		DataLicense:       DataLicense,
		SPDXIdentifier:    DocumentID,
		DocumentName:      "demo",
		DocumentNamespace: "http://spdx.org/spdxdocs/demo-1",
		CreationInfo: &CreationInfo{
			Created:  "2024-05-01T10:00:00Z",
			Creators: []common.Creator{{CreatorType: "Tool", Creator: "cdx-1.0"}},
		},
		Packages: []*Package{{
			PackageSPDXIdentifier:     "lib",
			PackageName:               "lib",
			PackageVersion:            "2.0",
			PackageDownloadLocation:   NoAssertion,
			FilesAnalyzed:             false,
			IsFilesAnalyzedTagPresent: true,
			PackageSupplier:           &common.Supplier{SupplierType: "Organization", Supplier: "Acme"},
			PackageChecksums:          []common.Checksum{{Algorithm: common.SHA256, Value: "9f86d081"}},
			PackageExternalReferences: []*PackageExternalReference{{Category: CategoryPackageManager, RefType: "purl", Locator: "pkg:npm/lib@2.0"}},
		}},
		Relationships: []*Relationship{{
			RefA:         DocElementID("SPDXRef-DOCUMENT"),
			RefB:         DocElementID("SPDXRef-lib"),
			Relationship: RelationshipDescribes,
		}},
	}
}

func TestWriteRead(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	for _, want := range []string{`"checksumValue": "9f86d081"`, `"SPDXID": "SPDXRef-lib"`, `"supplier": "Organization: Acme"`} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("missing %s:\n%s", want, buf.String())
		}
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if diff := cmp.Diff(sample(), got, cmpopts.IgnoreUnexported(Package{})); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCanonicalisesCategories(t *testing.T) {
	doc := `{"spdxVersion":"SPDX-2.2","dataLicense":"CC0-1.0","SPDXID":"SPDXRef-DOCUMENT","name":"d","documentNamespace":"urn:d",` +
		`"creationInfo":{"created":"2024-01-01T00:00:00Z","creators":["Tool: x"]},` +
		`"packages":[{"SPDXID":"SPDXRef-a","name":"a","downloadLocation":"NONE","externalRefs":[{"referenceCategory":"package_manager","referenceType":"purl","referenceLocator":"pkg:npm/a@1"}]}]}`
	got, err := Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.SPDXVersion != Version {
		t.Fatalf("spdxVersion = %q, want upgrade to %s", got.SPDXVersion, Version)
	}
	if c := got.Packages[0].PackageExternalReferences[0].Category; c != CategoryPackageManager {
		t.Fatalf("category = %q", c)
	}
}

func TestReadRejects(t *testing.T) {
	cases := []struct {
		doc  string
		kind sbomerr.Kind
	}{
		{`{"spdxVersion":`, sbomerr.KindParse},
		{`{"spdxVersion":"SPDX-2.3"} {}`, sbomerr.KindParse},
		{`{"spdxVersion":"SPDX-2.3","SPDXID":"DOCUMENT"}`, sbomerr.KindParse},
		{`{"spdxVersion":"SPDX-3.0"}`, sbomerr.KindUnsupported},
	}
	for _, tc := range cases {
		if _, err := Read(strings.NewReader(tc.doc)); !sbomerr.IsKind(err, tc.kind) {
			t.Fatalf("%s: err = %v, want kind %s", tc.doc, err, tc.kind)
		}
	}
}

func TestDocElementID(t *testing.T) {
	for in, want := range map[string]common.DocElementID{
		"SPDXRef-a":                 {ElementRefID: "a"},
		"DocumentRef-ext:SPDXRef-b": {DocumentRefID: "ext", ElementRefID: "b"},
		NoAssertion:                 {SpecialID: NoAssertion},
	} {
		if got := DocElementID(in); got != want {
			t.Errorf("DocElementID(%q) = %+v, want %+v", in, got, want)
		}
		if got := common.RenderDocElementID(DocElementID(in)); got != in {
			t.Errorf("RenderDocElementID(DocElementID(%q)) = %q", in, got)
		}
	}
}

func TestWriteNil(t *testing.T) {
	if err := Write(&bytes.Buffer{}, nil); err == nil {
		t.Fatalf("Write(nil) succeeded")
	}
}
