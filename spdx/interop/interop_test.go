package interop

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spdx/tools-golang/spdx/v2/common"
	"github.com/stretchr/testify/require"

	v16 "xdao.co/sbom/bom/v16"
	"xdao.co/sbom/internal/bomtest"
	"xdao.co/sbom/spdx"
)

func TestToSpdxFull(t *testing.T) {
	doc := ToSpdx(bomtest.Full())

	require.Equal(t, spdx.Version, doc.SPDXVersion)
	require.Equal(t, spdx.DataLicense, doc.DataLicense)
	require.Equal(t, spdx.DocumentID, doc.SPDXIdentifier)
	require.Equal(t, "org.acme app-1.0", doc.DocumentName)
	require.Equal(t, "http://spdx.org/spdxdocs/org.acme app-1.0-3e671687-395b-41f5-a30f-a58921a69b79", doc.DocumentNamespace)
	require.Equal(t, DefaultCreationComment, doc.CreationInfo.CreatorComment)
	require.Equal(t, bomtest.Timestamp.Format(time.RFC3339), doc.CreationInfo.Created)
	require.Equal(t, []common.Creator{
		{CreatorType: "Tool", Creator: "scanner-1.0"},
		{CreatorType: "Person", Creator: "Jane Doe"},
	}, doc.CreationInfo.Creators)

	require.Len(t, doc.Packages, 2)
	lib, fw := doc.Packages[0], doc.Packages[1]
	require.Equal(t, common.ElementID("lib"), lib.PackageSPDXIdentifier)
	require.Equal(t, "LIBRARY", lib.PrimaryPackagePurpose)
	require.Equal(t, "MIT", lib.PackageLicenseDeclared)
	require.Equal(t, &common.Supplier{SupplierType: "Person", Supplier: "Acme Inc (jane@acme.example)"}, lib.PackageSupplier)
	require.Equal(t, spdx.NoAssertion, lib.PackageDownloadLocation)
	require.Equal(t, []string{"Copyright Acme"}, lib.PackageAttributionTexts)
	require.Equal(t, []common.Checksum{{Algorithm: common.SHA256, Value: "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"}}, lib.PackageChecksums)
	require.Equal(t, []*spdx.PackageExternalReference{
		{Category: spdx.CategoryPackageManager, RefType: "purl", Locator: "pkg:maven/org.acme/lib@2.0"},
		{Category: spdx.CategorySecurity, RefType: "cpe23Type", Locator: "cpe:2.3:a:acme:lib:2.0:*:*:*:*:*:*:*"},
	}, lib.PackageExternalReferences)
	require.Equal(t, common.ElementID("fw"), fw.PackageSPDXIdentifier)
	require.Equal(t, "FRAMEWORK", fw.PrimaryPackagePurpose)

	require.Equal(t, []*spdx.Relationship{
		{RefA: spdx.DocElementID("SPDXRef-DOCUMENT"), RefB: spdx.DocElementID("SPDXRef-lib"), Relationship: spdx.RelationshipDescribes},
		{RefA: spdx.DocElementID("SPDXRef-DOCUMENT"), RefB: spdx.DocElementID("SPDXRef-fw"), Relationship: spdx.RelationshipDescribes},
	}, doc.Relationships)

	var buf bytes.Buffer
	require.NoError(t, spdx.Write(&buf, doc))
	require.Contains(t, buf.String(), `"SPDXID": "SPDXRef-lib"`)
}

func TestRoundTripIsStable(t *testing.T) {
	first := ToSpdx(bomtest.Full())
	back := FromSpdx(first)

	require.Len(t, back.Components, 2)
	lib := back.Components[0]
	require.Equal(t, v16.ComponentTypeLibrary, lib.Type)
	require.Equal(t, "SPDXRef-lib", lib.BomRef)
	require.Equal(t, "pkg:maven/org.acme/lib@2.0", lib.Purl)
	require.Equal(t, "cpe:2.3:a:acme:lib:2.0:*:*:*:*:*:*:*", lib.Cpe)
	require.Equal(t, v16.Licenses{{Expression: "MIT"}}, lib.Licenses)
	require.Equal(t, "Acme Inc", lib.Supplier.Name)
	require.Equal(t, []v16.Hash{{Alg: v16.HashSHA256, Content: "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"}}, lib.Hashes)
	require.Equal(t, v16.ComponentTypeFramework, back.Components[1].Type)
	require.Equal(t, []v16.Tool{{Name: "scanner", Version: "1.0"}}, back.Metadata.Tools)

	second := ToSpdx(back)
	require.Equal(t, first, second)
}

func TestDependenciesBecomeRelationships(t *testing.T) {
	b := &v16.Bom{
		Version: 1,
		Components: []v16.Component{
			{Type: v16.ComponentTypeLibrary, BomRef: "a", Name: "a"},
			{Type: v16.ComponentTypeLibrary, BomRef: "b", Name: "b"},
			{Type: v16.ComponentTypeDevice, BomRef: "d", Name: "d"},
		},
		Dependencies: []v16.Dependency{{Ref: "a", DependsOn: []v16.BomReference{"b", "d"}}},
	}
	doc := ToSpdx(b)
	require.Len(t, doc.Packages, 2, "device components are not packages")
	require.Contains(t, doc.Relationships, &spdx.Relationship{
		RefA:         spdx.DocElementID("SPDXRef-a"),
		RefB:         spdx.DocElementID("SPDXRef-b"),
		Relationship: spdx.RelationshipDependsOn,
	})
	require.Len(t, doc.Relationships, 3)

	back := FromSpdx(doc)
	require.Equal(t, []v16.Dependency{{Ref: "SPDXRef-a", DependsOn: []v16.BomReference{"SPDXRef-b"}}}, back.Dependencies)
}

func TestToSpdxDefaults(t *testing.T) {
	fixed := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	defer func(f func() time.Time) { now = f }(now)
	now = func() time.Time { return fixed }

	doc := ToSpdx(&v16.Bom{Components: []v16.Component{
		{Type: v16.ComponentTypeLibrary, BomRef: "pkg:npm/x@1", Name: "x"},
		{Type: v16.ComponentTypeLibrary, Name: "y"},
	}})
	require.Equal(t, DefaultDocumentName, doc.DocumentName)
	require.True(t, strings.HasPrefix(doc.DocumentNamespace, "http://spdx.org/spdxdocs/CycloneDX BOM-"))
	require.Equal(t, "2025-03-04T05:06:07Z", doc.CreationInfo.Created)
	require.Equal(t, common.ElementID("pkg-npm-x-1"), doc.Packages[0].PackageSPDXIdentifier)
	require.Equal(t, common.ElementID("Package-2"), doc.Packages[1].PackageSPDXIdentifier)

	require.Equal(t, "OPERATING-SYSTEM", ToSpdx(&v16.Bom{Components: []v16.Component{{Type: v16.ComponentTypeOperatingSystem, Name: "os"}}}).Packages[0].PrimaryPackagePurpose)
}

const sourceDoc = `{
  "spdxVersion": "SPDX-2.3",
  "dataLicense": "CC0-1.0",
  "SPDXID": "SPDXRef-DOCUMENT",
  "name": "upstream",
  "documentNamespace": "https://example.com/upstream",
  "creationInfo": {
    "created": "2023-01-02T03:04:05Z",
    "creators": ["Tool: builder-2.1.0", "Organization: Example Corp (ops@example.com)"],
    "licenseListVersion": "3.21"
  },
  "hasExtractedLicensingInfos": [
    {"licenseId": "LicenseRef-1", "name": "Custom", "extractedText": "do what you want"}
  ],
  "packages": [{
    "SPDXID": "SPDXRef-src",
    "name": "src",
    "versionInfo": "1.0",
    "downloadLocation": "https://example.com/src.tgz",
    "filesAnalyzed": false,
    "supplier": "NOASSERTION",
    "originator": "Organization: Upstream Ltd (dev@upstream.example)",
    "licenseDeclared": "NOASSERTION",
    "licenseConcluded": "Apache-2.0",
    "licenseInfoFromFiles": ["Apache-2.0", "LicenseRef-1", "NONE"],
    "primaryPackagePurpose": "SOURCE",
    "checksums": [
      {"algorithm": "SHA1", "checksumValue": "aa"},
      {"algorithm": "SHA224", "checksumValue": "bb"}
    ],
    "externalRefs": [
      {"referenceCategory": "OTHER", "referenceType": "gitoid", "referenceLocator": "gitoid:blob:sha1:cc", "comment": "object id"}
    ]
  }]
}`

func TestFromSpdxTaxonomy(t *testing.T) {
	doc, err := spdx.Read(strings.NewReader(sourceDoc))
	require.NoError(t, err)
	b := FromSpdx(doc)

	require.Equal(t, []v16.Tool{{Name: "builder", Version: "2.1.0"}}, b.Metadata.Tools)
	require.Equal(t, []v16.OrganizationalContact{{Name: "Example Corp", Email: "ops@example.com"}}, b.Metadata.Authors)
	require.Equal(t, "Example Corp", first(b.Metadata.Properties, PropCreatorsOrganizations))
	require.Equal(t, "3.21", first(b.Metadata.Properties, PropLicenseListVersion))

	c := b.Components[0]
	require.Equal(t, v16.ComponentTypeLibrary, c.Type)
	require.Equal(t, "SPDXRef-src", c.BomRef)
	require.Equal(t, "Upstream Ltd", c.Author)
	require.Nil(t, c.Licenses)
	require.Equal(t, "NOASSERTION", first(c.Properties, PropLicenseDeclared))
	require.Equal(t, "NOASSERTION", first(c.Properties, PropSupplier))
	require.Equal(t, "Apache-2.0", first(c.Properties, PropLicenseConcluded))
	require.Equal(t, "false", first(c.Properties, PropFilesAnalyzed))
	require.Equal(t, "SOURCE", first(c.Properties, PropPrimaryPurpose))
	require.Equal(t, "bb", first(c.Properties, PropChecksumSHA224))
	require.Equal(t, "gitoid:blob:sha1:cc object id", first(c.Properties, PropExternalRefOther+":gitoid"))
	require.Equal(t, []v16.Hash{{Alg: v16.HashSHA1, Content: "aa"}}, c.Hashes)
	require.Equal(t, []v16.ExternalReference{{Type: v16.ERTypeDistribution, URL: "https://example.com/src.tgz"}}, c.ExternalReferences)

	require.Len(t, c.Evidence.Licenses, 2)
	require.Equal(t, "Apache-2.0", c.Evidence.Licenses[0].License.ID)
	require.Equal(t, "Custom", c.Evidence.Licenses[1].License.Name)

	out := ToSpdx(b)
	require.Equal(t, "upstream", out.DocumentName)
	require.Equal(t, "https://example.com/upstream", out.DocumentNamespace)
	require.Equal(t, doc.CreationInfo.Creators, out.CreationInfo.Creators)

	pkg := out.Packages[0]
	require.Equal(t, common.ElementID("src"), pkg.PackageSPDXIdentifier)
	require.Equal(t, "SOURCE", pkg.PrimaryPackagePurpose)
	require.Equal(t, "Apache-2.0", pkg.PackageLicenseConcluded)
	require.Empty(t, pkg.PackageLicenseDeclared)
	require.Nil(t, pkg.PackageSupplier)
	require.Equal(t, &common.Originator{OriginatorType: "Organization", Originator: "Upstream Ltd (dev@upstream.example)"}, pkg.PackageOriginator)
	require.Equal(t, "https://example.com/src.tgz", pkg.PackageDownloadLocation)
	require.True(t, pkg.IsFilesAnalyzedTagPresent)
	require.False(t, pkg.FilesAnalyzed)
	require.Equal(t, []common.Checksum{{Algorithm: common.SHA1, Value: "aa"}, {Algorithm: common.SHA224, Value: "bb"}}, pkg.PackageChecksums)
	require.Equal(t, []*spdx.PackageExternalReference{{Category: spdx.CategoryOther, RefType: "gitoid", Locator: "gitoid:blob:sha1:cc", ExternalRefComment: "object id"}}, pkg.PackageExternalReferences)
	require.Equal(t, []string{"Apache-2.0", "LicenseRef-1"}, pkg.PackageLicenseInfoFromFiles)
	require.Equal(t, "do what you want", out.OtherLicenses[0].ExtractedText)

	var buf bytes.Buffer
	require.NoError(t, spdx.Write(&buf, out))
	_, err = spdx.Read(&buf)
	require.NoError(t, err)
}

const partiesDoc = `{
  "spdxVersion": "SPDX-2.3",
  "dataLicense": "CC0-1.0",
  "SPDXID": "SPDXRef-DOCUMENT",
  "name": "parties",
  "documentNamespace": "https://example.com/parties",
  "creationInfo": {
    "created": "2024-05-01T12:00Z",
    "creators": ["Tool: scan", "Organization: Acme", "Person: (anon@example.com)"]
  },
  "packages": [{
    "SPDXID": "SPDXRef-p",
    "name": "p",
    "downloadLocation": "NOASSERTION",
    "originator": "Person: Bob",
    "supplier": "Organization: Anchore, Inc"
  }]
}`

func TestPartiesWithoutEmail(t *testing.T) {
	doc, err := spdx.Read(strings.NewReader(partiesDoc))
	require.NoError(t, err)
	b := FromSpdx(doc)

	require.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), *b.Metadata.Timestamp)
	require.Equal(t, []v16.Tool{{Name: "scan"}}, b.Metadata.Tools)
	require.Equal(t, []v16.OrganizationalContact{{Name: "Acme"}}, b.Metadata.Authors)
	require.Equal(t, "Person: (anon@example.com)", first(b.Metadata.Properties, PropCreator))
	c := b.Components[0]
	require.Equal(t, "Bob", c.Author)
	require.Empty(t, first(c.Properties, PropOriginatorEmail))
	require.Equal(t, &v16.OrganizationalEntity{Name: "Anchore, Inc"}, c.Supplier)
	require.Equal(t, "Anchore, Inc", first(c.Properties, PropSupplierOrganization))

	out := ToSpdx(b)
	require.Equal(t, doc.CreationInfo.Creators, out.CreationInfo.Creators)
	require.Equal(t, doc.Packages[0].PackageOriginator, out.Packages[0].PackageOriginator)
	require.Equal(t, doc.Packages[0].PackageSupplier, out.Packages[0].PackageSupplier)

	var buf bytes.Buffer
	require.NoError(t, spdx.Write(&buf, out))
	require.Contains(t, buf.String(), `"originator": "Person: Bob"`)
	require.Contains(t, buf.String(), `"supplier": "Organization: Anchore, Inc"`)
}

func TestSplitParty(t *testing.T) {
	for in, want := range map[string][2]string{
		"Jane Doe (jane@example.com)": {"Jane Doe", "jane@example.com"},
		"Jane Doe ()":                 {"Jane Doe", ""},
		"Anchore, Inc":                {"Anchore, Inc", ""},
		"  Bob  ":                     {"Bob", ""},
	} {
		name, email := splitParty(in)
		require.Equal(t, want, [2]string{name, email}, in)
	}
}
