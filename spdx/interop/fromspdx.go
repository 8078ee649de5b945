package interop

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/spdx/tools-golang/spdx/v2/common"

	"xdao.co/sbom/bom"
	v16 "xdao.co/sbom/bom/v16"
	"xdao.co/sbom/spdx"
)

// FromSpdx converts doc to the latest CycloneDX model. Every package becomes
// a top-level component whose bom-ref is the package SPDXID, and DEPENDS_ON
// relationships between packages become dependencies.
func FromSpdx(doc *spdx.Document) *v16.Bom {
	if doc == nil {
		doc = &spdx.Document{}
	}
	b := &v16.Bom{Version: 1, Metadata: &v16.Metadata{}}
	var p props
	if doc.SPDXIdentifier != "" {
		p.add(PropSPDXID, common.RenderElementID(doc.SPDXIdentifier))
	}
	p.add(PropDocumentSPDXVersion, doc.SPDXVersion)
	p.add(PropDocumentDataLicense, doc.DataLicense)
	p.add(PropComment, doc.DocumentComment)
	p.add(PropDocumentName, doc.DocumentName)
	p.add(PropDocumentNamespace, doc.DocumentNamespace)

	if ci := doc.CreationInfo; ci != nil {
		p.add(PropCreationComment, ci.CreatorComment)
		if ts, err := bom.ParseTime(ci.Created); err == nil {
			ts = ts.UTC()
			b.Metadata.Timestamp = &ts
		}
		for _, c := range ci.Creators {
			switch c.CreatorType {
			case toolType:
				name, version := splitTool(c.Creator)
				b.Metadata.Tools = append(b.Metadata.Tools, v16.Tool{Name: name, Version: version})
			case personType, organizationType:
				name, email := splitParty(c.Creator)
				if name == "" {
					p.add(PropCreator, c.CreatorType+": "+c.Creator)
					continue
				}
				b.Metadata.Authors = append(b.Metadata.Authors, v16.OrganizationalContact{Name: name, Email: email})
				if c.CreatorType == organizationType {
					p.add(PropCreatorsOrganizations, name)
				}
			default:
				p.add(PropCreator, c.CreatorType+": "+c.Creator)
			}
		}
		p.add(PropLicenseListVersion, ci.LicenseListVersion)
	}
	for _, r := range doc.ExternalDocumentReferences {
		p.addJSON(PropDocumentExternalRef, r)
	}
	for _, a := range doc.Annotations {
		if a != nil {
			p.addJSON(PropAnnotation, a)
		}
	}
	for _, r := range doc.Relationships {
		if r != nil && r.Relationship == spdx.RelationshipDescribes && r.RefA.DocumentRefID == "" && r.RefA.ElementRefID == doc.SPDXIdentifier {
			p.add(PropDocumentDescribes, common.RenderDocElementID(r.RefB))
		}
	}
	b.Metadata.Properties = p.list()

	known := map[string]bool{}
	for _, pkg := range doc.Packages {
		if pkg == nil {
			continue
		}
		c := fromPackage(doc, pkg)
		known[c.BomRef] = true
		b.Components = append(b.Components, c)
	}

	index := map[string]int{}
	for _, r := range doc.Relationships {
		if r == nil || r.Relationship != spdx.RelationshipDependsOn || r.RefA.DocumentRefID != "" || r.RefB.DocumentRefID != "" {
			continue
		}
		from, to := common.RenderDocElementID(r.RefA), common.RenderDocElementID(r.RefB)
		if !known[from] || !known[to] {
			continue
		}
		i, ok := index[from]
		if !ok {
			i = len(b.Dependencies)
			index[from] = i
			b.Dependencies = append(b.Dependencies, v16.Dependency{Ref: from})
		}
		b.Dependencies[i].DependsOn = append(b.Dependencies[i].DependsOn, v16.BomReference(to))
	}
	bom.Normalize(b)
	return b
}

func fromPackage(doc *spdx.Document, pkg *spdx.Package) v16.Component {
	id := common.RenderElementID(pkg.PackageSPDXIdentifier)
	c := v16.Component{
		Type:        v16.ComponentTypeLibrary,
		BomRef:      id,
		Name:        pkg.PackageName,
		Version:     pkg.PackageVersion,
		Copyright:   pkg.PackageCopyrightText,
		Description: pkg.PackageDescription,
	}
	if t := v16.ComponentType(strings.ToLower(pkg.PrimaryPackagePurpose)); PackageType(t) {
		c.Type = t
	}

	var p props
	p.add(PropSPDXID, id)
	for _, a := range pkg.Annotations {
		p.addJSON(PropAnnotation, a)
	}
	if pkg.IsFilesAnalyzedTagPresent {
		p.add(PropFilesAnalyzed, strconv.FormatBool(pkg.FilesAnalyzed))
	}
	p.add(PropLicenseComments, pkg.PackageLicenseComments)
	p.add(PropLicenseConcluded, pkg.PackageLicenseConcluded)
	p.add(PropFileName, pkg.PackageFileName)
	if vc := pkg.PackageVerificationCode; vc != nil {
		p.add(PropVerificationCode, vc.Value)
		p.addAll(PropVerificationExcluded, vc.ExcludedFiles)
	}
	p.add(PropSourceInfo, pkg.PackageSourceInfo)
	p.add(PropSummary, pkg.PackageSummary)
	p.add(PropComment, pkg.PackageComment)
	for _, d := range []struct{ name, value string }{
		{PropBuiltDate, pkg.BuiltDate},
		{PropReleaseDate, pkg.ReleaseDate},
		{PropValidUntilDate, pkg.ValidUntilDate},
	} {
		p.add(d.name, canonicalDate(d.value))
	}
	if pkg.PrimaryPackagePurpose != "" && !PackageType(v16.ComponentType(strings.ToLower(pkg.PrimaryPackagePurpose))) {
		p.add(PropPrimaryPurpose, pkg.PrimaryPackagePurpose)
	}

	for _, info := range pkg.PackageLicenseInfoFromFiles {
		if l := evidenceLicense(doc, info); l != nil {
			if c.Evidence == nil {
				c.Evidence = &v16.Evidence{}
			}
			c.Evidence.Licenses = append(c.Evidence.Licenses, v16.LicenseChoice{License: l})
		}
	}

	switch pkg.PackageLicenseDeclared {
	case "", spdx.None:
	case spdx.NoAssertion:
		p.add(PropLicenseDeclared, pkg.PackageLicenseDeclared)
	default:
		c.Licenses = v16.Licenses{{Expression: pkg.PackageLicenseDeclared}}
	}

	if o := pkg.PackageOriginator; o != nil {
		name, email := splitParty(o.Originator)
		switch {
		case o.Originator == spdx.NoAssertion:
			p.add(PropOriginator, o.Originator)
		case name == "" || (o.OriginatorType != personType && o.OriginatorType != organizationType):
			p.add(PropOriginator, o.OriginatorType+": "+o.Originator)
		default:
			c.Author = name
			if o.OriginatorType == organizationType {
				p.add(PropOriginatorOrganization, name)
			}
			p.add(PropOriginatorEmail, email)
		}
	}

	if s := pkg.PackageSupplier; s != nil {
		name, email := splitParty(s.Supplier)
		switch {
		case s.Supplier == spdx.NoAssertion:
			p.add(PropSupplier, s.Supplier)
		case name == "" || (s.SupplierType != personType && s.SupplierType != organizationType):
			p.add(PropSupplier, s.SupplierType+": "+s.Supplier)
		default:
			c.Supplier = &v16.OrganizationalEntity{Name: name}
			if email != "" {
				c.Supplier.Contact = []v16.OrganizationalContact{{Email: email}}
			}
			if s.SupplierType == organizationType {
				p.add(PropSupplierOrganization, name)
			}
		}
	}

	for _, text := range pkg.PackageAttributionTexts {
		if c.Evidence == nil {
			c.Evidence = &v16.Evidence{}
		}
		c.Evidence.Copyright = append(c.Evidence.Copyright, v16.Copyright{Text: text})
	}
	componentHashes(&c, &p, pkg.PackageChecksums)
	componentExternalRefs(&c, &p, pkg.PackageExternalReferences)

	if loc := pkg.PackageDownloadLocation; loc != "" {
		if loc != spdx.NoAssertion && loc != spdx.None {
			c.ExternalReferences = append(c.ExternalReferences, v16.ExternalReference{Type: v16.ERTypeDistribution, URL: loc})
		}
		p.add(PropDownloadLocation, loc)
	}
	if pkg.PackageHomePage != "" {
		if pkg.PackageHomePage != spdx.NoAssertion && pkg.PackageHomePage != spdx.None {
			c.ExternalReferences = append(c.ExternalReferences, v16.ExternalReference{Type: v16.ERTypeWebsite, URL: pkg.PackageHomePage})
		}
		p.add(PropHomepage, pkg.PackageHomePage)
	}
	c.Properties = p.list()
	return c
}

// canonicalDate rewrites an ISO 8601 date as RFC 3339 in UTC. Values that
// do not parse are kept as written.
func canonicalDate(v string) string {
	t, err := bom.ParseTime(v)
	if err != nil {
		return v
	}
	return t.UTC().Format(time.RFC3339)
}

// evidenceLicense maps one licenseInfoFromFiles entry. Extracted licences
// carry their text; other LicenseRef and DocumentRef entries keep the
// reference as the name. NONE and NOASSERTION map to nothing.
func evidenceLicense(doc *spdx.Document, info string) *v16.License {
	switch {
	case info == spdx.None || info == spdx.NoAssertion || info == "":
		return nil
	case strings.HasPrefix(info, "LicenseRef-"):
		for _, x := range doc.OtherLicenses {
			if x == nil || x.LicenseIdentifier != info {
				continue
			}
			l := &v16.License{
				Name: x.LicenseName,
				Text: &v16.AttachedText{
					ContentType: "text/plain",
					Encoding:    "base64",
					Content:     base64.StdEncoding.EncodeToString([]byte(x.ExtractedText)),
				},
			}
			if len(x.LicenseCrossReferences) > 0 {
				l.URL = x.LicenseCrossReferences[0]
			}
			return l
		}
		return &v16.License{Name: info}
	case strings.HasPrefix(info, "DocumentRef-"):
		return &v16.License{Name: info}
	}
	return &v16.License{ID: info}
}
