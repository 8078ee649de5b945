// Package interop converts between the latest CycloneDX model and SPDX 2.3.
//
// SPDX fields with no CycloneDX counterpart travel as "spdx:" properties
// (see the Prop constants), so a document converted from SPDX converts
// back without losing them. Values recorded that way take precedence over
// the defaults ToSpdx would otherwise derive.
package interop

import (
	"encoding/base64"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spdx/tools-golang/spdx/v2/common"
	"github.com/stoewer/go-strcase"

	"xdao.co/sbom/bom"
	v16 "xdao.co/sbom/bom/v16"
	"xdao.co/sbom/spdx"
)

const (
	DefaultDocumentName    = "CycloneDX BOM"
	DefaultCreationComment = "This SPDX document has been converted from CycloneDX format."
	namespacePrefix        = "http://spdx.org/spdxdocs/"
)

// now is the creation time used when the BOM carries no timestamp.
var now = func() time.Time { return time.Now().UTC().Truncate(time.Second) }

// PackageType reports whether components of type t become SPDX packages.
func PackageType(t v16.ComponentType) bool {
	switch t {
	case v16.ComponentTypeApplication, v16.ComponentTypeFirmware, v16.ComponentTypeFramework,
		v16.ComponentTypeLibrary, v16.ComponentTypeOperatingSystem, v16.ComponentTypeContainer:
		return true
	}
	return false
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// ToSpdx converts b to an SPDX 2.3 document. Top-level components of a
// package type become packages; the document DESCRIBES every package
// (or the recorded describes list) and dependency edges between packages
// become DEPENDS_ON relationships.
func ToSpdx(b *v16.Bom) *spdx.Document {
	if b == nil {
		b = &v16.Bom{}
	}
	md := b.Metadata
	if md == nil {
		md = &v16.Metadata{}
	}
	meta := md.Properties

	doc := &spdx.Document{
		SPDXVersion:     spdx.Version,
		DataLicense:     or(first(meta, PropDocumentDataLicense), spdx.DataLicense),
		SPDXIdentifier:  spdx.DocumentID,
		DocumentName:    or(first(meta, PropDocumentName), documentName(md.Component)),
		DocumentComment: first(meta, PropComment),
	}
	if id := first(meta, PropSPDXID); id != "" {
		doc.SPDXIdentifier = spdx.ElementID(id)
	}
	doc.DocumentNamespace = first(meta, PropDocumentNamespace)
	if doc.DocumentNamespace == "" {
		id := bom.SerialUUID(b.SerialNumber)
		if id == "" {
			id = uuid.NewString()
		}
		doc.DocumentNamespace = namespacePrefix + doc.DocumentName + "-" + id
	}

	created := now()
	if md.Timestamp != nil {
		created = md.Timestamp.UTC()
	}
	doc.CreationInfo = &spdx.CreationInfo{
		CreatorComment:     or(first(meta, PropCreationComment), DefaultCreationComment),
		Created:            created.Format(time.RFC3339),
		Creators:           creators(md),
		LicenseListVersion: first(meta, PropLicenseListVersion),
	}
	doc.ExternalDocumentReferences = allJSON[spdx.ExternalDocumentRef](meta, PropDocumentExternalRef)
	for _, a := range allJSON[spdx.Annotation](meta, PropAnnotation) {
		doc.Annotations = append(doc.Annotations, &a)
	}

	ids := map[string]common.ElementID{}
	for i := range b.Components {
		c := &b.Components[i]
		if !PackageType(c.Type) {
			continue
		}
		pkg := toPackage(doc, c)
		doc.Packages = append(doc.Packages, pkg)
		if c.BomRef != "" {
			ids[c.BomRef] = pkg.PackageSPDXIdentifier
		}
	}

	self := common.MakeDocElementID("", string(doc.SPDXIdentifier))
	described := all(meta, PropDocumentDescribes)
	if len(described) == 0 {
		for _, p := range doc.Packages {
			described = append(described, common.RenderElementID(p.PackageSPDXIdentifier))
		}
	}
	for _, id := range described {
		doc.Relationships = append(doc.Relationships, &spdx.Relationship{RefA: self, RefB: spdx.DocElementID(id), Relationship: spdx.RelationshipDescribes})
	}
	for _, d := range b.Dependencies {
		from, ok := ids[d.Ref]
		if !ok {
			continue
		}
		for _, on := range d.DependsOn {
			if to, ok := ids[string(on)]; ok {
				doc.Relationships = append(doc.Relationships, &spdx.Relationship{
					RefA:         common.MakeDocElementID("", string(from)),
					RefB:         common.MakeDocElementID("", string(to)),
					Relationship: spdx.RelationshipDependsOn,
				})
			}
		}
	}
	return doc
}

// documentName is "[group ]name[-version]" of the metadata component.
func documentName(c *v16.Component) string {
	if c == nil || c.Name == "" {
		return DefaultDocumentName
	}
	name := c.Name
	if c.Version != "" {
		name += "-" + c.Version
	}
	if c.Group != "" {
		name = c.Group + " " + name
	}
	return name
}

func creators(md *v16.Metadata) []common.Creator {
	var out []common.Creator
	for _, t := range md.Tools {
		if t.Name == "" {
			continue
		}
		out = append(out, common.Creator{CreatorType: toolType, Creator: joinTool(t.Name, t.Version)})
	}
	orgs := all(md.Properties, PropCreatorsOrganizations)
	for _, a := range md.Authors {
		if a.Name == "" {
			continue
		}
		kind := personType
		for _, o := range orgs {
			if o == a.Name {
				kind = organizationType
			}
		}
		out = append(out, common.Creator{CreatorType: kind, Creator: joinParty(a.Name, a.Email)})
	}
	for _, raw := range all(md.Properties, PropCreator) {
		if kind, text, ok := strings.Cut(raw, ": "); ok {
			out = append(out, common.Creator{CreatorType: kind, Creator: text})
		}
	}
	return out
}

var invalidIDChars = regexp.MustCompile(`[^A-Za-z0-9.\-]`)

func toPackage(doc *spdx.Document, c *v16.Component) *spdx.Package {
	ps := c.Properties
	pkg := &spdx.Package{
		PackageName:               c.Name,
		PackageVersion:            c.Version,
		PackageDescription:        c.Description,
		PackageCopyrightText:      assertion(c.Copyright),
		Annotations:               allJSON[spdx.Annotation](ps, PropAnnotation),
		PackageLicenseComments:    first(ps, PropLicenseComments),
		PackageFileName:           first(ps, PropFileName),
		PackageLicenseConcluded:   assertion(first(ps, PropLicenseConcluded)),
		PackageSourceInfo:         first(ps, PropSourceInfo),
		PackageSummary:            first(ps, PropSummary),
		PackageComment:            first(ps, PropComment),
		PackageDownloadLocation:   or(first(ps, PropDownloadLocation), spdx.NoAssertion),
		PackageHomePage:           first(ps, PropHomepage),
		PackageChecksums:          packageChecksums(c),
		PackageExternalReferences: packageExternalRefs(c),
		ReleaseDate:               dateProp(ps, PropReleaseDate),
		BuiltDate:                 dateProp(ps, PropBuiltDate),
		ValidUntilDate:            dateProp(ps, PropValidUntilDate),
		IsFilesAnalyzedTagPresent: true,
	}
	switch id := first(ps, PropSPDXID); {
	case id != "":
		pkg.PackageSPDXIdentifier = spdx.ElementID(id)
	case c.BomRef != "":
		pkg.PackageSPDXIdentifier = common.ElementID(invalidIDChars.ReplaceAllString(c.BomRef, "-"))
	default:
		pkg.PackageSPDXIdentifier = common.ElementID("Package-" + strconv.Itoa(len(doc.Packages)+1))
	}
	if v, err := strconv.ParseBool(first(ps, PropFilesAnalyzed)); err == nil {
		pkg.FilesAnalyzed = v
	}
	if code := first(ps, PropVerificationCode); code != "" {
		pkg.PackageVerificationCode = &common.PackageVerificationCode{
			Value:         code,
			ExcludedFiles: all(ps, PropVerificationExcluded),
		}
	}
	pkg.PrimaryPackagePurpose = first(ps, PropPrimaryPurpose)
	if pkg.PrimaryPackagePurpose == "" {
		pkg.PrimaryPackagePurpose = strcase.UpperKebabCase(string(c.Type))
	}

	if c.Evidence != nil {
		for _, l := range c.Evidence.Licenses {
			switch {
			case l.License == nil:
			case l.License.ID != "":
				pkg.PackageLicenseInfoFromFiles = append(pkg.PackageLicenseInfoFromFiles, l.License.ID)
			default:
				info := &spdx.OtherLicense{
					LicenseIdentifier: "LicenseRef-" + strconv.Itoa(len(doc.OtherLicenses)+1),
					LicenseName:       l.License.Name,
				}
				if l.License.URL != "" {
					info.LicenseCrossReferences = []string{l.License.URL}
				}
				info.ExtractedText = attachedText(l.License.Text)
				doc.OtherLicenses = append(doc.OtherLicenses, info)
				pkg.PackageLicenseInfoFromFiles = append(pkg.PackageLicenseInfoFromFiles, info.LicenseIdentifier)
			}
		}
		for _, cr := range c.Evidence.Copyright {
			pkg.PackageAttributionTexts = append(pkg.PackageAttributionTexts, cr.Text)
		}
	}

	pkg.PackageLicenseDeclared = assertion(first(ps, PropLicenseDeclared))
	if len(c.Licenses) == 1 {
		l := c.Licenses[0]
		switch {
		case l.Expression != "":
			pkg.PackageLicenseDeclared = l.Expression
		case l.License != nil && l.License.ID != "":
			pkg.PackageLicenseDeclared = l.License.ID
		}
	}

	if kind, text, ok := strings.Cut(assertion(first(ps, PropOriginator)), ": "); ok {
		pkg.PackageOriginator = &common.Originator{OriginatorType: kind, Originator: text}
	}
	if c.Author != "" {
		kind := personType
		if c.Author == first(ps, PropOriginatorOrganization) {
			kind = organizationType
		}
		pkg.PackageOriginator = &common.Originator{OriginatorType: kind, Originator: joinParty(c.Author, first(ps, PropOriginatorEmail))}
	}
	if kind, text, ok := strings.Cut(assertion(first(ps, PropSupplier)), ": "); ok {
		pkg.PackageSupplier = &common.Supplier{SupplierType: kind, Supplier: text}
	}
	if s := c.Supplier; s != nil && s.Name != "" {
		email := ""
		for _, ct := range s.Contact {
			if ct.Email != "" {
				email = ct.Email
				break
			}
		}
		kind := personType
		if s.Name == first(ps, PropSupplierOrganization) {
			kind = organizationType
		}
		pkg.PackageSupplier = &common.Supplier{SupplierType: kind, Supplier: joinParty(s.Name, email)}
	}
	return pkg
}

func attachedText(t *v16.AttachedText) string {
	if t == nil {
		return ""
	}
	if t.Encoding == "base64" {
		if b, err := base64.StdEncoding.DecodeString(t.Content); err == nil {
			return string(b)
		}
	}
	return t.Content
}

// dateProp returns the recorded date in the form SPDX writes, or "" when
// it is absent or not a date.
func dateProp(ps []v16.Property, name string) string {
	t, err := bom.ParseTime(strings.Trim(first(ps, name), `"`))
	if err != nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
