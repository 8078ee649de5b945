package protocodec

import (
	"google.golang.org/protobuf/encoding/protowire"

	v16 "xdao.co/sbom/bom/v16"
)

func encBom(e *encoder, b *v16.Bom, specVersion string) {
	e.str(1, specVersion)
	if b.Version != 0 {
		e.varint(2, uint64(int32(b.Version)))
	}
	e.str(3, b.SerialNumber)
	if b.Metadata != nil {
		e.message(4, func(m *encoder) { encMetadata(m, b.Metadata) })
	}
	for i := range b.Components {
		e.message(5, func(m *encoder) { encComponent(m, &b.Components[i]) })
	}
	for i := range b.Services {
		e.message(6, func(m *encoder) { encService(m, &b.Services[i]) })
	}
	encExternalReferences(e, 7, b.ExternalReferences)
	for i := range b.Dependencies {
		e.message(8, func(m *encoder) { encDependency(m, &b.Dependencies[i]) })
	}
	for i := range b.Compositions {
		e.message(9, func(m *encoder) { encComposition(m, &b.Compositions[i]) })
	}
	for i := range b.Vulnerabilities {
		e.message(10, func(m *encoder) { encVulnerability(m, &b.Vulnerabilities[i]) })
	}
	for i := range b.Annotations {
		e.message(11, func(m *encoder) { encAnnotation(m, &b.Annotations[i]) })
	}
	encProperties(e, 12, b.Properties)
}

func encMetadata(e *encoder, md *v16.Metadata) {
	e.timestamp(1, md.Timestamp)
	for i := range md.Tools {
		t := &md.Tools[i]
		e.message(2, func(m *encoder) {
			m.str(1, t.Vendor)
			m.str(2, t.Name)
			m.str(3, t.Version)
			encHashes(m, 4, t.Hashes)
			encExternalReferences(m, 5, t.ExternalReferences)
		})
	}
	encContacts(e, 3, md.Authors)
	if md.Component != nil {
		e.message(4, func(m *encoder) { encComponent(m, md.Component) })
	}
	encEntity(e, 5, md.Manufacture)
	encEntity(e, 6, md.Supplier)
	encLicenses(e, 7, md.Licenses)
	encProperties(e, 8, md.Properties)
	for _, l := range md.Lifecycles {
		e.message(9, func(m *encoder) {
			m.enum(1, lifecyclePhaseEnum, string(l.Phase))
			m.str(2, l.Name)
			m.str(3, l.Description)
		})
	}
	encEntity(e, 10, md.Manufacturer)
}

func encEntity(e *encoder, num protowire.Number, oe *v16.OrganizationalEntity) {
	if oe == nil {
		return
	}
	e.message(num, func(m *encoder) {
		m.str(1, oe.Name)
		m.strs(2, oe.URL)
		encContacts(m, 3, oe.Contact)
		m.str(4, oe.BomRef)
	})
}

func encContacts(e *encoder, num protowire.Number, cs []v16.OrganizationalContact) {
	for i := range cs {
		encContact(e, num, &cs[i])
	}
}

func encContact(e *encoder, num protowire.Number, c *v16.OrganizationalContact) {
	if c == nil {
		return
	}
	e.message(num, func(m *encoder) {
		m.str(1, c.Name)
		m.str(2, c.Email)
		m.str(3, c.Phone)
		m.str(4, c.BomRef)
	})
}

func encComponent(e *encoder, c *v16.Component) {
	e.enum(1, classificationEnum, string(c.Type))
	e.str(2, c.MimeType)
	e.str(3, c.BomRef)
	encEntity(e, 4, c.Supplier)
	e.str(5, c.Author)
	e.str(6, c.Publisher)
	e.str(7, c.Group)
	e.str(8, c.Name)
	e.str(9, c.Version)
	e.str(10, c.Description)
	if c.Scope != nil {
		e.enum(11, scopeEnum, string(*c.Scope))
	}
	encHashes(e, 12, c.Hashes)
	encLicenses(e, 13, c.Licenses)
	e.str(14, c.Copyright)
	e.str(15, c.Cpe)
	e.str(16, c.Purl)
	if c.Swid != nil {
		e.message(17, func(m *encoder) { encSwid(m, c.Swid) })
	}
	e.boolp(18, c.Modified)
	if c.Pedigree != nil {
		e.message(19, func(m *encoder) { encPedigree(m, c.Pedigree) })
	}
	encExternalReferences(e, 20, c.ExternalReferences)
	encProperties(e, 21, c.Properties)
	for i := range c.Components {
		e.message(22, func(m *encoder) { encComponent(m, &c.Components[i]) })
	}
	if c.Evidence != nil {
		e.message(23, func(m *encoder) {
			encLicenses(m, 1, c.Evidence.Licenses)
			for _, cr := range c.Evidence.Copyright {
				m.message(2, func(t *encoder) { t.str(1, cr.Text) })
			}
		})
	}
	if c.ReleaseNotes != nil {
		e.message(24, func(m *encoder) { encReleaseNotes(m, c.ReleaseNotes) })
	}
	e.strs(27, c.Tags)
	e.strs(28, c.OmniborID)
	e.strs(29, c.Swhid)
	encContacts(e, 30, c.Authors)
	encEntity(e, 31, c.Manufacturer)
}

func encHashes(e *encoder, num protowire.Number, hs []v16.Hash) {
	for _, h := range hs {
		e.message(num, func(m *encoder) {
			m.enum(1, hashAlgEnum, string(h.Alg))
			m.str(2, h.Content)
		})
	}
}

func encLicenses(e *encoder, num protowire.Number, ls v16.Licenses) {
	for _, lc := range ls {
		e.message(num, func(m *encoder) {
			if lc.License != nil {
				l := lc.License
				m.message(1, func(t *encoder) {
					t.str(1, l.ID)
					t.str(2, l.Name)
					encAttachedText(t, 3, l.Text)
					t.str(4, l.URL)
					t.str(5, l.BomRef)
					t.enum(8, acknowledgementEnum, string(l.Acknowledgement))
				})
				return
			}
			m.str(2, lc.Expression)
		})
	}
}

func encAttachedText(e *encoder, num protowire.Number, t *v16.AttachedText) {
	if t == nil {
		return
	}
	e.message(num, func(m *encoder) {
		m.str(1, t.ContentType)
		m.str(2, t.Encoding)
		m.str(3, t.Content)
	})
}

func encSwid(e *encoder, s *v16.Swid) {
	e.str(1, s.TagID)
	e.str(2, s.Name)
	e.str(3, s.Version)
	e.intp(4, s.TagVersion)
	e.boolp(5, s.Patch)
	encAttachedText(e, 6, s.Text)
	e.str(7, s.URL)
}

func encPedigree(e *encoder, p *v16.Pedigree) {
	for i := range p.Ancestors {
		e.message(1, func(m *encoder) { encComponent(m, &p.Ancestors[i]) })
	}
	for i := range p.Descendants {
		e.message(2, func(m *encoder) { encComponent(m, &p.Descendants[i]) })
	}
	for i := range p.Variants {
		e.message(3, func(m *encoder) { encComponent(m, &p.Variants[i]) })
	}
	for i := range p.Commits {
		c := &p.Commits[i]
		e.message(4, func(m *encoder) {
			m.str(1, c.UID)
			m.str(2, c.URL)
			encAction(m, 3, c.Author)
			encAction(m, 4, c.Committer)
			m.str(5, c.Message)
		})
	}
	for i := range p.Patches {
		pt := &p.Patches[i]
		e.message(5, func(m *encoder) {
			m.enum(1, patchTypeEnum, string(pt.Type))
			if pt.Diff != nil {
				m.message(2, func(d *encoder) {
					encAttachedText(d, 1, pt.Diff.Text)
					d.str(2, pt.Diff.URL)
				})
			}
			encIssues(m, 3, pt.Resolves)
		})
	}
	e.str(6, p.Notes)
}

func encAction(e *encoder, num protowire.Number, a *v16.IdentifiableAction) {
	if a == nil {
		return
	}
	e.message(num, func(m *encoder) {
		m.timestamp(1, a.Timestamp)
		m.str(2, a.Name)
		m.str(3, a.Email)
	})
}

func encIssues(e *encoder, num protowire.Number, issues []v16.Issue) {
	for i := range issues {
		is := &issues[i]
		e.message(num, func(m *encoder) {
			m.enum(1, issueTypeEnum, string(is.Type))
			m.str(2, is.ID)
			m.str(3, is.Name)
			m.str(4, is.Description)
			encSource(m, 5, is.Source)
			m.strs(6, is.References)
		})
	}
}

func encSource(e *encoder, num protowire.Number, s *v16.Source) {
	if s == nil {
		return
	}
	e.message(num, func(m *encoder) {
		m.str(1, s.Name)
		m.str(2, s.URL)
	})
}

func encReleaseNotes(e *encoder, rn *v16.ReleaseNotes) {
	e.str(1, rn.Type)
	e.str(2, rn.Title)
	e.str(3, rn.FeaturedImage)
	e.str(4, rn.SocialImage)
	e.str(5, rn.Description)
	e.timestamp(6, rn.Timestamp)
	e.strs(7, rn.Aliases)
	e.strs(8, rn.Tags)
	encIssues(e, 9, rn.Resolves)
	for i := range rn.Notes {
		n := &rn.Notes[i]
		e.message(10, func(m *encoder) {
			m.str(1, n.Locale)
			encAttachedText(m, 2, &n.Text)
		})
	}
	encProperties(e, 11, rn.Properties)
}

func encExternalReferences(e *encoder, num protowire.Number, rs []v16.ExternalReference) {
	for i := range rs {
		r := &rs[i]
		e.message(num, func(m *encoder) {
			m.enum(1, externalReferenceTypeEnum, string(r.Type))
			m.str(2, r.URL)
			m.str(3, r.Comment)
			encHashes(m, 4, r.Hashes)
		})
	}
}

func encProperties(e *encoder, num protowire.Number, ps []v16.Property) {
	for _, p := range ps {
		e.message(num, func(m *encoder) {
			m.str(1, p.Name)
			m.str(2, p.Value)
		})
	}
}

func encService(e *encoder, s *v16.Service) {
	e.str(1, s.BomRef)
	encEntity(e, 2, s.Provider)
	e.str(3, s.Group)
	e.str(4, s.Name)
	e.str(5, s.Version)
	e.str(6, s.Description)
	e.strs(7, s.Endpoints)
	e.boolp(8, s.Authenticated)
	e.boolp(9, s.XTrustBoundary)
	for _, d := range s.Data {
		e.message(10, func(m *encoder) {
			m.enum(1, dataFlowEnum, string(d.Flow))
			m.str(2, d.Classification)
		})
	}
	encLicenses(e, 11, s.Licenses)
	encExternalReferences(e, 12, s.ExternalReferences)
	for i := range s.Services {
		e.message(13, func(m *encoder) { encService(m, &s.Services[i]) })
	}
	encProperties(e, 14, s.Properties)
	if s.ReleaseNotes != nil {
		e.message(15, func(m *encoder) { encReleaseNotes(m, s.ReleaseNotes) })
	}
	e.strs(17, s.Tags)
}

func encRefs(e *encoder, num protowire.Number, rs []v16.BomReference) {
	for _, r := range rs {
		e.message(num, func(m *encoder) { m.str(1, string(r)) })
	}
}

// encRefStrings writes references as a repeated string field.
func encRefStrings(e *encoder, num protowire.Number, rs []v16.BomReference) {
	for _, r := range rs {
		e.strs(num, []string{string(r)})
	}
}

func encDependency(e *encoder, d *v16.Dependency) {
	e.str(1, d.Ref)
	encRefs(e, 2, d.DependsOn)
	encRefStrings(e, 3, d.Provides)
}

func encComposition(e *encoder, c *v16.Composition) {
	e.enum(1, aggregateEnum, string(c.Aggregate))
	encRefStrings(e, 2, c.Assemblies)
	encRefStrings(e, 3, c.Dependencies)
	e.str(5, c.BomRef)
}

func encVulnerability(e *encoder, v *v16.Vulnerability) {
	e.str(1, v.BomRef)
	e.str(2, v.ID)
	encSource(e, 3, v.Source)
	for i := range v.References {
		r := &v.References[i]
		e.message(4, func(m *encoder) {
			m.str(1, r.ID)
			encSource(m, 2, r.Source)
		})
	}
	for i := range v.Ratings {
		r := &v.Ratings[i]
		e.message(5, func(m *encoder) {
			encSource(m, 1, r.Source)
			m.doublep(2, r.Score)
			m.enum(3, severityEnum, string(r.Severity))
			m.enum(4, scoreMethodEnum, string(r.Method))
			m.str(5, r.Vector)
			m.str(6, r.Justification)
		})
	}
	e.packedInts(6, v.CWEs)
	e.str(7, v.Description)
	e.str(8, v.Detail)
	e.str(9, v.Recommendation)
	for _, a := range v.Advisories {
		e.message(10, func(m *encoder) {
			m.str(1, a.Title)
			m.str(2, a.URL)
		})
	}
	e.timestamp(11, v.Created)
	e.timestamp(12, v.Published)
	e.timestamp(13, v.Updated)
	if a := v.Analysis; a != nil {
		e.message(15, func(m *encoder) {
			m.enum(1, impactStateEnum, string(a.State))
			m.enum(2, impactJustificationEnum, string(a.Justification))
			for _, r := range a.Responses {
				m.enum(3, impactResponseEnum, string(r))
			}
			m.str(4, a.Detail)
		})
	}
	for i := range v.Affects {
		af := &v.Affects[i]
		e.message(16, func(m *encoder) {
			m.str(1, af.Ref)
			for _, av := range af.Versions {
				m.message(2, func(t *encoder) {
					t.str(1, av.Version)
					t.str(2, av.Range)
					t.enum(3, affectedStatusEnum, string(av.Status))
				})
			}
		})
	}
	encProperties(e, 17, v.Properties)
}

func encAnnotation(e *encoder, a *v16.Annotation) {
	e.str(1, a.BomRef)
	encRefStrings(e, 2, a.Subjects)
	if an := a.Annotator; an != nil {
		e.message(3, func(m *encoder) {
			encEntity(m, 1, an.Organization)
			encContact(m, 2, an.Individual)
			if an.Component != nil {
				m.message(3, func(t *encoder) { encComponent(t, an.Component) })
			}
			if an.Service != nil {
				m.message(4, func(t *encoder) { encService(t, an.Service) })
			}
		})
	}
	e.timestamp(4, a.Timestamp)
	e.str(5, a.Text)
}
