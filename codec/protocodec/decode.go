package protocodec

import (
	v16 "xdao.co/sbom/bom/v16"
)

func msg[T any](f field, dec func([]byte) (T, error)) (T, error) {
	b, err := f.bytes()
	if err != nil {
		var zero T
		return zero, err
	}
	return dec(b)
}

func ptrMsg[T any](f field, dec func([]byte) (T, error)) (*T, error) {
	v, err := msg(f, dec)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func appendMsg[T any](list *[]T, f field, dec func([]byte) (T, error)) error {
	v, err := msg(f, dec)
	if err != nil {
		return err
	}
	*list = append(*list, v)
	return nil
}

func appendStr[T ~string](list *[]T, f field) error {
	s, err := f.str()
	if err != nil {
		return err
	}
	*list = append(*list, T(s))
	return nil
}

func enumOf[T ~string](f field, t *enumTable) (T, error) {
	s, err := f.enum(t)
	return T(s), err
}

func decBom(b []byte) (bom v16.Bom, specVersion string, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			specVersion, err = f.str()
		case 2:
			bom.Version, err = f.int()
		case 3:
			bom.SerialNumber, err = f.str()
		case 4:
			bom.Metadata, err = ptrMsg(f, decMetadata)
		case 5:
			err = appendMsg(&bom.Components, f, decComponent)
		case 6:
			err = appendMsg(&bom.Services, f, decService)
		case 7:
			err = appendMsg(&bom.ExternalReferences, f, decExternalReference)
		case 8:
			err = appendMsg(&bom.Dependencies, f, decDependency)
		case 9:
			err = appendMsg(&bom.Compositions, f, decComposition)
		case 10:
			err = appendMsg(&bom.Vulnerabilities, f, decVulnerability)
		case 11:
			err = appendMsg(&bom.Annotations, f, decAnnotation)
		case 12:
			err = appendMsg(&bom.Properties, f, decProperty)
		}
		return err
	})
	return bom, specVersion, err
}

func decMetadata(b []byte) (md v16.Metadata, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			md.Timestamp, err = f.timestamp()
		case 2:
			err = appendMsg(&md.Tools, f, decTool)
		case 3:
			err = appendMsg(&md.Authors, f, decContact)
		case 4:
			md.Component, err = ptrMsg(f, decComponent)
		case 5:
			md.Manufacture, err = ptrMsg(f, decEntity)
		case 6:
			md.Supplier, err = ptrMsg(f, decEntity)
		case 7:
			err = appendMsg((*[]v16.LicenseChoice)(&md.Licenses), f, decLicenseChoice)
		case 8:
			err = appendMsg(&md.Properties, f, decProperty)
		case 9:
			err = appendMsg(&md.Lifecycles, f, decLifecycle)
		case 10:
			md.Manufacturer, err = ptrMsg(f, decEntity)
		}
		return err
	})
	return md, err
}

func decLifecycle(b []byte) (l v16.Lifecycle, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			l.Phase, err = enumOf[v16.LifecyclePhase](f, lifecyclePhaseEnum)
		case 2:
			l.Name, err = f.str()
		case 3:
			l.Description, err = f.str()
		}
		return err
	})
	return l, err
}

func decTool(b []byte) (t v16.Tool, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			t.Vendor, err = f.str()
		case 2:
			t.Name, err = f.str()
		case 3:
			t.Version, err = f.str()
		case 4:
			err = appendMsg(&t.Hashes, f, decHash)
		case 5:
			err = appendMsg(&t.ExternalReferences, f, decExternalReference)
		}
		return err
	})
	return t, err
}

func decEntity(b []byte) (oe v16.OrganizationalEntity, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			oe.Name, err = f.str()
		case 2:
			err = appendStr(&oe.URL, f)
		case 3:
			err = appendMsg(&oe.Contact, f, decContact)
		case 4:
			oe.BomRef, err = f.str()
		}
		return err
	})
	return oe, err
}

func decContact(b []byte) (c v16.OrganizationalContact, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			c.Name, err = f.str()
		case 2:
			c.Email, err = f.str()
		case 3:
			c.Phone, err = f.str()
		case 4:
			c.BomRef, err = f.str()
		}
		return err
	})
	return c, err
}

func decComponent(b []byte) (c v16.Component, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			c.Type, err = enumOf[v16.ComponentType](f, classificationEnum)
		case 2:
			c.MimeType, err = f.str()
		case 3:
			c.BomRef, err = f.str()
		case 4:
			c.Supplier, err = ptrMsg(f, decEntity)
		case 5:
			c.Author, err = f.str()
		case 6:
			c.Publisher, err = f.str()
		case 7:
			c.Group, err = f.str()
		case 8:
			c.Name, err = f.str()
		case 9:
			c.Version, err = f.str()
		case 10:
			c.Description, err = f.str()
		case 11:
			var s v16.Scope
			if s, err = enumOf[v16.Scope](f, scopeEnum); err == nil && s != "" {
				c.Scope = &s
			}
		case 12:
			err = appendMsg(&c.Hashes, f, decHash)
		case 13:
			err = appendMsg((*[]v16.LicenseChoice)(&c.Licenses), f, decLicenseChoice)
		case 14:
			c.Copyright, err = f.str()
		case 15:
			c.Cpe, err = f.str()
		case 16:
			c.Purl, err = f.str()
		case 17:
			c.Swid, err = ptrMsg(f, decSwid)
		case 18:
			c.Modified, err = f.boolp()
		case 19:
			c.Pedigree, err = ptrMsg(f, decPedigree)
		case 20:
			err = appendMsg(&c.ExternalReferences, f, decExternalReference)
		case 21:
			err = appendMsg(&c.Properties, f, decProperty)
		case 22:
			err = appendMsg(&c.Components, f, decComponent)
		case 23:
			c.Evidence, err = ptrMsg(f, decEvidence)
		case 24:
			c.ReleaseNotes, err = ptrMsg(f, decReleaseNotes)
		case 27:
			err = appendStr(&c.Tags, f)
		case 28:
			err = appendStr(&c.OmniborID, f)
		case 29:
			err = appendStr(&c.Swhid, f)
		case 30:
			err = appendMsg(&c.Authors, f, decContact)
		case 31:
			c.Manufacturer, err = ptrMsg(f, decEntity)
		}
		return err
	})
	return c, err
}

func decHash(b []byte) (h v16.Hash, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			h.Alg, err = enumOf[v16.HashAlgorithm](f, hashAlgEnum)
		case 2:
			h.Content, err = f.str()
		}
		return err
	})
	return h, err
}

func decLicenseChoice(b []byte) (lc v16.LicenseChoice, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			lc.License, err = ptrMsg(f, decLicense)
		case 2:
			lc.Expression, err = f.str()
		}
		return err
	})
	return lc, err
}

func decLicense(b []byte) (l v16.License, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			l.ID, err = f.str()
		case 2:
			l.Name, err = f.str()
		case 3:
			l.Text, err = ptrMsg(f, decAttachedText)
		case 4:
			l.URL, err = f.str()
		case 5:
			l.BomRef, err = f.str()
		case 8:
			l.Acknowledgement, err = enumOf[v16.LicenseAcknowledgement](f, acknowledgementEnum)
		}
		return err
	})
	return l, err
}

func decAttachedText(b []byte) (t v16.AttachedText, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			t.ContentType, err = f.str()
		case 2:
			t.Encoding, err = f.str()
		case 3:
			t.Content, err = f.str()
		}
		return err
	})
	return t, err
}

func decSwid(b []byte) (s v16.Swid, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			s.TagID, err = f.str()
		case 2:
			s.Name, err = f.str()
		case 3:
			s.Version, err = f.str()
		case 4:
			s.TagVersion, err = f.intp()
		case 5:
			s.Patch, err = f.boolp()
		case 6:
			s.Text, err = ptrMsg(f, decAttachedText)
		case 7:
			s.URL, err = f.str()
		}
		return err
	})
	return s, err
}

func decPedigree(b []byte) (p v16.Pedigree, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			err = appendMsg(&p.Ancestors, f, decComponent)
		case 2:
			err = appendMsg(&p.Descendants, f, decComponent)
		case 3:
			err = appendMsg(&p.Variants, f, decComponent)
		case 4:
			err = appendMsg(&p.Commits, f, decCommit)
		case 5:
			err = appendMsg(&p.Patches, f, decPatch)
		case 6:
			p.Notes, err = f.str()
		}
		return err
	})
	return p, err
}

func decCommit(b []byte) (c v16.Commit, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			c.UID, err = f.str()
		case 2:
			c.URL, err = f.str()
		case 3:
			c.Author, err = ptrMsg(f, decAction)
		case 4:
			c.Committer, err = ptrMsg(f, decAction)
		case 5:
			c.Message, err = f.str()
		}
		return err
	})
	return c, err
}

func decAction(b []byte) (a v16.IdentifiableAction, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			a.Timestamp, err = f.timestamp()
		case 2:
			a.Name, err = f.str()
		case 3:
			a.Email, err = f.str()
		}
		return err
	})
	return a, err
}

func decPatch(b []byte) (p v16.Patch, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			p.Type, err = enumOf[v16.PatchType](f, patchTypeEnum)
		case 2:
			p.Diff, err = ptrMsg(f, decDiff)
		case 3:
			err = appendMsg(&p.Resolves, f, decIssue)
		}
		return err
	})
	return p, err
}

func decDiff(b []byte) (d v16.Diff, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			d.Text, err = ptrMsg(f, decAttachedText)
		case 2:
			d.URL, err = f.str()
		}
		return err
	})
	return d, err
}

func decIssue(b []byte) (is v16.Issue, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			is.Type, err = enumOf[v16.IssueType](f, issueTypeEnum)
		case 2:
			is.ID, err = f.str()
		case 3:
			is.Name, err = f.str()
		case 4:
			is.Description, err = f.str()
		case 5:
			is.Source, err = ptrMsg(f, decSource)
		case 6:
			err = appendStr(&is.References, f)
		}
		return err
	})
	return is, err
}

func decSource(b []byte) (s v16.Source, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			s.Name, err = f.str()
		case 2:
			s.URL, err = f.str()
		}
		return err
	})
	return s, err
}

func decEvidence(b []byte) (ev v16.Evidence, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			err = appendMsg((*[]v16.LicenseChoice)(&ev.Licenses), f, decLicenseChoice)
		case 2:
			err = appendMsg(&ev.Copyright, f, func(b []byte) (c v16.Copyright, err error) {
				err = eachField(b, func(f field) (err error) {
					if f.num == 1 {
						c.Text, err = f.str()
					}
					return err
				})
				return c, err
			})
		}
		return err
	})
	return ev, err
}

func decReleaseNotes(b []byte) (rn v16.ReleaseNotes, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			rn.Type, err = f.str()
		case 2:
			rn.Title, err = f.str()
		case 3:
			rn.FeaturedImage, err = f.str()
		case 4:
			rn.SocialImage, err = f.str()
		case 5:
			rn.Description, err = f.str()
		case 6:
			rn.Timestamp, err = f.timestamp()
		case 7:
			err = appendStr(&rn.Aliases, f)
		case 8:
			err = appendStr(&rn.Tags, f)
		case 9:
			err = appendMsg(&rn.Resolves, f, decIssue)
		case 10:
			err = appendMsg(&rn.Notes, f, decNote)
		case 11:
			err = appendMsg(&rn.Properties, f, decProperty)
		}
		return err
	})
	return rn, err
}

func decNote(b []byte) (n v16.Note, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			n.Locale, err = f.str()
		case 2:
			n.Text, err = msg(f, decAttachedText)
		}
		return err
	})
	return n, err
}

func decExternalReference(b []byte) (r v16.ExternalReference, err error) {
	// An absent type is the zero value, "other".
	r.Type = v16.ERTypeOther
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			r.Type, err = enumOf[v16.ExternalReferenceType](f, externalReferenceTypeEnum)
		case 2:
			r.URL, err = f.str()
		case 3:
			r.Comment, err = f.str()
		case 4:
			err = appendMsg(&r.Hashes, f, decHash)
		}
		return err
	})
	return r, err
}

func decProperty(b []byte) (p v16.Property, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			p.Name, err = f.str()
		case 2:
			p.Value, err = f.str()
		}
		return err
	})
	return p, err
}

func decService(b []byte) (s v16.Service, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			s.BomRef, err = f.str()
		case 2:
			s.Provider, err = ptrMsg(f, decEntity)
		case 3:
			s.Group, err = f.str()
		case 4:
			s.Name, err = f.str()
		case 5:
			s.Version, err = f.str()
		case 6:
			s.Description, err = f.str()
		case 7:
			err = appendStr(&s.Endpoints, f)
		case 8:
			s.Authenticated, err = f.boolp()
		case 9:
			s.XTrustBoundary, err = f.boolp()
		case 10:
			err = appendMsg(&s.Data, f, decDataClassification)
		case 11:
			err = appendMsg((*[]v16.LicenseChoice)(&s.Licenses), f, decLicenseChoice)
		case 12:
			err = appendMsg(&s.ExternalReferences, f, decExternalReference)
		case 13:
			err = appendMsg(&s.Services, f, decService)
		case 14:
			err = appendMsg(&s.Properties, f, decProperty)
		case 15:
			s.ReleaseNotes, err = ptrMsg(f, decReleaseNotes)
		case 17:
			err = appendStr(&s.Tags, f)
		}
		return err
	})
	return s, err
}

func decDataClassification(b []byte) (d v16.DataClassification, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			d.Flow, err = enumOf[v16.DataFlow](f, dataFlowEnum)
		case 2:
			d.Classification, err = f.str()
		}
		return err
	})
	return d, err
}

func decDependency(b []byte) (d v16.Dependency, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			d.Ref, err = f.str()
		case 2:
			var ref v16.Dependency
			if ref, err = msg(f, decDependency); err == nil {
				d.DependsOn = append(d.DependsOn, v16.BomReference(ref.Ref))
			}
		case 3:
			err = appendStr(&d.Provides, f)
		}
		return err
	})
	return d, err
}

func decComposition(b []byte) (c v16.Composition, err error) {
	c.Aggregate = v16.AggregateNotSpecified
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			c.Aggregate, err = enumOf[v16.Aggregate](f, aggregateEnum)
		case 2:
			err = appendStr(&c.Assemblies, f)
		case 3:
			err = appendStr(&c.Dependencies, f)
		case 5:
			c.BomRef, err = f.str()
		}
		return err
	})
	return c, err
}

func decVulnerability(b []byte) (v v16.Vulnerability, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			v.BomRef, err = f.str()
		case 2:
			v.ID, err = f.str()
		case 3:
			v.Source, err = ptrMsg(f, decSource)
		case 4:
			err = appendMsg(&v.References, f, decVulnerabilityReference)
		case 5:
			err = appendMsg(&v.Ratings, f, decRating)
		case 6:
			var cwes []int
			if cwes, err = f.ints(); err == nil {
				v.CWEs = append(v.CWEs, cwes...)
			}
		case 7:
			v.Description, err = f.str()
		case 8:
			v.Detail, err = f.str()
		case 9:
			v.Recommendation, err = f.str()
		case 10:
			err = appendMsg(&v.Advisories, f, decAdvisory)
		case 11:
			v.Created, err = f.timestamp()
		case 12:
			v.Published, err = f.timestamp()
		case 13:
			v.Updated, err = f.timestamp()
		case 15:
			v.Analysis, err = ptrMsg(f, decAnalysis)
		case 16:
			err = appendMsg(&v.Affects, f, decAffects)
		case 17:
			err = appendMsg(&v.Properties, f, decProperty)
		}
		return err
	})
	return v, err
}

func decVulnerabilityReference(b []byte) (r v16.VulnerabilityReference, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			r.ID, err = f.str()
		case 2:
			r.Source, err = ptrMsg(f, decSource)
		}
		return err
	})
	return r, err
}

func decRating(b []byte) (r v16.Rating, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			r.Source, err = ptrMsg(f, decSource)
		case 2:
			r.Score, err = f.doublep()
		case 3:
			r.Severity, err = enumOf[v16.Severity](f, severityEnum)
		case 4:
			r.Method, err = enumOf[v16.ScoreMethod](f, scoreMethodEnum)
		case 5:
			r.Vector, err = f.str()
		case 6:
			r.Justification, err = f.str()
		}
		return err
	})
	return r, err
}

func decAdvisory(b []byte) (a v16.Advisory, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			a.Title, err = f.str()
		case 2:
			a.URL, err = f.str()
		}
		return err
	})
	return a, err
}

func decAnalysis(b []byte) (a v16.Analysis, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			a.State, err = enumOf[v16.ImpactAnalysisState](f, impactStateEnum)
		case 2:
			a.Justification, err = enumOf[v16.ImpactAnalysisJustification](f, impactJustificationEnum)
		case 3:
			var toks []string
			if toks, err = f.enums(impactResponseEnum); err == nil {
				for _, t := range toks {
					if t != "" {
						a.Responses = append(a.Responses, v16.ImpactAnalysisResponse(t))
					}
				}
			}
		case 4:
			a.Detail, err = f.str()
		}
		return err
	})
	return a, err
}

func decAffects(b []byte) (af v16.Affects, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			af.Ref, err = f.str()
		case 2:
			err = appendMsg(&af.Versions, f, decAffectedVersion)
		}
		return err
	})
	return af, err
}

func decAffectedVersion(b []byte) (av v16.AffectedVersion, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			av.Version, err = f.str()
		case 2:
			av.Range, err = f.str()
		case 3:
			av.Status, err = enumOf[v16.AffectedStatus](f, affectedStatusEnum)
		}
		return err
	})
	return av, err
}

func decAnnotation(b []byte) (a v16.Annotation, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			a.BomRef, err = f.str()
		case 2:
			err = appendStr(&a.Subjects, f)
		case 3:
			a.Annotator, err = ptrMsg(f, decAnnotator)
		case 4:
			a.Timestamp, err = f.timestamp()
		case 5:
			a.Text, err = f.str()
		}
		return err
	})
	return a, err
}

func decAnnotator(b []byte) (an v16.Annotator, err error) {
	err = eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			an.Organization, err = ptrMsg(f, decEntity)
		case 2:
			an.Individual, err = ptrMsg(f, decContact)
		case 3:
			an.Component, err = ptrMsg(f, decComponent)
		case 4:
			an.Service, err = ptrMsg(f, decService)
		}
		return err
	})
	return an, err
}
