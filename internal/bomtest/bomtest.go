// Package bomtest provides BOM fixtures shared by tests.
package bomtest

import (
	"time"

	v16 "xdao.co/sbom/bom/v16"
)

func ptr[T any](v T) *T { return &v }

// Serial is the serial number carried by Full.
const Serial = "urn:uuid:3e671687-395b-41f5-a30f-a58921a69b79"

// Timestamp is the metadata timestamp carried by Full.
var Timestamp = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

// Full returns a 1.6 document that populates every part of the model the
// three wire formats share. Each call returns a fresh graph.
func Full() *v16.Bom {
	ts := Timestamp
	acme := &v16.OrganizationalEntity{
		Name:    "Acme Inc",
		URL:     []string{"https://acme.example"},
		Contact: []v16.OrganizationalContact{{Name: "Jane Doe", Email: "jane@acme.example"}},
	}
	return &v16.Bom{
		SerialNumber: Serial,
		Version:      1,
		Metadata: &v16.Metadata{
			Timestamp:  &ts,
			Lifecycles: []v16.Lifecycle{{Phase: v16.PhaseBuild}},
			Tools:      []v16.Tool{{Vendor: "acme", Name: "scanner", Version: "1.0"}},
			Authors:    []v16.OrganizationalContact{{Name: "Jane Doe"}},
			Component: &v16.Component{
				Type:    v16.ComponentTypeApplication,
				BomRef:  "app",
				Group:   "org.acme",
				Name:    "app",
				Version: "1.0",
			},
			Supplier:   acme,
			Licenses:   v16.Licenses{{Expression: "Apache-2.0 OR MIT"}},
			Properties: []v16.Property{{Name: "build:id", Value: "42"}},
		},
		Components: []v16.Component{
			{
				Type:        v16.ComponentTypeLibrary,
				BomRef:      "lib",
				Supplier:    acme,
				Publisher:   "Acme",
				Group:       "org.acme",
				Name:        "lib",
				Version:     "2.0",
				Description: "core library",
				Scope:       ptr(v16.ScopeRequired),
				Hashes: []v16.Hash{
					{Alg: v16.HashSHA256, Content: "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"},
				},
				Licenses:  v16.Licenses{{License: &v16.License{ID: "MIT", URL: "https://opensource.org/licenses/MIT"}}},
				Copyright: "Copyright Acme",
				Cpe:       "cpe:2.3:a:acme:lib:2.0:*:*:*:*:*:*:*",
				Purl:      "pkg:maven/org.acme/lib@2.0",
				Swid:      &v16.Swid{TagID: "swidgen-lib", Name: "lib", Version: "2.0", TagVersion: ptr(1), Patch: ptr(false)},
				Modified:  ptr(false),
				Pedigree: &v16.Pedigree{
					Ancestors: []v16.Component{{Type: v16.ComponentTypeLibrary, Name: "upstream", Version: "1.9"}},
					Commits:   []v16.Commit{{UID: "abc123", URL: "https://vcs.example/abc123", Author: &v16.IdentifiableAction{Name: "dev"}}},
					Patches: []v16.Patch{{
						Type:     v16.PatchBackport,
						Diff:     &v16.Diff{URL: "https://vcs.example/fix.diff"},
						Resolves: []v16.Issue{{Type: v16.IssueSecurity, ID: "CVE-2023-0002", Source: &v16.Source{Name: "NVD"}}},
					}},
					Notes: "backported fix",
				},
				ExternalReferences: []v16.ExternalReference{
					{Type: v16.ERTypeVCS, URL: "https://vcs.example/lib"},
					{Type: v16.ERTypeWebsite, URL: "https://lib.example", Comment: "home"},
				},
				Properties: []v16.Property{{Name: "internal:note", Value: "x"}},
				Components: []v16.Component{{Type: v16.ComponentTypeFile, BomRef: "lib-file", Name: "lib.jar", Version: "2.0"}},
				Evidence: &v16.Evidence{
					Copyright: []v16.Copyright{{Text: "Copyright Acme"}},
				},
			},
			{
				Type:    v16.ComponentTypeFramework,
				BomRef:  "fw",
				Name:    "fw",
				Version: "3.1",
			},
		},
		Services: []v16.Service{{
			BomRef:         "svc",
			Provider:       acme,
			Name:           "api",
			Version:        "1",
			Endpoints:      []string{"https://api.example.com"},
			Authenticated:  ptr(true),
			XTrustBoundary: ptr(false),
			Data:           []v16.DataClassification{{Flow: v16.DataFlowInbound, Classification: "PII"}},
		}},
		ExternalReferences: []v16.ExternalReference{{Type: v16.ERTypeBOM, URL: "https://bom.example/parent.json"}},
		Dependencies: []v16.Dependency{
			{Ref: "app", DependsOn: []v16.BomReference{"lib", "fw"}},
			{Ref: "lib"},
		},
		Compositions: []v16.Composition{{Aggregate: v16.AggregateComplete, Assemblies: []v16.BomReference{"app"}}},
		Vulnerabilities: []v16.Vulnerability{{
			BomRef: "vuln",
			ID:     "CVE-2024-0001",
			Source: &v16.Source{Name: "NVD", URL: "https://nvd.nist.gov/vuln/detail/CVE-2024-0001"},
			Ratings: []v16.Rating{{
				Score:    ptr(9.8),
				Severity: v16.SeverityCritical,
				Method:   v16.ScoreMethodCVSSv31,
				Vector:   "AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H",
			}},
			CWEs:        []int{79, 89},
			Description: "remote code execution",
			Published:   &ts,
			Analysis: &v16.Analysis{
				State:     v16.StateExploitable,
				Responses: []v16.ImpactAnalysisResponse{v16.ResponseUpdate},
			},
			Affects: []v16.Affects{{Ref: "lib", Versions: []v16.AffectedVersion{{Version: "2.0", Status: v16.AffectedStatusAffected}}}},
		}},
		Annotations: []v16.Annotation{{
			BomRef:    "note-1",
			Subjects:  []v16.BomReference{"lib"},
			Annotator: &v16.Annotator{Organization: &v16.OrganizationalEntity{Name: "Acme Inc"}},
			Timestamp: &ts,
			Text:      "reviewed",
		}},
		Properties: []v16.Property{{Name: "cdx:reproducible", Value: "true"}},
	}
}
