package bomutil

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"xdao.co/sbom/bom"
	v16 "xdao.co/sbom/bom/v16"
	"xdao.co/sbom/internal/bomtest"
	"xdao.co/sbom/sbomerr"
)

func lib(name, version string) v16.Component {
	return v16.Component{Type: v16.ComponentTypeLibrary, Name: name, Version: version}
}

func withComponents(cs ...v16.Component) *v16.Bom {
	return &v16.Bom{Version: 1, Components: cs}
}

func names(cs []v16.Component) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name + "@" + c.Version
	}
	return out
}

func TestFlatMergeConcatenatesInOrder(t *testing.T) {
	a := withComponents(lib("a", "1"))
	a.Metadata = &v16.Metadata{Tools: []v16.Tool{{Name: "t1"}}}
	b := withComponents(lib("b", "1"))
	b.Dependencies = []v16.Dependency{{Ref: "b"}}

	out := Merge(a, b)
	require.Equal(t, []string{"a@1", "b@1"}, names(out.Components))
	require.Len(t, out.Metadata.Tools, 1)
	require.Len(t, out.Dependencies, 1)
	require.Nil(t, out.Services)
	require.Nil(t, out.Vulnerabilities)

	out.Components[0].Name = "changed"
	require.Equal(t, "a", a.Components[0].Name, "merge result shares nodes with its input")
}

func TestFlatMergeNilInputs(t *testing.T) {
	out := FlatMerge(nil, nil)
	require.NotNil(t, out)
	require.Nil(t, out.Components)
	require.Nil(t, out.Metadata)

	out = FlatMerge(nil, withComponents(lib("b", "1")))
	require.Equal(t, []string{"b@1"}, names(out.Components))
}

func TestFlatMergeAllWithSubject(t *testing.T) {
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	defer func(f func() time.Time) { now = f }(now)
	now = func() time.Time { return fixed }

	a := withComponents(lib("x", "1"))
	a.Metadata = &v16.Metadata{Component: &v16.Component{Type: v16.ComponentTypeApplication, BomRef: "a", Name: "a", Version: "1"}}
	b := withComponents(lib("y", "1"))
	b.Metadata = &v16.Metadata{Component: &v16.Component{Type: v16.ComponentTypeApplication, Name: "b", Version: "2"}}

	out := FlatMergeAll([]*v16.Bom{a, b}, &v16.Component{Type: v16.ComponentTypeApplication, Group: "acme", Name: "suite", Version: "3"})
	require.True(t, bom.ValidSerialNumber(out.SerialNumber))
	require.Equal(t, 1, out.Version)
	require.Equal(t, fixed, *out.Metadata.Timestamp)
	require.Equal(t, "acme.suite@3", out.Metadata.Component.BomRef)
	require.Equal(t, []string{"x@1", "y@1", "a@1", "b@2"}, names(out.Components))

	last := out.Dependencies[len(out.Dependencies)-1]
	require.Equal(t, "acme.suite@3", last.Ref)
	require.Equal(t, []v16.BomReference{"a", "b@2"}, last.DependsOn)
}

func TestFlatMergeAllWithoutSubject(t *testing.T) {
	out := FlatMergeAll([]*v16.Bom{withComponents(lib("x", "1")), withComponents(lib("y", "1"))}, nil)
	require.Equal(t, []string{"x@1", "y@1"}, names(out.Components))
	require.Nil(t, out.Metadata.Component)
	require.Nil(t, out.Dependencies)
}

func hierarchicalInput(name string) *v16.Bom {
	b := withComponents(v16.Component{Type: v16.ComponentTypeLibrary, BomRef: "x", Name: "x", Version: "1"})
	b.Metadata = &v16.Metadata{
		Tools:     []v16.Tool{{Name: "scanner-" + name}},
		Component: &v16.Component{Type: v16.ComponentTypeApplication, BomRef: name, Name: name, Version: "1"},
	}
	b.Services = []v16.Service{{BomRef: "svc", Name: "svc"}}
	b.Dependencies = []v16.Dependency{{Ref: name, DependsOn: []v16.BomReference{"x"}}}
	b.Compositions = []v16.Composition{{Aggregate: v16.AggregateComplete, Assemblies: []v16.BomReference{v16.BomReference(name)}}}
	b.Vulnerabilities = []v16.Vulnerability{{BomRef: "v", ID: "CVE-1", Affects: []v16.Affects{{Ref: "x"}}}}
	return b
}

func TestHierarchicalMergeNamespacesRefs(t *testing.T) {
	a, b := hierarchicalInput("a"), hierarchicalInput("b")
	out, err := HierarchicalMerge([]*v16.Bom{a, b}, &v16.Component{Type: v16.ComponentTypeApplication, Name: "suite", Version: "2"})
	require.NoError(t, err)

	require.Len(t, out.Components, 2)
	require.Equal(t, "a@1:a", out.Components[0].BomRef)
	require.Equal(t, "a@1:x", out.Components[0].Components[0].BomRef)
	require.Equal(t, "b@1:b", out.Components[1].BomRef)
	require.Equal(t, "b@1:x", out.Components[1].Components[0].BomRef)

	require.Equal(t, []string{"a@1:svc", "b@1:svc"}, []string{out.Services[0].BomRef, out.Services[1].BomRef})
	require.Equal(t, "a@1:a", out.Dependencies[0].Ref)
	require.Equal(t, []v16.BomReference{"a@1:x"}, out.Dependencies[0].DependsOn)
	require.Equal(t, []v16.BomReference{"b@1:b"}, out.Compositions[1].Assemblies)
	require.Equal(t, "b@1:v", out.Vulnerabilities[1].BomRef)
	require.Equal(t, "b@1:x", out.Vulnerabilities[1].Affects[0].Ref)
	require.Len(t, out.Metadata.Tools, 2)

	last := out.Dependencies[len(out.Dependencies)-1]
	require.Equal(t, "suite@2", last.Ref)
	require.Equal(t, []v16.BomReference{"a@1:a", "b@1:b"}, last.DependsOn)

	require.Equal(t, "a", a.Metadata.Component.BomRef, "input was modified")
	require.Nil(t, a.Metadata.Component.Components, "input was modified")
}

func TestHierarchicalMergeRequiresMetadataComponent(t *testing.T) {
	missing := withComponents(lib("x", "1"))
	missing.SerialNumber = bomtest.Serial
	_, err := HierarchicalMerge([]*v16.Bom{hierarchicalInput("a"), missing}, nil)
	require.Error(t, err)
	require.True(t, sbomerr.IsKind(err, sbomerr.KindMerge))
	require.Contains(t, err.Error(), "Required metadata (top level) component is missing from BOM "+bomtest.Serial+".")

	_, err = HierarchicalMerge([]*v16.Bom{withComponents()}, nil)
	require.Contains(t, err.Error(), "Required metadata (top level) component is missing from BOM.")
}

func TestComponentVersionDiff(t *testing.T) {
	cases := []struct {
		name string
		from *v16.Bom
		to   *v16.Bom
		want DiffItem
	}{
		{"removed", withComponents(lib("a", "1")), withComponents(), DiffItem{Removed: []v16.Component{lib("a", "1")}}},
		{"added", withComponents(), withComponents(lib("a", "1")), DiffItem{Added: []v16.Component{lib("a", "1")}}},
		{"unchanged", withComponents(lib("a", "1")), withComponents(lib("a", "1")), DiffItem{Unchanged: []v16.Component{lib("a", "1")}}},
		{"upgraded", withComponents(lib("a", "1")), withComponents(lib("a", "2")), DiffItem{Added: []v16.Component{lib("a", "2")}, Removed: []v16.Component{lib("a", "1")}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComponentVersionDiff(tc.from, tc.to)
			require.Equal(t, map[string]DiffItem{"a": tc.want}, got)
		})
	}
}

func TestComponentVersionDiffKeysByGroup(t *testing.T) {
	c := lib("a", "1")
	c.Group = "org"
	got := ComponentVersionDiff(withComponents(c), withComponents(lib("a", "1")))
	require.Contains(t, got, "org:a")
	require.Contains(t, got, "a")
	require.Len(t, got["org:a"].Removed, 1)
	require.Len(t, got["a"].Added, 1)
}

func TestMultipleComponentVersions(t *testing.T) {
	got := MultipleComponentVersions(withComponents(lib("a", "1"), lib("b", "1"), lib("a", "2"), lib("b", "1")))
	require.Equal(t, map[string][]v16.Component{"a": {lib("a", "1"), lib("a", "2")}}, got)

	require.Empty(t, MultipleComponentVersions(withComponents(lib("a", "1"))))
	require.Empty(t, MultipleComponentVersions(nil))
}

func TestRemoveInternalProperties(t *testing.T) {
	b := bomtest.Full()
	b.Properties = []v16.Property{{Name: "internal:secret"}, {Name: "public", Value: "1"}}
	b.Metadata.Properties = append(b.Metadata.Properties, v16.Property{Name: "internal:build-host"})
	b.Services[0].Properties = []v16.Property{{Name: "internal:owner"}}

	RemoveInternalProperties(b)

	require.Equal(t, []v16.Property{{Name: "public", Value: "1"}}, b.Properties)
	require.Equal(t, []v16.Property{{Name: "build:id", Value: "42"}}, b.Metadata.Properties)
	require.Nil(t, b.Services[0].Properties)
	b.WalkComponents(func(c *v16.Component) {
		for _, p := range c.Properties {
			require.False(t, strings.HasPrefix(p.Name, InternalPrefix), "component %s kept %s", c.Name, p.Name)
		}
	})
}

func TestComputeHashes(t *testing.T) {
	hs, err := ComputeHashes(strings.NewReader("abc"), v16.HashMD5, v16.HashSHA256, v16.HashSHA3_256, v16.HashBLAKE2b512, v16.HashBLAKE3)
	require.NoError(t, err)
	require.Equal(t, []v16.Hash{
		{Alg: v16.HashMD5, Content: "900150983cd24fb0d6963f7d28e17f72"},
		{Alg: v16.HashSHA256, Content: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{Alg: v16.HashSHA3_256, Content: "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"},
	}, hs[:3])
	require.Len(t, hs[3].Content, 128)
	require.Len(t, hs[4].Content, 64)

	hs, err = ComputeHashes(strings.NewReader("abc"))
	require.NoError(t, err)
	require.Equal(t, v16.HashSHA256, hs[0].Alg)

	_, err = ComputeHashes(strings.NewReader("abc"), "MD4")
	require.True(t, sbomerr.IsKind(err, sbomerr.KindUnsupported))
}
