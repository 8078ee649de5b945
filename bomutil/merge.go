// Package bomutil holds whole-document operations on the latest model:
// flat and hierarchical merges, component version analysis, property
// scrubbing and hash computation.
//
// Merges and analyses never modify their inputs. Their results are built
// from deep copies and share no nodes with the inputs.
package bomutil

import (
	"time"

	"github.com/mohae/deepcopy"
	"github.com/samber/lo"

	"xdao.co/sbom/bom"
	v16 "xdao.co/sbom/bom/v16"
	"xdao.co/sbom/sbomerr"
)

// now is the clock stamped into merged documents.
var now = func() time.Time { return time.Now().UTC().Truncate(time.Second) }

func clone[T any](v T) T { return deepcopy.Copy(v).(T) }

// concat joins a and b in order. Two nil lists stay nil.
func concat[T any](a, b []T) []T {
	if a == nil && b == nil {
		return nil
	}
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// Merge is FlatMerge.
func Merge(a, b *v16.Bom) *v16.Bom { return FlatMerge(a, b) }

// FlatMerge concatenates the tools, components, services, external
// references, dependencies, compositions and vulnerabilities of a and b,
// a's entries first. A nil document merges as an empty one.
func FlatMerge(a, b *v16.Bom) *v16.Bom {
	if a == nil {
		a = &v16.Bom{}
	}
	if b == nil {
		b = &v16.Bom{}
	}
	a, b = clone(a), clone(b)
	out := &v16.Bom{Version: 1}
	if tools := concat(toolsOf(a), toolsOf(b)); tools != nil {
		out.Metadata = &v16.Metadata{Tools: tools}
	}
	out.Components = concat(a.Components, b.Components)
	out.Services = concat(a.Services, b.Services)
	out.ExternalReferences = concat(a.ExternalReferences, b.ExternalReferences)
	out.Dependencies = concat(a.Dependencies, b.Dependencies)
	out.Compositions = concat(a.Compositions, b.Compositions)
	out.Vulnerabilities = concat(a.Vulnerabilities, b.Vulnerabilities)
	return out
}

func toolsOf(b *v16.Bom) []v16.Tool {
	if b.Metadata == nil {
		return nil
	}
	return b.Metadata.Tools
}

// FlatMergeAll folds FlatMerge over boms and gives the result its own
// identity: a fresh serial number, version 1 and the current time.
//
// When subject is non-nil it becomes the metadata component, each input's
// metadata component is listed as a component (unless one with the same
// bom-ref is already present), and a dependency from the subject to every
// input's metadata component is appended.
func FlatMergeAll(boms []*v16.Bom, subject *v16.Component) *v16.Bom {
	out := &v16.Bom{}
	for _, b := range boms {
		out = FlatMerge(out, b)
	}
	stamp(out)
	if subject == nil {
		return out
	}
	subj := clone(subject)
	if subj.BomRef == "" {
		subj.BomRef = refNamespace(subj)
	}
	out.Metadata.Component = subj
	dep := v16.Dependency{Ref: subj.BomRef}
	for _, b := range boms {
		if b == nil || b.Metadata == nil || b.Metadata.Component == nil {
			continue
		}
		mc := clone(b.Metadata.Component)
		if mc.BomRef == "" {
			mc.BomRef = refNamespace(mc)
		}
		listed := lo.ContainsBy(out.Components, func(c v16.Component) bool { return c.BomRef == mc.BomRef })
		if !listed {
			out.Components = append(out.Components, *mc)
		}
		dep.DependsOn = append(dep.DependsOn, v16.BomReference(mc.BomRef))
	}
	out.Dependencies = append(out.Dependencies, dep)
	return out
}

func stamp(b *v16.Bom) {
	b.SerialNumber = bom.NewSerialNumber()
	b.Version = 1
	if b.Metadata == nil {
		b.Metadata = &v16.Metadata{}
	}
	ts := now()
	b.Metadata.Timestamp = &ts
}

// HierarchicalMerge keeps each input as a subtree: every input's metadata
// component becomes a top-level component owning that input's components.
// The bom-refs of each input are prefixed with "group.name@version:" of
// its metadata component, and the dependencies, compositions and
// vulnerability affects of that input are rewritten to match.
//
// Every input must carry a metadata component.
func HierarchicalMerge(boms []*v16.Bom, subject *v16.Component) (*v16.Bom, error) {
	out := &v16.Bom{}
	stamp(out)
	if subject != nil {
		subj := clone(subject)
		if subj.BomRef == "" {
			subj.BomRef = refNamespace(subj)
		}
		out.Metadata.Component = subj
	}
	var top []v16.BomReference
	for _, in := range boms {
		if in == nil || in.Metadata == nil || in.Metadata.Component == nil {
			msg := "Required metadata (top level) component is missing from BOM."
			if in != nil && in.SerialNumber != "" {
				msg = "Required metadata (top level) component is missing from BOM " + in.SerialNumber + "."
			}
			return nil, sbomerr.New(sbomerr.KindMerge, "SBOM-MERGE-001", msg)
		}
		b := clone(in)
		owner := b.Metadata.Component
		ns := refNamespace(owner)
		out.Metadata.Tools = append(out.Metadata.Tools, b.Metadata.Tools...)

		owner.Components = append(owner.Components, b.Components...)
		namespaceComponent(ns, owner)
		if owner.BomRef == "" {
			owner.BomRef = ns
		}
		top = append(top, v16.BomReference(owner.BomRef))
		out.Components = append(out.Components, *owner)

		for i := range b.Services {
			namespaceService(ns, &b.Services[i])
		}
		out.Services = append(out.Services, b.Services...)
		out.ExternalReferences = append(out.ExternalReferences, b.ExternalReferences...)

		for i := range b.Dependencies {
			d := &b.Dependencies[i]
			d.Ref = namespaced(ns, d.Ref)
			d.DependsOn = namespaceRefs(ns, d.DependsOn)
			d.Provides = namespaceRefs(ns, d.Provides)
		}
		out.Dependencies = append(out.Dependencies, b.Dependencies...)

		for i := range b.Compositions {
			c := &b.Compositions[i]
			c.BomRef = namespaced(ns, c.BomRef)
			c.Assemblies = namespaceRefs(ns, c.Assemblies)
			c.Dependencies = namespaceRefs(ns, c.Dependencies)
		}
		out.Compositions = append(out.Compositions, b.Compositions...)

		for i := range b.Vulnerabilities {
			v := &b.Vulnerabilities[i]
			v.BomRef = namespaced(ns, v.BomRef)
			for j := range v.Affects {
				v.Affects[j].Ref = namespaced(ns, v.Affects[j].Ref)
			}
		}
		out.Vulnerabilities = append(out.Vulnerabilities, b.Vulnerabilities...)
	}
	if subject != nil {
		out.Dependencies = append(out.Dependencies, v16.Dependency{Ref: out.Metadata.Component.BomRef, DependsOn: top})
	}
	bom.Normalize(out)
	return out, nil
}

// refNamespace is "name@version", or "group.name@version" with a group.
func refNamespace(c *v16.Component) string {
	if c.Group == "" {
		return c.Name + "@" + c.Version
	}
	return c.Group + "." + c.Name + "@" + c.Version
}

func namespaced(ns, ref string) string {
	if ref == "" {
		return ""
	}
	return ns + ":" + ref
}

func namespaceRefs(ns string, refs []v16.BomReference) []v16.BomReference {
	return lo.Map(refs, func(r v16.BomReference, _ int) v16.BomReference {
		return v16.BomReference(namespaced(ns, string(r)))
	})
}

func namespaceComponent(ns string, c *v16.Component) {
	c.BomRef = namespaced(ns, c.BomRef)
	for i := range c.Components {
		namespaceComponent(ns, &c.Components[i])
	}
}

func namespaceService(ns string, s *v16.Service) {
	s.BomRef = namespaced(ns, s.BomRef)
	for i := range s.Services {
		namespaceService(ns, &s.Services[i])
	}
}
