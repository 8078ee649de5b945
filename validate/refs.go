package validate

import (
	"fmt"

	"xdao.co/sbom/bom"
	v16 "xdao.co/sbom/bom/v16"
	"xdao.co/sbom/convert"
)

// Rule is a named referential-integrity check over the latest model.
//
// ID must be stable across versions. Apply must be deterministic and
// report violations in document order.
type Rule struct {
	ID    string
	Apply func(*v16.Bom) []string
}

// ReferenceRules are the checks CheckReferences runs, in order.
var ReferenceRules = []Rule{
	{ID: "SBOM-REF-001", Apply: duplicateRefs},
	{ID: "SBOM-REF-002", Apply: danglingDependencies},
	{ID: "SBOM-REF-003", Apply: danglingCompositions},
}

// CheckReferences reports bom-refs declared more than once and dependency
// or composition entries that point at no declared bom-ref. Dependency
// cycles are allowed. Documents of older generations are checked through
// their latest-generation projection.
func CheckReferences(doc bom.Document) []string {
	b, err := convert.ToLatest(doc)
	if err != nil {
		return []string{err.Error()}
	}
	return RunRules(b, ReferenceRules)
}

// RunRules runs every rule in order and concatenates their findings, each
// prefixed with the rule ID.
func RunRules(b *v16.Bom, rules []Rule) []string {
	var out []string
	for _, r := range rules {
		if r.Apply == nil {
			continue
		}
		for _, msg := range r.Apply(b) {
			out = append(out, r.ID+": "+msg)
		}
	}
	return out
}

func declared(b *v16.Bom) map[string]bool {
	m := map[string]bool{}
	for _, r := range b.BomRefs() {
		m[r] = true
	}
	return m
}

func duplicateRefs(b *v16.Bom) []string {
	var out []string
	count := map[string]int{}
	for _, r := range b.BomRefs() {
		count[r]++
		if count[r] == 2 {
			out = append(out, fmt.Sprintf("bom-ref %q is declared more than once", r))
		}
	}
	return out
}

func danglingDependencies(b *v16.Bom) []string {
	known := declared(b)
	var out []string
	for _, d := range b.Dependencies {
		if !known[d.Ref] {
			out = append(out, fmt.Sprintf("dependency ref %q is not a declared bom-ref", d.Ref))
		}
		for _, on := range d.DependsOn {
			if !known[string(on)] {
				out = append(out, fmt.Sprintf("dependency %q depends on undeclared bom-ref %q", d.Ref, on))
			}
		}
		for _, p := range d.Provides {
			if !known[string(p)] {
				out = append(out, fmt.Sprintf("dependency %q provides undeclared bom-ref %q", d.Ref, p))
			}
		}
	}
	return out
}

func danglingCompositions(b *v16.Bom) []string {
	known := declared(b)
	var out []string
	for i, c := range b.Compositions {
		for _, list := range [][]v16.BomReference{c.Assemblies, c.Dependencies} {
			for _, r := range list {
				if !known[string(r)] {
					out = append(out, fmt.Sprintf("composition %d references undeclared bom-ref %q", i, r))
				}
			}
		}
	}
	return out
}
