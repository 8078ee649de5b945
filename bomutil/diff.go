package bomutil

import (
	"strings"

	"github.com/samber/lo"

	v16 "xdao.co/sbom/bom/v16"
)

// DiffItem partitions the versions of one component identity.
type DiffItem struct {
	Added     []v16.Component `json:"added,omitempty"`
	Removed   []v16.Component `json:"removed,omitempty"`
	Unchanged []v16.Component `json:"unchanged,omitempty"`
}

// AnalysisIdentifier is the identity analysis groups components by:
// "group:name", or just "name" when the group is empty.
func AnalysisIdentifier(c v16.Component) string {
	return strings.TrimPrefix(c.Group+":"+c.Name, ":")
}

func sameVersion(a, b v16.Component) bool {
	return a.Group == b.Group && a.Name == b.Name && a.Version == b.Version
}

// ComponentVersionDiff compares the top-level components of from and to.
// A component whose group, name and version appear in both is Unchanged;
// the rest of to is Added and the rest of from is Removed. An upgrade shows
// as one Added and one Removed entry under the same key.
func ComponentVersionDiff(from, to *v16.Bom) map[string]DiffItem {
	var fromList, toList []v16.Component
	if from != nil {
		fromList = clone(from).Components
	}
	if to != nil {
		toList = clone(to).Components
	}
	out := map[string]DiffItem{}
	update := func(c v16.Component, fn func(*DiffItem)) {
		id := AnalysisIdentifier(c)
		item := out[id]
		fn(&item)
		out[id] = item
	}

	remainingFrom, remainingTo := fromList, toList
	for _, fc := range fromList {
		if !lo.ContainsBy(toList, func(tc v16.Component) bool { return sameVersion(fc, tc) }) {
			continue
		}
		update(fc, func(d *DiffItem) { d.Unchanged = append(d.Unchanged, fc) })
		drop := func(c v16.Component, _ int) bool { return !sameVersion(c, fc) }
		remainingFrom = lo.Filter(remainingFrom, drop)
		remainingTo = lo.Filter(remainingTo, drop)
	}
	for _, tc := range remainingTo {
		update(tc, func(d *DiffItem) { d.Added = append(d.Added, tc) })
	}
	for _, fc := range remainingFrom {
		update(fc, func(d *DiffItem) { d.Removed = append(d.Removed, fc) })
	}
	return out
}

// MultipleComponentVersions groups the top-level components of b by
// AnalysisIdentifier and keeps the groups holding more than one distinct
// version.
func MultipleComponentVersions(b *v16.Bom) map[string][]v16.Component {
	out := map[string][]v16.Component{}
	if b == nil {
		return out
	}
	groups := lo.GroupBy(clone(b).Components, AnalysisIdentifier)
	for id, cs := range groups {
		versions := lo.Uniq(lo.Map(cs, func(c v16.Component, _ int) string { return c.Version }))
		if len(versions) > 1 {
			out[id] = cs
		}
	}
	return out
}
