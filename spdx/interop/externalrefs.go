package interop

import (
	"strings"

	v16 "xdao.co/sbom/bom/v16"
	"xdao.co/sbom/spdx"
)

var refProps = []struct {
	category, typ, prop string
}{
	{spdx.CategorySecurity, "cpe22Type", PropExternalRefCPE22},
	{spdx.CategorySecurity, "cpe23Type", PropExternalRefCPE23},
	{spdx.CategoryPackageManager, "maven-central", PropExternalRefMavenCentral},
	{spdx.CategoryPackageManager, "npm", PropExternalRefNpm},
	{spdx.CategoryPackageManager, "nuget", PropExternalRefNuget},
	{spdx.CategoryPackageManager, "bower", PropExternalRefBower},
	{spdx.CategoryPackageManager, "purl", PropExternalRefPurl},
	{spdx.CategoryPersistentID, "swh", PropExternalRefPersistentIDSWH},
}

// packageExternalRefs rebuilds the SPDX external references recorded as
// properties and adds the component's purl and CPE when no recorded
// reference carries them already. A property value is the locator,
// optionally followed by a space and a comment.
func packageExternalRefs(c *v16.Component) []*spdx.PackageExternalReference {
	var out []*spdx.PackageExternalReference
	seen := map[string]bool{}
	for _, p := range c.Properties {
		if !strings.HasPrefix(p.Name, PropExternalRef) {
			continue
		}
		ref := &spdx.PackageExternalReference{}
		if rest, ok := strings.CutPrefix(p.Name, PropExternalRefOther+":"); ok {
			ref.Category, ref.RefType = spdx.CategoryOther, rest
		} else {
			for _, rp := range refProps {
				if rp.prop == p.Name {
					ref.Category, ref.RefType = rp.category, rp.typ
				}
			}
		}
		if ref.RefType == "" {
			continue
		}
		ref.Locator, ref.ExternalRefComment, _ = strings.Cut(p.Value, " ")
		seen[ref.Locator] = true
		out = append(out, ref)
	}
	if c.Purl != "" && !seen[c.Purl] {
		out = append(out, &spdx.PackageExternalReference{Category: spdx.CategoryPackageManager, RefType: "purl", Locator: c.Purl})
	}
	if c.Cpe != "" && !seen[c.Cpe] {
		out = append(out, &spdx.PackageExternalReference{Category: spdx.CategorySecurity, RefType: "cpe23Type", Locator: c.Cpe})
	}
	return out
}

// componentExternalRefs records refs as properties. The first purl and
// cpe23Type locators also become the component's Purl and Cpe.
func componentExternalRefs(c *v16.Component, p *props, refs []*spdx.PackageExternalReference) {
	for _, ref := range refs {
		if ref == nil {
			continue
		}
		var name string
		switch ref.Category {
		case spdx.CategoryOther:
			name = PropExternalRefOther + ":" + ref.RefType
		case spdx.CategoryPersistentID:
			name = PropExternalRefPersistentIDSWH
		default:
			for _, rp := range refProps {
				if rp.category == ref.Category && rp.typ == ref.RefType {
					name = rp.prop
				}
			}
		}
		if name == "" || ref.Locator == "" {
			continue
		}
		value := ref.Locator
		if ref.ExternalRefComment != "" {
			value += " " + ref.ExternalRefComment
		}
		p.add(name, value)
		switch {
		case name == PropExternalRefPurl && c.Purl == "":
			c.Purl = ref.Locator
		case name == PropExternalRefCPE23 && c.Cpe == "":
			c.Cpe = ref.Locator
		}
	}
}
