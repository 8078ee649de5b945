package bomutil

import (
	"strings"

	"github.com/samber/lo"

	v16 "xdao.co/sbom/bom/v16"
)

// InternalPrefix marks properties that must not leave the producing
// organisation.
const InternalPrefix = "internal:"

// RemoveInternalProperties drops, in place, every property whose name
// starts with InternalPrefix from the document, its metadata, every
// component and every service.
func RemoveInternalProperties(b *v16.Bom) {
	if b == nil {
		return
	}
	b.Properties = external(b.Properties)
	if b.Metadata != nil {
		b.Metadata.Properties = external(b.Metadata.Properties)
	}
	b.WalkComponents(func(c *v16.Component) { c.Properties = external(c.Properties) })
	b.WalkServices(func(s *v16.Service) { s.Properties = external(s.Properties) })
}

func external(ps []v16.Property) []v16.Property {
	if ps == nil {
		return nil
	}
	kept := lo.Filter(ps, func(p v16.Property, _ int) bool { return !strings.HasPrefix(p.Name, InternalPrefix) })
	if len(kept) == 0 {
		return nil
	}
	return kept
}
