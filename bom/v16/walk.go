package v16

// WalkComponents calls fn for every component reachable from b: the
// metadata component, the component forest and pedigree ancestry,
// parents before children.
func (b *Bom) WalkComponents(fn func(*Component)) {
	if b == nil {
		return
	}
	if b.Metadata != nil && b.Metadata.Component != nil {
		walkComponent(b.Metadata.Component, fn)
	}
	for i := range b.Components {
		walkComponent(&b.Components[i], fn)
	}
}

func walkComponent(c *Component, fn func(*Component)) {
	fn(c)
	for i := range c.Components {
		walkComponent(&c.Components[i], fn)
	}
	if p := c.Pedigree; p != nil {
		for _, list := range [][]Component{p.Ancestors, p.Descendants, p.Variants} {
			for i := range list {
				walkComponent(&list[i], fn)
			}
		}
	}
}

// WalkServices calls fn for every service, parents before children.
func (b *Bom) WalkServices(fn func(*Service)) {
	if b == nil {
		return
	}
	var walk func(ss []Service)
	walk = func(ss []Service) {
		for i := range ss {
			fn(&ss[i])
			walk(ss[i].Services)
		}
	}
	walk(b.Services)
}

// BomRefs returns every non-empty bom-ref declared in b in document order.
// Duplicates are kept so callers can detect them.
func (b *Bom) BomRefs() []string {
	var refs []string
	add := func(r string) {
		if r != "" {
			refs = append(refs, r)
		}
	}
	b.WalkComponents(func(c *Component) { add(c.BomRef) })
	b.WalkServices(func(s *Service) { add(s.BomRef) })
	if b == nil {
		return refs
	}
	for _, c := range b.Compositions {
		add(c.BomRef)
	}
	for _, v := range b.Vulnerabilities {
		add(v.BomRef)
	}
	for _, a := range b.Annotations {
		add(a.BomRef)
	}
	return refs
}
