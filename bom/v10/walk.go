package v10

// WalkComponents calls fn for every component reachable from b,
// parents before children.
func (b *Bom) WalkComponents(fn func(*Component)) {
	if b == nil {
		return
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
}

// BomRefs returns nil: 1.0 components carry no bom-ref.
func (b *Bom) BomRefs() []string { return nil }
