package xsd

import (
	"encoding/xml"
	"sort"
)

// matcher runs a content model over the names of an element's children.
//
// States are positions in names. When open is set, position len(names)+1 is
// an absorbing state meaning "the input ran out while the model could still
// continue", which turns the matcher into a prefix viability test.
type matcher struct {
	names []xml.Name
	open  bool
}

type posSet []int

func (s posSet) has(i int) bool {
	j := sort.SearchInts(s, i)
	return j < len(s) && s[j] == i
}

func union(a, b posSet) posSet {
	out := make(posSet, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case j >= len(b) || (i < len(a) && a[i] < b[j]):
			out = append(out, a[i])
			i++
		case i >= len(a) || b[j] < a[i]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

func (m *matcher) sink() int { return len(m.names) + 1 }

// step consumes one child at each position for which accept holds.
func (m *matcher) step(from posSet, accept func(xml.Name) bool) posSet {
	var out posSet
	for _, s := range from {
		switch {
		case s < len(m.names):
			if accept(m.names[s]) {
				out = union(out, posSet{s + 1})
			}
		case m.open:
			out = union(out, posSet{m.sink()})
		}
	}
	return out
}

// match returns every position reachable after p consumes a run of names
// starting at a position in from.
func (m *matcher) match(p *Particle, from posSet) posSet {
	var result posSet
	if p.Min == 0 {
		result = from
	}
	cur := from
	seen := make(map[int]bool, len(from))
	for _, s := range from {
		seen[s] = true
	}
	limit := len(m.names) + p.Min + 2
	for i := 1; len(cur) > 0 && i <= limit; i++ {
		next := m.once(p, cur)
		if i >= p.Min {
			result = union(result, next)
		}
		if p.Max != Unbounded && i >= p.Max {
			break
		}
		if i >= p.Min {
			// Past the minimum only new positions can extend the result.
			var fresh posSet
			for _, s := range next {
				if !seen[s] {
					seen[s] = true
					fresh = append(fresh, s)
				}
			}
			next = fresh
		}
		cur = next
	}
	return result
}

func (m *matcher) once(p *Particle, from posSet) posSet {
	switch p.Kind {
	case ElementParticle:
		return m.step(from, func(n xml.Name) bool { return n == p.Element.Name })
	case AnyParticle:
		return m.step(from, func(n xml.Name) bool { return p.Wildcard.Allows(n.Space) })
	case SequenceParticle:
		cur := from
		for _, c := range p.Children {
			cur = m.match(c, cur)
			if len(cur) == 0 {
				break
			}
		}
		return cur
	case ChoiceParticle:
		var out posSet
		for _, c := range p.Children {
			out = union(out, m.match(c, from))
		}
		return out
	case AllParticle:
		return m.all(p, from)
	}
	return nil
}

// all matches an xs:all group: each member at most once, in any order.
func (m *matcher) all(p *Particle, from posSet) posSet {
	type state struct {
		pos  int
		used uint64
	}
	var required uint64
	for i, c := range p.Children {
		if c.Min > 0 {
			required |= 1 << i
		}
	}
	visited := map[state]bool{}
	queue := make([]state, 0, len(from))
	for _, s := range from {
		queue = append(queue, state{pos: s})
	}
	var out posSet
	for len(queue) > 0 {
		st := queue[0]
		queue = queue[1:]
		if visited[st] {
			continue
		}
		visited[st] = true
		if st.used&required == required {
			out = union(out, posSet{st.pos})
		}
		for i, c := range p.Children {
			if st.used&(1<<i) != 0 {
				continue
			}
			one := *c
			one.Min, one.Max = 1, 1
			for _, next := range m.once(&one, posSet{st.pos}) {
				queue = append(queue, state{pos: next, used: st.used | 1<<i})
			}
		}
	}
	return out
}

// accepts reports whether the content model matches names exactly.
func accepts(p *Particle, names []xml.Name) bool {
	if p == nil {
		return len(names) == 0
	}
	m := &matcher{names: names}
	return m.match(p, posSet{0}).has(len(names))
}

// viable reports whether names is a prefix of some sequence the content
// model matches.
func viable(p *Particle, names []xml.Name) bool {
	if p == nil {
		return len(names) == 0
	}
	m := &matcher{names: names, open: true}
	end := m.match(p, posSet{0})
	return end.has(len(names)) || end.has(m.sink())
}

// firstInvalid returns the index of the first child that cannot extend a
// valid prefix, or len(names) if every prefix is viable.
func firstInvalid(p *Particle, names []xml.Name) int {
	lo, hi := 0, len(names)
	if viable(p, names) {
		return len(names)
	}
	// viable is monotone in the prefix length.
	for lo < hi {
		mid := (lo + hi) / 2
		if viable(p, names[:mid+1]) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// expected lists the declared element names that could follow prefix.
func expected(t *Type, prefix []xml.Name) []xml.Name {
	var out []xml.Name
	seq := make([]xml.Name, len(prefix)+1)
	copy(seq, prefix)
	for name := range t.declared {
		seq[len(prefix)] = name
		if viable(t.Content, seq) {
			out = append(out, name)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Local < out[j].Local })
	return out
}
