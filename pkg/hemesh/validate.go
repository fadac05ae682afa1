package hemesh

import "fmt"

// Validate audits the connectivity invariants of every live element and
// returns one message per violation. A healthy mesh returns nil. The checks
// mirror what the mutators promise: opposite pairing, closed next/prev
// cycles, to-vertex consistency, and vertex rings that visit each incident
// halfedge once.
func (m *Mesh) Validate() []string {
	var problems []string
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	m.EachEdge(func(e Edge) {
		for i := 0; i < 2; i++ {
			h := e.Halfedge(i)
			if h.Opposite().Opposite() != h {
				report("edge %d: opposite of opposite of halfedge %d is not itself", e, h)
			}
			if h.Edge() != e {
				report("edge %d: halfedge %d does not map back to its edge", e, h)
			}
			n := m.Next(h)
			if !n.IsValid() {
				report("halfedge %d: missing next", h)
				continue
			}
			if m.Prev(n) != h {
				report("halfedge %d: next/prev are not mutual inverses", h)
			}
			if m.FromVertex(n) != m.ToVertex(h) {
				report("halfedge %d: next halfedge %d starts at the wrong vertex", h, n)
			}
		}
	})

	m.EachFace(func(f Face) {
		hs := m.FaceHalfedges(f)
		if len(hs) != 3 {
			report("face %d: cycle length %d, want 3", f, len(hs))
			return
		}
		for _, h := range hs {
			if m.FaceOf(h) != f {
				report("face %d: halfedge %d claims face %d", f, h, m.FaceOf(h))
			}
		}
	})

	m.EachVertex(func(v Vertex) {
		h := m.HalfedgeOf(v)
		if !h.IsValid() {
			return // isolated
		}
		if m.FromVertex(h) != v {
			report("vertex %d: outgoing halfedge %d starts at vertex %d", v, h, m.FromVertex(h))
			return
		}
		seen := map[Halfedge]bool{}
		for _, hh := range m.VertexHalfedges(v) {
			if seen[hh] {
				report("vertex %d: ring visits halfedge %d twice", v, hh)
			}
			seen[hh] = true
			if m.FromVertex(hh) != v {
				report("vertex %d: ring contains halfedge %d of vertex %d", v, hh, m.FromVertex(hh))
			}
		}
		if m.IsBoundaryVertex(v) && !m.IsBoundaryHalfedge(h) {
			report("vertex %d: boundary vertex with interior outgoing halfedge", v)
		}
	})

	return problems
}
