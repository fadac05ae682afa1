package hemesh

// Ring traversals are bounded by ringCap so a corrupted or non-manifold
// structure cannot loop forever. Hitting the cap stops the walk and returns
// what was gathered so far; it is a safety valve, not an error path.

// ringCap returns the iteration bound for ring and loop walks.
func (m *Mesh) ringCap() int {
	n := m.hprops.Len()
	if n < 16 {
		n = 16
	}
	return n + 1
}

// FindHalfedge returns the halfedge from start to end, or InvalidHalfedge
// if the two vertices are not connected by an edge.
func (m *Mesh) FindHalfedge(start, end Vertex) Halfedge {
	h0 := m.HalfedgeOf(start)
	if !h0.IsValid() {
		return InvalidHalfedge
	}
	h := h0
	for i := 0; i < m.ringCap(); i++ {
		if m.ToVertex(h) == end {
			return h
		}
		h = m.CWRotated(h)
		if h == h0 {
			break
		}
	}
	return InvalidHalfedge
}

// FindEdge returns the edge connecting a and b, or InvalidEdge.
func (m *Mesh) FindEdge(a, b Vertex) Edge {
	h := m.FindHalfedge(a, b)
	if !h.IsValid() {
		return InvalidEdge
	}
	return h.Edge()
}

// Valence returns the number of edges incident to v.
func (m *Mesh) Valence(v Vertex) int { return len(m.VertexHalfedges(v)) }

// VertexHalfedges returns the outgoing halfedges of v in clockwise order.
func (m *Mesh) VertexHalfedges(v Vertex) []Halfedge {
	h0 := m.HalfedgeOf(v)
	if !h0.IsValid() {
		return nil
	}
	var out []Halfedge
	h := h0
	for i := 0; i < m.ringCap(); i++ {
		out = append(out, h)
		h = m.CWRotated(h)
		if h == h0 {
			break
		}
	}
	return out
}

// VertexNeighbors returns the 1-ring vertices of v.
func (m *Mesh) VertexNeighbors(v Vertex) []Vertex {
	hs := m.VertexHalfedges(v)
	out := make([]Vertex, len(hs))
	for i, h := range hs {
		out[i] = m.ToVertex(h)
	}
	return out
}

// VertexEdges returns the edges incident to v.
func (m *Mesh) VertexEdges(v Vertex) []Edge {
	hs := m.VertexHalfedges(v)
	out := make([]Edge, len(hs))
	for i, h := range hs {
		out[i] = h.Edge()
	}
	return out
}

// VertexFaces returns the faces incident to v.
func (m *Mesh) VertexFaces(v Vertex) []Face {
	var out []Face
	for _, h := range m.VertexHalfedges(v) {
		if f := m.FaceOf(h); f.IsValid() {
			out = append(out, f)
		}
	}
	return out
}

// FaceHalfedges returns the inner halfedge cycle of f.
func (m *Mesh) FaceHalfedges(f Face) []Halfedge {
	h0 := m.FaceHalfedge(f)
	if !h0.IsValid() {
		return nil
	}
	var out []Halfedge
	h := h0
	for i := 0; i < m.ringCap(); i++ {
		out = append(out, h)
		h = m.Next(h)
		if h == h0 {
			break
		}
	}
	return out
}

// FaceVertices returns the corner vertices of f.
func (m *Mesh) FaceVertices(f Face) []Vertex {
	hs := m.FaceHalfedges(f)
	out := make([]Vertex, len(hs))
	for i, h := range hs {
		out[i] = m.ToVertex(h)
	}
	return out
}

// adjustOutgoingHalfedge makes the outgoing halfedge of v a boundary one if
// any exists, so IsBoundaryVertex stays a constant-time query.
func (m *Mesh) adjustOutgoingHalfedge(v Vertex) {
	h0 := m.HalfedgeOf(v)
	if !h0.IsValid() {
		return
	}
	h := h0
	for i := 0; i < m.ringCap(); i++ {
		if m.IsBoundaryHalfedge(h) {
			m.setHalfedgeOf(v, h)
			return
		}
		h = m.CWRotated(h)
		if h == h0 {
			return
		}
	}
}
