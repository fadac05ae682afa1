package hemesh

import "gonum.org/v1/gonum/spatial/r3"

// Split subdivides edge e at position p. Each face incident to e is cut into
// two triangles; a boundary edge has only one incident face and yields one
// new triangle. The new vertex is appended at the end of the vertex array
// and returned. Split is always legal on a live edge of a manifold mesh.
func (m *Mesh) Split(e Edge, p r3.Vec) Vertex {
	v := m.AddVertex(p)
	m.splitEdge(e, v)
	return v
}

// splitEdge inserts v into edge e and re-triangulates both sides.
func (m *Mesh) splitEdge(e Edge, v Vertex) {
	h0 := e.Halfedge(0) // va -> vb
	o0 := e.Halfedge(1) // vb -> va

	va := m.ToVertex(o0)

	e1 := m.newEdge(v, va)
	t1 := e1.Opposite()

	f0 := m.FaceOf(h0)
	f3 := m.FaceOf(o0)

	m.setHalfedgeOf(v, h0)
	m.setToVertex(o0, v)

	if !m.IsBoundaryHalfedge(h0) {
		h1 := m.Next(h0)
		h2 := m.Next(h1)
		v1 := m.ToVertex(h1)

		e0 := m.newEdge(v, v1)
		t0 := e0.Opposite()

		f1 := m.newFace()
		m.setFaceHalfedge(f0, h0)
		m.setFaceHalfedge(f1, h2)

		m.setFace(h1, f0)
		m.setFace(t0, f0)
		m.setFace(h0, f0)

		m.setFace(h2, f1)
		m.setFace(t1, f1)
		m.setFace(e0, f1)

		m.setNext(h0, h1)
		m.setNext(h1, t0)
		m.setNext(t0, h0)

		m.setNext(e0, h2)
		m.setNext(h2, t1)
		m.setNext(t1, e0)
	} else {
		m.setNext(m.Prev(h0), t1)
		m.setNext(t1, h0)
	}

	if !m.IsBoundaryHalfedge(o0) {
		o1 := m.Next(o0)
		o2 := m.Next(o1)
		v3 := m.ToVertex(o1)

		e2 := m.newEdge(v, v3)
		t2 := e2.Opposite()

		f2 := m.newFace()
		m.setFaceHalfedge(f2, o1)
		m.setFaceHalfedge(f3, o0)

		m.setFace(o1, f2)
		m.setFace(t2, f2)
		m.setFace(e1, f2)

		m.setFace(o2, f3)
		m.setFace(o0, f3)
		m.setFace(e2, f3)

		m.setNext(e1, o1)
		m.setNext(o1, t2)
		m.setNext(t2, e1)

		m.setNext(o0, e2)
		m.setNext(e2, o2)
		m.setNext(o2, o0)
	} else {
		m.setNext(e1, m.Next(o0))
		m.setNext(o0, e1)
		m.setHalfedgeOf(v, e1)
	}

	if m.HalfedgeOf(va) == h0 {
		m.setHalfedgeOf(va, t1)
	}
}

// IsCollapseOK checks the link condition for contracting edge e: the 1-ring
// neighborhoods of the two endpoints may only intersect in the vertices
// opposite the edge. A violating collapse would create a non-manifold vertex
// or a duplicate edge.
func (m *Mesh) IsCollapseOK(e Edge) bool {
	return m.isCollapseOKHalfedge(e.Halfedge(0))
}

func (m *Mesh) isCollapseOKHalfedge(v0v1 Halfedge) bool {
	v1v0 := v0v1.Opposite()
	v0 := m.ToVertex(v1v0)
	v1 := m.ToVertex(v0v1)

	vl := InvalidVertex
	vr := InvalidVertex

	// The vertices vl and vr opposite the edge must form proper triangles:
	// the wing edges of a wing face must not both be boundary edges.
	if !m.IsBoundaryHalfedge(v0v1) {
		h1 := m.Next(v0v1)
		h2 := m.Next(h1)
		vl = m.ToVertex(h1)
		if m.IsBoundaryHalfedge(h1.Opposite()) && m.IsBoundaryHalfedge(h2.Opposite()) {
			return false
		}
	}
	if !m.IsBoundaryHalfedge(v1v0) {
		h1 := m.Next(v1v0)
		h2 := m.Next(h1)
		vr = m.ToVertex(h1)
		if m.IsBoundaryHalfedge(h1.Opposite()) && m.IsBoundaryHalfedge(h2.Opposite()) {
			return false
		}
	}

	// Equal (or both missing) opposite vertices mean a degenerate sheet.
	if vl == vr {
		return false
	}

	// An interior edge between two boundary vertices would pinch the
	// boundary into a non-manifold vertex.
	if m.IsBoundaryVertex(v0) && m.IsBoundaryVertex(v1) &&
		!m.IsBoundaryHalfedge(v0v1) && !m.IsBoundaryHalfedge(v1v0) {
		return false
	}

	// Link condition: no common neighbor besides vl and vr.
	for _, vv := range m.VertexNeighbors(v0) {
		if vv != v1 && vv != vl && vv != vr {
			if m.FindHalfedge(vv, v1).IsValid() {
				return false
			}
		}
	}
	return true
}

// Collapse contracts edge e into a single vertex placed at p. It returns the
// surviving vertex and true, or InvalidVertex and false if the link
// condition fails, in which case the mesh is left unchanged. The deleted
// endpoint, the edge, and the incident faces are tombstoned until the next
// GarbageCollection.
func (m *Mesh) Collapse(e Edge, p r3.Vec) (Vertex, bool) {
	h := e.Halfedge(0)
	if !m.isCollapseOKHalfedge(h) {
		return InvalidVertex, false
	}
	survivor := m.ToVertex(h)
	m.collapseHalfedge(h)
	m.SetPosition(survivor, p)
	return survivor, true
}

// collapseHalfedge removes the edge of h0, merging its from-vertex into its
// to-vertex, then collapses the two degenerate loops left behind.
func (m *Mesh) collapseHalfedge(h0 Halfedge) {
	h1 := m.Prev(h0)
	o0 := h0.Opposite()
	o1 := m.Next(o0)

	m.removeEdge(h0)

	if m.Next(m.Next(h1)) == h1 {
		m.removeLoop(h1)
	}
	if m.Next(m.Next(o1)) == o1 {
		m.removeLoop(o1)
	}
}

// removeEdge drops the edge of h, retargeting every halfedge that pointed to
// the from-vertex onto the to-vertex.
func (m *Mesh) removeEdge(h Halfedge) {
	hn := m.Next(h)
	hp := m.Prev(h)
	o := h.Opposite()
	on := m.Next(o)
	op := m.Prev(o)
	fh := m.FaceOf(h)
	fo := m.FaceOf(o)
	vh := m.ToVertex(h)
	vo := m.ToVertex(o)

	// Retarget the incoming halfedges of vo. Gather first, the walk must not
	// observe its own mutations.
	for _, out := range m.VertexHalfedges(vo) {
		m.setToVertex(out.Opposite(), vh)
	}

	m.setNext(hp, hn)
	m.setNext(op, on)

	if fh.IsValid() {
		m.setFaceHalfedge(fh, hn)
	}
	if fo.IsValid() {
		m.setFaceHalfedge(fo, on)
	}

	if m.HalfedgeOf(vh) == o {
		m.setHalfedgeOf(vh, hn)
	}
	m.adjustOutgoingHalfedge(vh)
	m.setHalfedgeOf(vo, InvalidHalfedge)

	m.vdeleted.Set(int(vo), true)
	m.deletedVertices++
	m.edeleted.Set(int(h.Edge()), true)
	m.deletedEdges++
	m.garbage = true
}

// removeLoop collapses the two-halfedge loop of h into a single edge,
// deleting the enclosed face.
func (m *Mesh) removeLoop(h Halfedge) {
	h0 := h
	h1 := m.Next(h0)
	o0 := h0.Opposite()
	o1 := h1.Opposite()
	v0 := m.ToVertex(h0)
	v1 := m.ToVertex(h1)
	fh := m.FaceOf(h0)
	fo := m.FaceOf(o0)

	m.setNext(h1, m.Next(o0))
	m.setNext(m.Prev(o0), h1)

	m.setFace(h1, fo)

	m.setHalfedgeOf(v0, h1)
	m.adjustOutgoingHalfedge(v0)
	m.setHalfedgeOf(v1, o1)
	m.adjustOutgoingHalfedge(v1)

	if fo.IsValid() {
		m.setFaceHalfedge(fo, h1)
	}

	if fh.IsValid() {
		m.fdeleted.Set(int(fh), true)
		m.deletedFaces++
	}
	m.edeleted.Set(int(h0.Edge()), true)
	m.deletedEdges++
	m.garbage = true
}

// IsFlipOK checks whether edge e can be flipped: it must be interior and the
// opposite vertices of its two triangles must not already be connected.
func (m *Mesh) IsFlipOK(e Edge) bool {
	if m.IsBoundaryEdge(e) {
		return false
	}
	h0 := e.Halfedge(0)
	h1 := e.Halfedge(1)
	v0 := m.ToVertex(m.Next(h0))
	v1 := m.ToVertex(m.Next(h1))
	if v0 == v1 {
		return false
	}
	return !m.FindHalfedge(v0, v1).IsValid()
}

// Flip swaps the diagonal of the two triangles sharing interior edge e. It
// returns false without mutation if the flip precondition is violated.
func (m *Mesh) Flip(e Edge) bool {
	if !m.IsFlipOK(e) {
		return false
	}

	a0 := e.Halfedge(0)
	b0 := e.Halfedge(1)

	a1 := m.Next(a0)
	a2 := m.Next(a1)
	b1 := m.Next(b0)
	b2 := m.Next(b1)

	va0 := m.ToVertex(a0)
	va1 := m.ToVertex(a1)
	vb0 := m.ToVertex(b0)
	vb1 := m.ToVertex(b1)

	fa := m.FaceOf(a0)
	fb := m.FaceOf(b0)

	m.setToVertex(a0, va1)
	m.setToVertex(b0, vb1)

	m.setNext(a0, a2)
	m.setNext(a2, b1)
	m.setNext(b1, a0)

	m.setNext(b0, b2)
	m.setNext(b2, a1)
	m.setNext(a1, b0)

	m.setFace(a1, fb)
	m.setFace(b1, fa)

	m.setFaceHalfedge(fa, a0)
	m.setFaceHalfedge(fb, b0)

	if m.HalfedgeOf(va0) == b0 {
		m.setHalfedgeOf(va0, a1)
	}
	if m.HalfedgeOf(vb0) == a0 {
		m.setHalfedgeOf(vb0, b1)
	}
	return true
}
