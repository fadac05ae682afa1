package hemesh

// DeleteFace tombstones f, together with any of its edges that carried no
// second face and any vertices left isolated by that.
func (m *Mesh) DeleteFace(f Face) {
	if m.fdeleted.At(int(f)) {
		return
	}
	m.fdeleted.Set(int(f), true)
	m.deletedFaces++

	// Edges of f that border no other face die with it.
	var deadEdges []Edge
	var corners []Vertex
	for _, hc := range m.FaceHalfedges(f) {
		m.setFace(hc, InvalidFace)
		if m.IsBoundaryHalfedge(hc.Opposite()) {
			deadEdges = append(deadEdges, hc.Edge())
		}
		corners = append(corners, m.ToVertex(hc))
	}

	for _, e := range deadEdges {
		h0 := e.Halfedge(0)
		h1 := e.Halfedge(1)
		v0 := m.ToVertex(h0)
		v1 := m.ToVertex(h1)

		prev0 := m.Prev(h0)
		next0 := m.Next(h0)
		prev1 := m.Prev(h1)
		next1 := m.Next(h1)

		m.setNext(prev0, next1)
		m.setNext(prev1, next0)

		m.edeleted.Set(int(e), true)
		m.deletedEdges++

		if m.HalfedgeOf(v0) == h1 {
			if next0 == h1 {
				m.vdeleted.Set(int(v0), true)
				m.deletedVertices++
				m.setHalfedgeOf(v0, InvalidHalfedge)
			} else {
				m.setHalfedgeOf(v0, next0)
			}
		}
		if m.HalfedgeOf(v1) == h0 {
			if next1 == h0 {
				m.vdeleted.Set(int(v1), true)
				m.deletedVertices++
				m.setHalfedgeOf(v1, InvalidHalfedge)
			} else {
				m.setHalfedgeOf(v1, next1)
			}
		}
	}

	for _, v := range corners {
		if !m.vdeleted.At(int(v)) {
			m.adjustOutgoingHalfedge(v)
		}
	}

	m.garbage = true
}

// DeleteEdge tombstones e by deleting its incident faces. The edge itself
// dies with the last face that referenced it.
func (m *Mesh) DeleteEdge(e Edge) {
	if m.edeleted.At(int(e)) {
		return
	}
	if f := m.FaceOf(e.Halfedge(0)); f.IsValid() {
		m.DeleteFace(f)
	}
	if f := m.FaceOf(e.Halfedge(1)); f.IsValid() {
		m.DeleteFace(f)
	}
}

// DeleteVertex tombstones v and every face incident to it.
func (m *Mesh) DeleteVertex(v Vertex) {
	if m.vdeleted.At(int(v)) {
		return
	}
	for _, f := range m.VertexFaces(v) {
		m.DeleteFace(f)
	}
	if !m.vdeleted.At(int(v)) {
		m.vdeleted.Set(int(v), true)
		m.deletedVertices++
		m.setHalfedgeOf(v, InvalidHalfedge)
		m.garbage = true
	}
}
