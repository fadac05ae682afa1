package hemesh

// GarbageCollection compacts all element arrays by removing tombstoned
// slots. Surviving elements keep their relative order and get contiguous
// indices; every connectivity reference and every user property moves with
// its element. All handles obtained before the call are invalid afterwards.
func (m *Mesh) GarbageCollection() {
	if !m.garbage {
		return
	}

	nV := m.vprops.Len()
	nE := m.eprops.Len()
	nF := m.fprops.Len()

	// Old-to-new index maps, -1 for tombstoned elements. The two halfedges
	// of an edge move together so the 2e/2e+1 pairing survives.
	vmap := make([]int, nV)
	emap := make([]int, nE)
	hmap := make([]int, 2*nE)
	fmap := make([]int, nF)

	liveV := 0
	for i := 0; i < nV; i++ {
		if m.vdeleted.At(i) {
			vmap[i] = -1
		} else {
			vmap[i] = liveV
			liveV++
		}
	}
	liveE := 0
	for i := 0; i < nE; i++ {
		if m.edeleted.At(i) {
			emap[i] = -1
			hmap[2*i] = -1
			hmap[2*i+1] = -1
		} else {
			emap[i] = liveE
			hmap[2*i] = 2 * liveE
			hmap[2*i+1] = 2*liveE + 1
			liveE++
		}
	}
	liveF := 0
	for i := 0; i < nF; i++ {
		if m.fdeleted.At(i) {
			fmap[i] = -1
		} else {
			fmap[i] = liveF
			liveF++
		}
	}

	m.vprops.Compact(vmap, liveV)
	m.eprops.Compact(emap, liveE)
	m.hprops.Compact(hmap, 2*liveE)
	m.fprops.Compact(fmap, liveF)

	// Relabel the connectivity references, now sitting at their new slots
	// but still holding old handles.
	for i := 0; i < liveV; i++ {
		m.vconn.Set(i, mapHalfedge(hmap, m.vconn.At(i)))
	}
	for i := 0; i < 2*liveE; i++ {
		c := m.hconn.At(i)
		c.face = mapFace(fmap, c.face)
		c.vertex = mapVertex(vmap, c.vertex)
		c.next = mapHalfedge(hmap, c.next)
		c.prev = mapHalfedge(hmap, c.prev)
		m.hconn.Set(i, c)
	}
	for i := 0; i < liveF; i++ {
		m.fconn.Set(i, mapHalfedge(hmap, m.fconn.At(i)))
	}

	m.deletedVertices = 0
	m.deletedEdges = 0
	m.deletedFaces = 0
	m.garbage = false
}

// The map helpers turn references to tombstoned elements into the invalid
// sentinel instead of panicking; a live element never references a dead one
// unless the structure is already corrupted.

func mapVertex(remap []int, v Vertex) Vertex {
	if !v.IsValid() || int(v) >= len(remap) || remap[v] < 0 {
		return InvalidVertex
	}
	return Vertex(remap[v])
}

func mapHalfedge(remap []int, h Halfedge) Halfedge {
	if !h.IsValid() || int(h) >= len(remap) || remap[h] < 0 {
		return InvalidHalfedge
	}
	return Halfedge(remap[h])
}

func mapFace(remap []int, f Face) Face {
	if !f.IsValid() || int(f) >= len(remap) || remap[f] < 0 {
		return InvalidFace
	}
	return Face(remap[f])
}
