package hemesh

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// link is a deferred next-pointer assignment collected while AddFace decides
// the new connectivity. All assignments are applied at once at the end so the
// old boundary structure stays readable during the decision phase.
type link struct {
	h, next Halfedge
}

// AddFace inserts a face over the given vertex cycle. The vertices must be
// boundary vertices and every already existing edge of the cycle must be a
// boundary halfedge in the given direction, otherwise the face would make
// the mesh non-manifold and an error is returned with the mesh unchanged.
func (m *Mesh) AddFace(vs ...Vertex) (Face, error) {
	n := len(vs)
	if n < 3 {
		return InvalidFace, ErrFaceTooSmall
	}

	halfedges := make([]Halfedge, n)
	isNew := make([]bool, n)
	needsAdjust := make([]bool, n)
	var nextCache []link

	// Topology checks. Nothing is mutated before these pass.
	for i := 0; i < n; i++ {
		ii := (i + 1) % n
		if !m.IsBoundaryVertex(vs[i]) {
			return InvalidFace, ErrComplexVertex
		}
		halfedges[i] = m.FindHalfedge(vs[i], vs[ii])
		isNew[i] = !halfedges[i].IsValid()
		if !isNew[i] && !m.IsBoundaryHalfedge(halfedges[i]) {
			return InvalidFace, ErrComplexEdge
		}
	}

	// Between two consecutive existing halfedges that are not yet linked,
	// the boundary patch in between has to be moved out of the way first.
	for i := 0; i < n; i++ {
		ii := (i + 1) % n
		if isNew[i] || isNew[ii] {
			continue
		}
		innerPrev := halfedges[i]
		innerNext := halfedges[ii]
		if m.Next(innerPrev) == innerNext {
			continue
		}
		// Find a boundary gap to re-insert the patch into.
		boundaryPrev := innerNext.Opposite()
		found := false
		for k := 0; k < m.ringCap(); k++ {
			boundaryPrev = m.Next(boundaryPrev).Opposite()
			if m.IsBoundaryHalfedge(boundaryPrev) && boundaryPrev != innerPrev {
				found = true
				break
			}
		}
		boundaryNext := m.Next(boundaryPrev)
		if !found || !m.IsBoundaryHalfedge(boundaryNext) || boundaryNext == innerNext {
			return InvalidFace, ErrRelinkFailed
		}
		patchStart := m.Next(innerPrev)
		patchEnd := m.Prev(innerNext)
		nextCache = append(nextCache,
			link{boundaryPrev, patchStart},
			link{patchEnd, boundaryNext},
			link{innerPrev, innerNext},
		)
	}

	// Create missing edges.
	for i := 0; i < n; i++ {
		if isNew[i] {
			halfedges[i] = m.newEdge(vs[i], vs[(i+1)%n])
		}
	}

	f := m.newFace()
	m.setFaceHalfedge(f, halfedges[n-1])

	// Link inner and outer halfedges. The old prev/next values are still in
	// place; all new links go through nextCache.
	for i := 0; i < n; i++ {
		ii := (i + 1) % n
		v := vs[ii]
		innerPrev := halfedges[i]
		innerNext := halfedges[ii]

		id := 0
		if isNew[i] {
			id |= 1
		}
		if isNew[ii] {
			id |= 2
		}
		if id != 0 {
			outerPrev := innerNext.Opposite()
			outerNext := innerPrev.Opposite()
			switch id {
			case 1: // innerPrev is new, innerNext is old
				boundaryPrev := m.Prev(innerNext)
				nextCache = append(nextCache, link{boundaryPrev, outerNext})
				m.setHalfedgeOf(v, outerNext)
			case 2: // innerNext is new, innerPrev is old
				boundaryNext := m.Next(innerPrev)
				nextCache = append(nextCache, link{outerPrev, boundaryNext})
				m.setHalfedgeOf(v, boundaryNext)
			case 3: // both are new
				if !m.HalfedgeOf(v).IsValid() {
					m.setHalfedgeOf(v, outerNext)
					nextCache = append(nextCache, link{outerPrev, outerNext})
				} else {
					boundaryNext := m.HalfedgeOf(v)
					boundaryPrev := m.Prev(boundaryNext)
					nextCache = append(nextCache,
						link{boundaryPrev, outerNext},
						link{outerPrev, boundaryNext},
					)
				}
			}
			nextCache = append(nextCache, link{innerPrev, innerNext})
		} else {
			needsAdjust[ii] = m.HalfedgeOf(v) == innerNext
		}

		m.setFace(halfedges[i], f)
	}

	for _, l := range nextCache {
		m.setNext(l.h, l.next)
	}

	for i := range vs {
		if needsAdjust[i] {
			m.adjustOutgoingHalfedge(vs[i])
		}
	}

	return f, nil
}

// AddTriangle inserts the triangle (a, b, c).
func (m *Mesh) AddTriangle(a, b, c Vertex) (Face, error) {
	return m.AddFace(a, b, c)
}

// FromIndexedFaces builds a mesh from a position array and triangle index
// triples, the layout mesh files and GPU buffers use.
func FromIndexedFaces(points []r3.Vec, faces [][3]int) (*Mesh, error) {
	m := New()
	vs := make([]Vertex, len(points))
	for i, p := range points {
		vs[i] = m.AddVertex(p)
	}
	for fi, f := range faces {
		for _, idx := range f {
			if idx < 0 || idx >= len(points) {
				return nil, fmt.Errorf("hemesh: face %d references vertex %d of %d", fi, idx, len(points))
			}
		}
		if _, err := m.AddFace(vs[f[0]], vs[f[1]], vs[f[2]]); err != nil {
			return nil, fmt.Errorf("hemesh: face %d: %w", fi, err)
		}
	}
	return m, nil
}
