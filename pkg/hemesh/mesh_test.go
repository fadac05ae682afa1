package hemesh

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/hemesh/pkg/property"
)

// twoTriangles builds the square patch (0,2,1) + (0,1,3) whose diagonal
// (0,1) is the only interior edge:
//
//	3---1
//	| / |
//	0---2
func twoTriangles(t *testing.T) (*Mesh, [4]Vertex) {
	t.Helper()
	m := New()
	vs := [4]Vertex{
		m.AddVertex(r3.Vec{X: 0, Y: 0}),
		m.AddVertex(r3.Vec{X: 1, Y: 1}),
		m.AddVertex(r3.Vec{X: 1, Y: 0}),
		m.AddVertex(r3.Vec{X: 0, Y: 1}),
	}
	if _, err := m.AddFace(vs[0], vs[2], vs[1]); err != nil {
		t.Fatalf("AddFace 1: %v", err)
	}
	if _, err := m.AddFace(vs[0], vs[1], vs[3]); err != nil {
		t.Fatalf("AddFace 2: %v", err)
	}
	return m, vs
}

func assertValid(t *testing.T, m *Mesh) {
	t.Helper()
	if problems := m.Validate(); len(problems) != 0 {
		for _, p := range problems {
			t.Errorf("invariant violated: %s", p)
		}
		t.FailNow()
	}
}

func TestAddFaceCounts(t *testing.T) {
	m, _ := twoTriangles(t)
	if m.VertexCount() != 4 {
		t.Errorf("VertexCount() = %d, want 4", m.VertexCount())
	}
	if m.EdgeCount() != 5 {
		t.Errorf("EdgeCount() = %d, want 5", m.EdgeCount())
	}
	if m.FaceCount() != 2 {
		t.Errorf("FaceCount() = %d, want 2", m.FaceCount())
	}
	assertValid(t, m)
}

func TestHalfedgePairing(t *testing.T) {
	m := Octahedron()
	m.EachEdge(func(e Edge) {
		h0 := e.Halfedge(0)
		h1 := e.Halfedge(1)
		if int(h0) != 2*int(e) || int(h1) != 2*int(e)+1 {
			t.Errorf("edge %d: halfedges %d,%d, want %d,%d", e, h0, h1, 2*e, 2*e+1)
		}
		if h0.Opposite().Opposite() != h0 {
			t.Errorf("edge %d: double opposite is not identity", e)
		}
		if m.ToVertex(h0) != m.FromVertex(h1) {
			t.Errorf("edge %d: endpoints disagree between halfedges", e)
		}
	})
}

func TestBoundaryQueries(t *testing.T) {
	m, vs := twoTriangles(t)

	shared := m.FindEdge(vs[0], vs[1])
	if !shared.IsValid() {
		t.Fatal("expected edge between vertices 0 and 1")
	}
	if m.IsBoundaryEdge(shared) {
		t.Error("shared edge should be interior")
	}

	rim := m.FindEdge(vs[0], vs[2])
	if !rim.IsValid() || !m.IsBoundaryEdge(rim) {
		t.Error("rim edge should be boundary")
	}

	for _, v := range vs {
		if !m.IsBoundaryVertex(v) {
			t.Errorf("vertex %d should be on the boundary", v)
		}
	}

	closed := Octahedron()
	closed.EachVertex(func(v Vertex) {
		if closed.IsBoundaryVertex(v) {
			t.Errorf("octahedron vertex %d should be interior", v)
		}
	})
	closed.EachEdge(func(e Edge) {
		if closed.IsBoundaryEdge(e) {
			t.Errorf("octahedron edge %d should be interior", e)
		}
	})
}

func TestValence(t *testing.T) {
	m, vs := twoTriangles(t)
	wants := map[Vertex]int{vs[0]: 3, vs[1]: 3, vs[2]: 2, vs[3]: 2}
	for v, want := range wants {
		if got := m.Valence(v); got != want {
			t.Errorf("Valence(%d) = %d, want %d", v, got, want)
		}
	}

	oct := Octahedron()
	oct.EachVertex(func(v Vertex) {
		if got := oct.Valence(v); got != 4 {
			t.Errorf("octahedron Valence(%d) = %d, want 4", v, got)
		}
	})
}

func TestVertexRing(t *testing.T) {
	m, vs := twoTriangles(t)
	ring := m.VertexNeighbors(vs[0])
	seen := map[Vertex]bool{}
	for _, v := range ring {
		seen[v] = true
	}
	for _, want := range []Vertex{vs[1], vs[2], vs[3]} {
		if !seen[want] {
			t.Errorf("ring of vertex 0 misses vertex %d", want)
		}
	}
	if len(ring) != 3 {
		t.Errorf("ring size %d, want 3", len(ring))
	}
}

func TestAddFaceRejectsComplexEdge(t *testing.T) {
	m, vs := twoTriangles(t)
	before := m.FaceCount()
	// Edge (0,1) already carries faces on both sides.
	if _, err := m.AddFace(vs[0], vs[1], m.AddVertex(r3.Vec{Z: 1})); err == nil {
		t.Fatal("expected AddFace over a two-sided edge to fail")
	}
	if m.FaceCount() != before {
		t.Error("failed AddFace must not leave a face behind")
	}
}

func TestAddFaceRelinksBoundaryPatches(t *testing.T) {
	// A fan around a center vertex added in an order that forces the
	// boundary re-linking path: two opposite wings first, then the gap.
	m := New()
	c := m.AddVertex(r3.Vec{})
	var rim [4]Vertex
	for i := range rim {
		rim[i] = m.AddVertex(r3.Vec{X: float64(i + 1)})
	}
	mustAdd := func(a, b, cc Vertex) {
		t.Helper()
		if _, err := m.AddFace(a, b, cc); err != nil {
			t.Fatalf("AddFace(%d,%d,%d): %v", a, b, cc, err)
		}
	}
	mustAdd(c, rim[0], rim[1])
	mustAdd(c, rim[2], rim[3])
	mustAdd(c, rim[1], rim[2]) // closes the gap between the wings
	assertValid(t, m)
	if got := m.Valence(c); got != 4 {
		t.Errorf("Valence(center) = %d, want 4", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m, vs := twoTriangles(t)
	weights := property.GetOrAdd(m.VertexProps(), "v:weight", 0.0)
	weights.Set(int(vs[0]), 2.5)

	c := m.Clone()
	cw := property.GetOrAdd(c.VertexProps(), "v:weight", 0.0)
	if cw.At(int(vs[0])) != 2.5 {
		t.Error("clone should carry user property values")
	}

	c.SetPosition(vs[0], r3.Vec{X: 9})
	cw.Set(int(vs[0]), -1)
	if m.Position(vs[0]).X == 9 {
		t.Error("clone position writes must not affect the original")
	}
	if weights.At(int(vs[0])) != 2.5 {
		t.Error("clone property writes must not affect the original")
	}

	c.Split(c.FindEdge(vs[0], vs[1]), r3.Vec{})
	if m.VertexCount() != 4 {
		t.Error("clone mutations must not affect the original")
	}
	assertValid(t, c)
	assertValid(t, m)
}

func TestFindHalfedge(t *testing.T) {
	m, vs := twoTriangles(t)
	h := m.FindHalfedge(vs[0], vs[1])
	if !h.IsValid() {
		t.Fatal("expected halfedge from 0 to 1")
	}
	if m.FromVertex(h) != vs[0] || m.ToVertex(h) != vs[1] {
		t.Errorf("FindHalfedge returned %d->%d", m.FromVertex(h), m.ToVertex(h))
	}
	if m.FindHalfedge(vs[2], vs[3]).IsValid() {
		t.Error("vertices 2 and 3 are not connected")
	}
}
