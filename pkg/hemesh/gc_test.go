package hemesh

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/hemesh/pkg/property"
)

func TestGarbageCollectionCompacts(t *testing.T) {
	m := Octahedron()
	m.DeleteFace(Face(0))
	m.DeleteFace(Face(3))

	if !m.HasGarbage() {
		t.Fatal("deletes should leave garbage behind")
	}
	liveV, liveE, liveF := euler(m)

	m.GarbageCollection()

	if m.HasGarbage() {
		t.Error("no garbage should remain after collection")
	}
	if v, e, f := euler(m); v != liveV || e != liveE || f != liveF {
		t.Errorf("live counts changed: want %d,%d,%d got %d,%d,%d", liveV, liveE, liveF, v, e, f)
	}
	if m.VertexArraySize() != m.VertexCount() ||
		m.EdgeArraySize() != m.EdgeCount() ||
		m.FaceArraySize() != m.FaceCount() {
		t.Error("arrays should be dense after collection")
	}
	for i := 0; i < m.VertexArraySize(); i++ {
		if m.IsDeletedVertex(Vertex(i)) {
			t.Errorf("vertex %d still tombstoned", i)
		}
	}
	assertValid(t, m)
}

func TestGarbageCollectionPreservesOrderAndContent(t *testing.T) {
	m := TriangleGrid(2)

	// Tag every vertex with its original index through a user property.
	tags := property.GetOrAdd(m.VertexProps(), "v:tag", -1)
	var origPositions []r3.Vec
	m.EachVertex(func(v Vertex) {
		tags.Set(int(v), int(v))
		origPositions = append(origPositions, m.Position(v))
	})

	// Delete both faces at the corner; their shared corner vertex becomes
	// isolated and dies with them.
	m.DeleteFace(Face(0))
	m.DeleteFace(Face(1))
	var survivors []int
	var survivorPos []r3.Vec
	m.EachVertex(func(v Vertex) {
		survivors = append(survivors, tags.At(int(v)))
		survivorPos = append(survivorPos, m.Position(v))
	})

	m.GarbageCollection()

	if m.VertexCount() != len(survivors) {
		t.Fatalf("VertexCount() = %d, want %d", m.VertexCount(), len(survivors))
	}
	for i := 0; i < m.VertexCount(); i++ {
		if got, want := tags.At(i), survivors[i]; got != want {
			t.Errorf("slot %d: tag %d, want %d (relative order lost)", i, got, want)
		}
		if got, want := m.Position(Vertex(i)), survivorPos[i]; got != want {
			t.Errorf("slot %d: position %v, want %v", i, got, want)
		}
	}

	// Tags must themselves be strictly increasing: original relative order.
	for i := 1; i < len(survivors); i++ {
		if survivors[i] <= survivors[i-1] {
			t.Fatalf("survivor tags out of order: %v", survivors)
		}
	}
	assertValid(t, m)
}

func TestGarbageCollectionAfterCollapses(t *testing.T) {
	m := Octahedron()
	collapsed := 0
	for e := 0; e < m.EdgeArraySize() && collapsed < 2; e++ {
		if m.IsDeletedEdge(Edge(e)) || !m.IsCollapseOK(Edge(e)) {
			continue
		}
		if _, ok := m.Collapse(Edge(e), r3.Vec{}); ok {
			collapsed++
		}
	}
	if collapsed != 2 {
		t.Fatalf("expected 2 collapses, got %d", collapsed)
	}

	m.GarbageCollection()

	// Pairing must survive relabelling.
	m.EachEdge(func(e Edge) {
		if e.Halfedge(0).Edge() != e || e.Halfedge(1).Edge() != e {
			t.Errorf("edge %d: pairing broken after collection", e)
		}
	})
	if v, e, f := euler(m); v-e+f != 2 {
		t.Errorf("Euler characteristic %d, want 2 (closed surface)", v-e+f)
	}
	assertValid(t, m)
}

func TestGarbageCollectionNoopWhenClean(t *testing.T) {
	m := Octahedron()
	before := m.VertexArraySize()
	m.GarbageCollection()
	if m.VertexArraySize() != before {
		t.Error("collection on a clean mesh must not change anything")
	}
	assertValid(t, m)
}
