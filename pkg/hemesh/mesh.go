// Package hemesh implements an indexed halfedge data structure for editable
// manifold triangle meshes. Connectivity and all user attributes live in
// per-element property registries; deleting an element only marks a
// tombstone flag, and GarbageCollection compacts the arrays afterwards.
package hemesh

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/hemesh/pkg/property"
)

// Topology errors reported by AddFace.
var (
	ErrComplexVertex = errors.New("hemesh: complex vertex, face would make vertex non-manifold")
	ErrComplexEdge   = errors.New("hemesh: complex edge, halfedge already has a face")
	ErrRelinkFailed  = errors.New("hemesh: boundary patch re-linking failed")
	ErrFaceTooSmall  = errors.New("hemesh: face needs at least three vertices")
)

// halfedgeConn is the connectivity record of one halfedge.
type halfedgeConn struct {
	face   Face
	vertex Vertex // vertex the halfedge points to
	next   Halfedge
	prev   Halfedge
}

// Mesh is an editable manifold triangle mesh. It is a single-writer data
// structure: callers must serialize mutating calls and may only run queries
// concurrently with other queries.
type Mesh struct {
	vprops property.Registry
	hprops property.Registry
	eprops property.Registry
	fprops property.Registry

	vconn  *property.Storage[Halfedge]     // outgoing halfedge per vertex
	hconn  *property.Storage[halfedgeConn] // connectivity per halfedge
	fconn  *property.Storage[Halfedge]     // one halfedge per face
	points *property.Storage[r3.Vec]

	vdeleted *property.Storage[bool]
	edeleted *property.Storage[bool]
	fdeleted *property.Storage[bool]

	deletedVertices int
	deletedEdges    int
	deletedFaces    int
	garbage         bool
}

// New returns an empty mesh.
func New() *Mesh {
	m := &Mesh{}
	m.bind()
	return m
}

// bind resolves the mandatory connectivity storages. GetOrAdd returns the
// existing column when called again, so bind is also used after Clone.
func (m *Mesh) bind() {
	m.vconn = property.GetOrAdd(&m.vprops, "v:halfedge", InvalidHalfedge)
	m.hconn = property.GetOrAdd(&m.hprops, "h:connectivity", halfedgeConn{
		face: InvalidFace, vertex: InvalidVertex,
		next: InvalidHalfedge, prev: InvalidHalfedge,
	})
	m.fconn = property.GetOrAdd(&m.fprops, "f:halfedge", InvalidHalfedge)
	m.points = property.GetOrAdd(&m.vprops, "v:point", r3.Vec{})
	m.vdeleted = property.GetOrAdd(&m.vprops, "v:deleted", false)
	m.edeleted = property.GetOrAdd(&m.eprops, "e:deleted", false)
	m.fdeleted = property.GetOrAdd(&m.fprops, "f:deleted", false)
}

// Clone returns a deep copy of the mesh, including all user properties.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		vprops:          m.vprops.Clone(),
		hprops:          m.hprops.Clone(),
		eprops:          m.eprops.Clone(),
		fprops:          m.fprops.Clone(),
		deletedVertices: m.deletedVertices,
		deletedEdges:    m.deletedEdges,
		deletedFaces:    m.deletedFaces,
		garbage:         m.garbage,
	}
	c.bind()
	return c
}

// VertexProps returns the per-vertex property registry.
func (m *Mesh) VertexProps() *property.Registry { return &m.vprops }

// HalfedgeProps returns the per-halfedge property registry.
func (m *Mesh) HalfedgeProps() *property.Registry { return &m.hprops }

// EdgeProps returns the per-edge property registry.
func (m *Mesh) EdgeProps() *property.Registry { return &m.eprops }

// FaceProps returns the per-face property registry.
func (m *Mesh) FaceProps() *property.Registry { return &m.fprops }

// Array sizes including tombstoned elements. Handles index these ranges.

// VertexArraySize returns the vertex array size including tombstones.
func (m *Mesh) VertexArraySize() int { return m.vprops.Len() }

// EdgeArraySize returns the edge array size including tombstones.
func (m *Mesh) EdgeArraySize() int { return m.eprops.Len() }

// HalfedgeArraySize returns the halfedge array size including tombstones.
func (m *Mesh) HalfedgeArraySize() int { return m.hprops.Len() }

// FaceArraySize returns the face array size including tombstones.
func (m *Mesh) FaceArraySize() int { return m.fprops.Len() }

// VertexCount returns the number of live vertices.
func (m *Mesh) VertexCount() int { return m.vprops.Len() - m.deletedVertices }

// EdgeCount returns the number of live edges.
func (m *Mesh) EdgeCount() int { return m.eprops.Len() - m.deletedEdges }

// HalfedgeCount returns the number of live halfedges.
func (m *Mesh) HalfedgeCount() int { return 2 * m.EdgeCount() }

// FaceCount returns the number of live faces.
func (m *Mesh) FaceCount() int { return m.fprops.Len() - m.deletedFaces }

// HasGarbage reports whether any element is tombstoned.
func (m *Mesh) HasGarbage() bool { return m.garbage }

// IsDeletedVertex reports whether v is tombstoned.
func (m *Mesh) IsDeletedVertex(v Vertex) bool { return m.vdeleted.At(int(v)) }

// IsDeletedEdge reports whether e is tombstoned.
func (m *Mesh) IsDeletedEdge(e Edge) bool { return m.edeleted.At(int(e)) }

// IsDeletedFace reports whether f is tombstoned.
func (m *Mesh) IsDeletedFace(f Face) bool { return m.fdeleted.At(int(f)) }

// Position returns the position of v.
func (m *Mesh) Position(v Vertex) r3.Vec { return m.points.At(int(v)) }

// SetPosition moves v to p.
func (m *Mesh) SetPosition(v Vertex, p r3.Vec) { m.points.Set(int(v), p) }

// AddVertex appends a new vertex at p and returns its handle.
func (m *Mesh) AddVertex(p r3.Vec) Vertex {
	m.vprops.Resize(m.vprops.Len() + 1)
	v := Vertex(m.vprops.Len() - 1)
	m.points.Set(int(v), p)
	return v
}

// newEdge appends an edge from start to end and returns its first halfedge,
// the one pointing to end.
func (m *Mesh) newEdge(start, end Vertex) Halfedge {
	m.eprops.Resize(m.eprops.Len() + 1)
	m.hprops.Resize(m.hprops.Len() + 2)
	e := Edge(m.eprops.Len() - 1)
	h := e.Halfedge(0)
	m.setToVertex(h, end)
	m.setToVertex(h.Opposite(), start)
	return h
}

// newFace appends a face and returns its handle.
func (m *Mesh) newFace() Face {
	m.fprops.Resize(m.fprops.Len() + 1)
	return Face(m.fprops.Len() - 1)
}

// ToVertex returns the vertex h points to.
func (m *Mesh) ToVertex(h Halfedge) Vertex { return m.hconn.At(int(h)).vertex }

// FromVertex returns the vertex h starts at.
func (m *Mesh) FromVertex(h Halfedge) Vertex { return m.hconn.At(int(h.Opposite())).vertex }

// Next returns the next halfedge within the same face or boundary loop.
func (m *Mesh) Next(h Halfedge) Halfedge { return m.hconn.At(int(h)).next }

// Prev returns the previous halfedge within the same face or boundary loop.
func (m *Mesh) Prev(h Halfedge) Halfedge { return m.hconn.At(int(h)).prev }

// FaceOf returns the face h borders, or InvalidFace on a boundary halfedge.
func (m *Mesh) FaceOf(h Halfedge) Face { return m.hconn.At(int(h)).face }

// HalfedgeOf returns an outgoing halfedge of v, a boundary one if v is a
// boundary vertex, or InvalidHalfedge for an isolated vertex.
func (m *Mesh) HalfedgeOf(v Vertex) Halfedge { return m.vconn.At(int(v)) }

// FaceHalfedge returns one halfedge of the face's inner cycle.
func (m *Mesh) FaceHalfedge(f Face) Halfedge { return m.fconn.At(int(f)) }

func (m *Mesh) setToVertex(h Halfedge, v Vertex) {
	c := m.hconn.At(int(h))
	c.vertex = v
	m.hconn.Set(int(h), c)
}

func (m *Mesh) setFace(h Halfedge, f Face) {
	c := m.hconn.At(int(h))
	c.face = f
	m.hconn.Set(int(h), c)
}

// setNext links h before n and keeps the prev pointers mutual.
func (m *Mesh) setNext(h, n Halfedge) {
	c := m.hconn.At(int(h))
	c.next = n
	m.hconn.Set(int(h), c)
	c = m.hconn.At(int(n))
	c.prev = h
	m.hconn.Set(int(n), c)
}

func (m *Mesh) setHalfedgeOf(v Vertex, h Halfedge) { m.vconn.Set(int(v), h) }

func (m *Mesh) setFaceHalfedge(f Face, h Halfedge) { m.fconn.Set(int(f), h) }

// CWRotated returns the next outgoing halfedge around the from-vertex in
// clockwise order.
func (m *Mesh) CWRotated(h Halfedge) Halfedge { return m.Next(h.Opposite()) }

// CCWRotated returns the next outgoing halfedge around the from-vertex in
// counterclockwise order.
func (m *Mesh) CCWRotated(h Halfedge) Halfedge { return m.Prev(h).Opposite() }

// IsBoundaryHalfedge reports whether h lies on a boundary loop.
func (m *Mesh) IsBoundaryHalfedge(h Halfedge) bool { return !m.FaceOf(h).IsValid() }

// IsBoundaryEdge reports whether either halfedge of e is a boundary one.
func (m *Mesh) IsBoundaryEdge(e Edge) bool {
	return m.IsBoundaryHalfedge(e.Halfedge(0)) || m.IsBoundaryHalfedge(e.Halfedge(1))
}

// IsBoundaryVertex reports whether v lies on a boundary. Relies on the
// outgoing halfedge of a boundary vertex being a boundary halfedge.
func (m *Mesh) IsBoundaryVertex(v Vertex) bool {
	h := m.HalfedgeOf(v)
	return !(h.IsValid() && m.FaceOf(h).IsValid())
}

// IsIsolated reports whether v has no incident edges.
func (m *Mesh) IsIsolated(v Vertex) bool { return !m.HalfedgeOf(v).IsValid() }

// EachVertex calls fn for every live vertex.
func (m *Mesh) EachVertex(fn func(Vertex)) {
	for i := 0; i < m.vprops.Len(); i++ {
		if !m.vdeleted.At(i) {
			fn(Vertex(i))
		}
	}
}

// EachEdge calls fn for every live edge.
func (m *Mesh) EachEdge(fn func(Edge)) {
	for i := 0; i < m.eprops.Len(); i++ {
		if !m.edeleted.At(i) {
			fn(Edge(i))
		}
	}
}

// EachFace calls fn for every live face.
func (m *Mesh) EachFace(fn func(Face)) {
	for i := 0; i < m.fprops.Len(); i++ {
		if !m.fdeleted.At(i) {
			fn(Face(i))
		}
	}
}
