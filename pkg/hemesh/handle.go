package hemesh

// Handles are indices into the mesh's element arrays. A handle names a
// position, not an identity: it stays valid only until the next call to
// GarbageCollection, which relabels all surviving elements.

// Vertex is a handle to a mesh vertex.
type Vertex int

// Halfedge is a handle to a directed halfedge.
type Halfedge int

// Edge is a handle to an undirected edge.
type Edge int

// Face is a handle to a triangle face.
type Face int

// Sentinel handles marking "no element".
const (
	InvalidVertex   Vertex   = -1
	InvalidHalfedge Halfedge = -1
	InvalidEdge     Edge     = -1
	InvalidFace     Face     = -1
)

// IsValid reports whether the handle refers to an element.
func (v Vertex) IsValid() bool { return v >= 0 }

// IsValid reports whether the handle refers to an element.
func (h Halfedge) IsValid() bool { return h >= 0 }

// IsValid reports whether the handle refers to an element.
func (e Edge) IsValid() bool { return e >= 0 }

// IsValid reports whether the handle refers to an element.
func (f Face) IsValid() bool { return f >= 0 }

// Opposite returns the other halfedge of the same edge. Edge e owns
// halfedges 2e and 2e+1, so the opposite is a low-bit flip.
func (h Halfedge) Opposite() Halfedge { return h ^ 1 }

// Edge returns the undirected edge the halfedge belongs to.
func (h Halfedge) Edge() Edge { return Edge(h >> 1) }

// Halfedge returns halfedge i (0 or 1) of the edge.
func (e Edge) Halfedge(i int) Halfedge { return Halfedge(int(e)<<1 | i&1) }
