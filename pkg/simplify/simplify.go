package simplify

import (
	"container/heap"
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/hemesh/pkg/hemesh"
	"github.com/Faultbox/hemesh/pkg/property"
)

// ErrTooFewFaces is returned when the input mesh is too small to decimate.
var ErrTooFewFaces = errors.New("simplify: mesh has fewer than four faces")

// degenerateNorm is the cross-product magnitude (twice the triangle area)
// below which a face contributes no quadric.
const degenerateNorm = 1e-12

// Options control a decimation run.
type Options struct {
	// TargetFaces stops the run once the live face count reaches it.
	TargetFaces int
	// MaxError stops the run once the cheapest remaining collapse would
	// cost more. Non-positive means unbounded.
	MaxError float64
	// PreserveBoundary excludes boundary edges from collapsing entirely.
	PreserveBoundary bool
	// BoundaryWeight scales the perpendicular fin quadrics added along the
	// boundary when PreserveBoundary is off. Zero adds no fins.
	BoundaryWeight float64
}

// Result reports what a decimation run did.
type Result struct {
	// Collapses is the number of edge collapses performed.
	Collapses int
	// FaceCount is the live face count after the run.
	FaceCount int
	// MaxError is the largest collapse cost among performed collapses.
	MaxError float64
}

// candidate is one heap entry: a proposed collapse of edge at pos, scored by
// cost. version captures the edge's counter at push time; a mismatch at pop
// time marks the entry stale.
type candidate struct {
	edge    hemesh.Edge
	cost    float64
	pos     r3.Vec
	version uint32
}

type candidateHeap []candidate

func (h candidateHeap) Len() int           { return len(h) }
func (h candidateHeap) Less(i, j int) bool { return h[i].cost < h[j].cost }
func (h candidateHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *candidateHeap) Push(x any) { *h = append(*h, x.(candidate)) }
func (h *candidateHeap) Pop() any {
	old := *h
	x := old[len(old)-1]
	*h = old[:len(old)-1]
	return x
}

// Simplify decimates m in place until Options.TargetFaces or
// Options.MaxError is reached. It mutates connectivity only through the
// public hemesh operators and leaves tombstoned elements behind; callers
// wanting compact storage run GarbageCollection afterwards.
func Simplify(m *hemesh.Mesh, opts Options) (Result, error) {
	if m.FaceCount() < 4 {
		return Result{}, ErrTooFewFaces
	}
	maxErr := opts.MaxError
	if maxErr <= 0 {
		maxErr = math.Inf(1)
	}

	quadrics := property.GetOrAdd(m.VertexProps(), "v:quadric", Quadric{})
	versions := property.GetOrAdd(m.EdgeProps(), "e:version", uint32(0))
	defer func() {
		m.VertexProps().Remove(property.IDOf[Quadric](m.VertexProps(), "v:quadric"))
		m.EdgeProps().Remove(property.IDOf[uint32](m.EdgeProps(), "e:version"))
	}()
	quadrics.Fill(Quadric{})
	versions.Fill(0)

	accumulateQuadrics(m, quadrics)
	if !opts.PreserveBoundary && opts.BoundaryWeight > 0 {
		addBoundaryFins(m, quadrics, opts.BoundaryWeight)
	}

	cands := make(candidateHeap, 0, m.EdgeCount())
	m.EachEdge(func(e hemesh.Edge) {
		if opts.PreserveBoundary && m.IsBoundaryEdge(e) {
			return
		}
		cands = append(cands, makeCandidate(m, quadrics, versions, e))
	})
	heap.Init(&cands)

	res := Result{FaceCount: m.FaceCount()}
	for cands.Len() > 0 && res.FaceCount > opts.TargetFaces {
		c := heap.Pop(&cands).(candidate)

		// Lazy invalidation: stale entries are skipped, not re-sorted.
		if m.IsDeletedEdge(c.edge) || versions.At(int(c.edge)) != c.version {
			continue
		}
		// Costs pop in non-decreasing order, nothing cheaper remains.
		if c.cost > maxErr {
			break
		}
		if !m.IsCollapseOK(c.edge) {
			continue
		}

		h := c.edge.Halfedge(0)
		sum := quadrics.At(int(m.FromVertex(h))).Add(quadrics.At(int(m.ToVertex(h))))
		v, ok := m.Collapse(c.edge, c.pos)
		if !ok {
			continue
		}
		quadrics.Set(int(v), sum)

		res.Collapses++
		res.FaceCount = m.FaceCount()
		if c.cost > res.MaxError {
			res.MaxError = c.cost
		}

		// Requeue the 1-ring with bumped versions; older entries for these
		// edges die at pop time.
		for _, e := range m.VertexEdges(v) {
			versions.Set(int(e), versions.At(int(e))+1)
			if opts.PreserveBoundary && m.IsBoundaryEdge(e) {
				continue
			}
			heap.Push(&cands, makeCandidate(m, quadrics, versions, e))
		}
	}

	return res, nil
}

// accumulateQuadrics adds every live face's plane quadric to its three
// corner vertices. Near-degenerate faces are skipped.
func accumulateQuadrics(m *hemesh.Mesh, quadrics *property.Storage[Quadric]) {
	m.EachFace(func(f hemesh.Face) {
		vs := m.FaceVertices(f)
		if len(vs) != 3 {
			return
		}
		p0 := m.Position(vs[0])
		n := r3.Cross(r3.Sub(m.Position(vs[1]), p0), r3.Sub(m.Position(vs[2]), p0))
		l := r3.Norm(n)
		if l < degenerateNorm {
			return
		}
		n = r3.Scale(1/l, n)
		q := PlaneQuadric(n, -r3.Dot(n, p0))
		for _, v := range vs {
			quadrics.Set(int(v), quadrics.At(int(v)).Add(q))
		}
	})
}

// addBoundaryFins adds a weighted quadric at every boundary edge for a
// virtual plane perpendicular to the incident face, discouraging boundary
// erosion without forbidding it.
func addBoundaryFins(m *hemesh.Mesh, quadrics *property.Storage[Quadric], weight float64) {
	m.EachEdge(func(e hemesh.Edge) {
		if !m.IsBoundaryEdge(e) {
			return
		}
		h := e.Halfedge(0)
		if m.IsBoundaryHalfedge(h) {
			h = h.Opposite()
		}
		f := m.FaceOf(h)
		if !f.IsValid() {
			return // wire edge, no face on either side
		}
		vs := m.FaceVertices(f)
		if len(vs) != 3 {
			return
		}
		p0 := m.Position(vs[0])
		fn := r3.Cross(r3.Sub(m.Position(vs[1]), p0), r3.Sub(m.Position(vs[2]), p0))
		from := m.Position(m.FromVertex(h))
		to := m.Position(m.ToVertex(h))
		fin := r3.Cross(r3.Sub(to, from), fn)
		l := r3.Norm(fin)
		if l < degenerateNorm {
			return
		}
		fin = r3.Scale(1/l, fin)
		q := PlaneQuadric(fin, -r3.Dot(fin, from)).Scale(weight)

		v0 := int(m.FromVertex(h))
		v1 := int(m.ToVertex(h))
		quadrics.Set(v0, quadrics.At(v0).Add(q))
		quadrics.Set(v1, quadrics.At(v1).Add(q))
	})
}

// makeCandidate scores the collapse of e at the optimal position of the
// summed endpoint quadrics, falling back to the better of the endpoints and
// their midpoint when the minimizer system is singular.
func makeCandidate(m *hemesh.Mesh, quadrics *property.Storage[Quadric],
	versions *property.Storage[uint32], e hemesh.Edge) candidate {

	h := e.Halfedge(0)
	v0 := m.FromVertex(h)
	v1 := m.ToVertex(h)
	q := quadrics.At(int(v0)).Add(quadrics.At(int(v1)))

	pos, ok := q.Minimizer()
	if !ok {
		p0 := m.Position(v0)
		p1 := m.Position(v1)
		mid := r3.Scale(0.5, r3.Add(p0, p1))
		pos = p0
		best := q.Eval(p0)
		if c := q.Eval(p1); c < best {
			best, pos = c, p1
		}
		if c := q.Eval(mid); c < best {
			pos = mid
		}
	}

	cost := q.Eval(pos)
	if cost < 0 {
		cost = 0 // sum of squares, tiny negatives are numerical noise
	}
	return candidate{edge: e, cost: cost, pos: pos, version: versions.At(int(e))}
}
