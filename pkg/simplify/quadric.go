// Package simplify implements quadric-error-metric mesh decimation on top
// of the hemesh operator contract: it scores edge collapses with
// accumulated plane quadrics and greedily contracts the cheapest legal edge
// until a face budget or an error bound is reached.
package simplify

import "gonum.org/v1/gonum/spatial/r3"

// Quadric is a symmetric 4x4 error matrix stored as its 10 independent
// entries. For a plane (n, w) it is the outer product of the homogeneous
// plane vector; evaluated at a point it gives the squared distance to the
// plane, and sums of quadrics give sums of squared distances.
type Quadric struct {
	XX, XY, XZ, XW float64
	YY, YZ, YW     float64
	ZZ, ZW         float64
	WW             float64
}

// PlaneQuadric returns the quadric of the plane with unit normal n and
// offset w, where a point p lies on the plane iff dot(n, p) + w == 0.
func PlaneQuadric(n r3.Vec, w float64) Quadric {
	return Quadric{
		XX: n.X * n.X, XY: n.X * n.Y, XZ: n.X * n.Z, XW: n.X * w,
		YY: n.Y * n.Y, YZ: n.Y * n.Z, YW: n.Y * w,
		ZZ: n.Z * n.Z, ZW: n.Z * w,
		WW: w * w,
	}
}

// Add returns the entrywise sum of the two quadrics.
func (q Quadric) Add(o Quadric) Quadric {
	return Quadric{
		XX: q.XX + o.XX, XY: q.XY + o.XY, XZ: q.XZ + o.XZ, XW: q.XW + o.XW,
		YY: q.YY + o.YY, YZ: q.YZ + o.YZ, YW: q.YW + o.YW,
		ZZ: q.ZZ + o.ZZ, ZW: q.ZW + o.ZW,
		WW: q.WW + o.WW,
	}
}

// Scale returns the quadric multiplied by s.
func (q Quadric) Scale(s float64) Quadric {
	return Quadric{
		XX: s * q.XX, XY: s * q.XY, XZ: s * q.XZ, XW: s * q.XW,
		YY: s * q.YY, YZ: s * q.YZ, YW: s * q.YW,
		ZZ: s * q.ZZ, ZW: s * q.ZW,
		WW: s * q.WW,
	}
}

// Eval returns the quadric form evaluated at p, the accumulated squared
// plane distances. The value is non-negative up to floating-point error.
func (q Quadric) Eval(p r3.Vec) float64 {
	return q.XX*p.X*p.X + 2*q.XY*p.X*p.Y + 2*q.XZ*p.X*p.Z + 2*q.XW*p.X +
		q.YY*p.Y*p.Y + 2*q.YZ*p.Y*p.Z + 2*q.YW*p.Y +
		q.ZZ*p.Z*p.Z + 2*q.ZW*p.Z +
		q.WW
}

// singularDet is the determinant magnitude below which the minimizer system
// is treated as singular.
const singularDet = 1e-15

// Minimizer solves for the position minimizing the quadric form, using
// Cramer's rule on the 3x3 gradient system. It reports false if the system
// is singular, which happens for planar or otherwise underconstrained
// neighborhoods; callers then fall back to a discrete candidate search.
func (q Quadric) Minimizer() (r3.Vec, bool) {
	// A p = -b with A the upper-left 3x3 block, b = (XW, YW, ZW).
	det := q.XX*(q.YY*q.ZZ-q.YZ*q.YZ) -
		q.XY*(q.XY*q.ZZ-q.YZ*q.XZ) +
		q.XZ*(q.XY*q.YZ-q.YY*q.XZ)
	if det > -singularDet && det < singularDet {
		return r3.Vec{}, false
	}
	bx, by, bz := -q.XW, -q.YW, -q.ZW
	x := bx*(q.YY*q.ZZ-q.YZ*q.YZ) -
		q.XY*(by*q.ZZ-q.YZ*bz) +
		q.XZ*(by*q.YZ-q.YY*bz)
	y := q.XX*(by*q.ZZ-bz*q.YZ) -
		bx*(q.XY*q.ZZ-q.YZ*q.XZ) +
		q.XZ*(q.XY*bz-by*q.XZ)
	z := q.XX*(q.YY*bz-q.YZ*by) -
		q.XY*(q.XY*bz-by*q.XZ) +
		bx*(q.XY*q.YZ-q.YY*q.XZ)
	return r3.Vec{X: x / det, Y: y / det, Z: z / det}, true
}
