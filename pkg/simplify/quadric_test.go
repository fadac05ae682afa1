package simplify

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestPlaneQuadricDistance(t *testing.T) {
	// Plane z = 2: normal (0,0,1), offset -2.
	q := PlaneQuadric(r3.Vec{Z: 1}, -2)

	tests := []struct {
		p    r3.Vec
		want float64
	}{
		{r3.Vec{X: 1, Y: 5, Z: 2}, 0}, // on the plane
		{r3.Vec{Z: 3}, 1},
		{r3.Vec{X: -4, Z: 0}, 4},
		{r3.Vec{Z: -1}, 9},
	}
	for _, tt := range tests {
		if got := q.Eval(tt.p); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Eval(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestQuadricNonNegative(t *testing.T) {
	n := r3.Unit(r3.Vec{X: 1, Y: 2, Z: -0.5})
	q := PlaneQuadric(n, 0.7)
	points := []r3.Vec{
		{}, {X: 1}, {Y: -3, Z: 2}, {X: 0.1, Y: 0.1, Z: 0.1},
	}
	for _, p := range points {
		if got := q.Eval(p); got < -1e-12 {
			t.Errorf("Eval(%v) = %v, want >= 0", p, got)
		}
	}
}

func TestQuadricAdditivity(t *testing.T) {
	a := PlaneQuadric(r3.Vec{X: 1}, -1)
	b := PlaneQuadric(r3.Unit(r3.Vec{Y: 1, Z: 1}), 0.25)
	p := r3.Vec{X: 0.3, Y: -1.2, Z: 0.8}

	sum := a.Add(b)
	if got, want := sum.Eval(p), a.Eval(p)+b.Eval(p); math.Abs(got-want) > 1e-12 {
		t.Errorf("sum.Eval = %v, want %v", got, want)
	}
}

func TestQuadricScale(t *testing.T) {
	q := PlaneQuadric(r3.Vec{Y: 1}, -3)
	p := r3.Vec{Y: 5}
	if got, want := q.Scale(2.5).Eval(p), 2.5*q.Eval(p); math.Abs(got-want) > 1e-12 {
		t.Errorf("scaled Eval = %v, want %v", got, want)
	}
}

func TestMinimizerCornerPoint(t *testing.T) {
	// Three orthogonal planes meeting at (1, 2, 3).
	q := PlaneQuadric(r3.Vec{X: 1}, -1).
		Add(PlaneQuadric(r3.Vec{Y: 1}, -2)).
		Add(PlaneQuadric(r3.Vec{Z: 1}, -3))

	p, ok := q.Minimizer()
	if !ok {
		t.Fatal("corner system should be solvable")
	}
	want := r3.Vec{X: 1, Y: 2, Z: 3}
	if math.Abs(p.X-want.X) > 1e-9 || math.Abs(p.Y-want.Y) > 1e-9 || math.Abs(p.Z-want.Z) > 1e-9 {
		t.Errorf("Minimizer() = %v, want %v", p, want)
	}
	if cost := q.Eval(p); math.Abs(cost) > 1e-9 {
		t.Errorf("cost at corner = %v, want 0", cost)
	}
}

func TestMinimizerSingularPlane(t *testing.T) {
	// A single plane constrains only one direction; the system is singular.
	q := PlaneQuadric(r3.Vec{Z: 1}, 0)
	if _, ok := q.Minimizer(); ok {
		t.Error("single-plane quadric must report a singular system")
	}
}
