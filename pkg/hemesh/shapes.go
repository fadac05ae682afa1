package hemesh

import "gonum.org/v1/gonum/spatial/r3"

// Closed and bounded starter meshes used by tests, benchmarks, and the
// meshtool demo paths. All faces wind counterclockwise seen from outside.

// Tetrahedron returns a regular tetrahedron centered at the origin.
func Tetrahedron() *Mesh {
	points := []r3.Vec{
		{X: 1, Y: 1, Z: 1},
		{X: 1, Y: -1, Z: -1},
		{X: -1, Y: 1, Z: -1},
		{X: -1, Y: -1, Z: 1},
	}
	faces := [][3]int{{0, 1, 2}, {0, 3, 1}, {0, 2, 3}, {1, 3, 2}}
	m, err := FromIndexedFaces(points, faces)
	if err != nil {
		panic("hemesh: tetrahedron construction failed: " + err.Error())
	}
	return m
}

// Octahedron returns a regular octahedron with unit vertices on the axes:
// 6 vertices, 12 edges, 8 faces.
func Octahedron() *Mesh {
	points := []r3.Vec{
		{X: 1}, {X: -1},
		{Y: 1}, {Y: -1},
		{Z: 1}, {Z: -1},
	}
	faces := [][3]int{
		{0, 2, 4}, {2, 1, 4}, {1, 3, 4}, {3, 0, 4},
		{2, 0, 5}, {1, 2, 5}, {3, 1, 5}, {0, 3, 5},
	}
	m, err := FromIndexedFaces(points, faces)
	if err != nil {
		panic("hemesh: octahedron construction failed: " + err.Error())
	}
	return m
}

// TriangleGrid returns an n by n unit-square patch of 2*n*n triangles in the
// XY plane. The patch has an open boundary on all four sides.
func TriangleGrid(n int) *Mesh {
	if n < 1 {
		n = 1
	}
	points := make([]r3.Vec, 0, (n+1)*(n+1))
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			points = append(points, r3.Vec{
				X: float64(x) / float64(n),
				Y: float64(y) / float64(n),
			})
		}
	}
	var faces [][3]int
	idx := func(x, y int) int { return y*(n+1) + x }
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			a := idx(x, y)
			b := idx(x+1, y)
			c := idx(x+1, y+1)
			d := idx(x, y+1)
			faces = append(faces, [3]int{a, b, c}, [3]int{a, c, d})
		}
	}
	m, err := FromIndexedFaces(points, faces)
	if err != nil {
		panic("hemesh: grid construction failed: " + err.Error())
	}
	return m
}
