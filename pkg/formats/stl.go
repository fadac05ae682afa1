package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// STL format errors.
var (
	ErrTruncatedSTL = errors.New("truncated STL data")
	ErrASCIISTL     = errors.New("ASCII STL is not supported, convert to binary")
)

const (
	stlHeaderSize   = 80
	stlTriangleSize = 50 // 12 float32 + uint16 attribute count
)

// STLTriangle is one triangle record of a binary STL file.
type STLTriangle struct {
	Normal   [3]float32
	Vertices [3][3]float32
}

// STL holds the triangle soup of a binary STL file.
type STL struct {
	Header    [stlHeaderSize]byte
	Triangles []STLTriangle
}

// ParseSTL parses binary STL data.
func ParseSTL(data []byte) (*STL, error) {
	if len(data) < stlHeaderSize+4 {
		// ASCII files start with "solid" and are typically shorter than
		// any valid binary file.
		if bytes.HasPrefix(bytes.TrimSpace(data), []byte("solid")) {
			return nil, ErrASCIISTL
		}
		return nil, ErrTruncatedSTL
	}

	stl := &STL{}
	copy(stl.Header[:], data[:stlHeaderSize])
	count := binary.LittleEndian.Uint32(data[stlHeaderSize:])

	body := data[stlHeaderSize+4:]
	if len(body) < int(count)*stlTriangleSize {
		if bytes.HasPrefix(bytes.TrimSpace(data), []byte("solid")) {
			return nil, ErrASCIISTL
		}
		return nil, ErrTruncatedSTL
	}

	stl.Triangles = make([]STLTriangle, count)
	for i := range stl.Triangles {
		rec := body[i*stlTriangleSize:]
		t := &stl.Triangles[i]
		for j := 0; j < 3; j++ {
			t.Normal[j] = float32frombytes(rec[j*4:])
		}
		for v := 0; v < 3; v++ {
			for j := 0; j < 3; j++ {
				t.Vertices[v][j] = float32frombytes(rec[12+v*12+j*4:])
			}
		}
	}
	return stl, nil
}

func float32frombytes(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// LoadSTL reads and parses a binary STL file.
func LoadSTL(path string) (*STL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	stl, err := ParseSTL(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return stl, nil
}

// WriteSTL writes the triangles in binary STL format.
func WriteSTL(w io.Writer, stl *STL) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(stl.Header[:]); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(stl.Triangles))); err != nil {
		return err
	}
	for i := range stl.Triangles {
		t := &stl.Triangles[i]
		if err := binary.Write(bw, binary.LittleEndian, t.Normal); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, t.Vertices); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(0)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveSTL writes the triangles to a file in binary STL format.
func SaveSTL(path string, stl *STL) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSTL(f, stl); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Indexed welds the triangle soup into a shared vertex array with index
// triples, matching vertices by exact position. Degenerate triangles that
// collapse onto fewer than three distinct vertices are dropped.
func (s *STL) Indexed() ([][3]float64, [][3]int) {
	var vertices [][3]float64
	var faces [][3]int
	lookup := make(map[[3]float32]int)

	weld := func(p [3]float32) int {
		if idx, ok := lookup[p]; ok {
			return idx
		}
		idx := len(vertices)
		lookup[p] = idx
		vertices = append(vertices, [3]float64{float64(p[0]), float64(p[1]), float64(p[2])})
		return idx
	}

	for i := range s.Triangles {
		t := &s.Triangles[i]
		a := weld(t.Vertices[0])
		b := weld(t.Vertices[1])
		c := weld(t.Vertices[2])
		if a == b || b == c || a == c {
			continue
		}
		faces = append(faces, [3]int{a, b, c})
	}
	return vertices, faces
}
