// Package formats provides parsers and writers for triangle-mesh file
// formats.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrOBJMalformedVertex = errors.New("malformed OBJ vertex: expected 3 coordinates")
	ErrOBJMalformedFace   = errors.New("malformed OBJ face: expected at least 3 vertices")
	ErrOBJVertexIndex     = errors.New("OBJ face references an unknown vertex")
)

// OBJ holds the triangle geometry of a Wavefront OBJ file. Texture
// coordinates, normals, and grouping statements are skipped on read;
// polygonal faces are fan-triangulated.
type OBJ struct {
	Vertices [][3]float64
	Faces    [][3]int
}

// ParseOBJ parses OBJ data.
func ParseOBJ(data []byte) (*OBJ, error) {
	obj := &OBJ{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrOBJMalformedVertex)
			}
			var p [3]float64
			for i := 0; i < 3; i++ {
				f, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, ErrOBJMalformedVertex)
				}
				p[i] = f
			}
			obj.Vertices = append(obj.Vertices, p)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrOBJMalformedFace)
			}
			idx := make([]int, 0, len(fields)-1)
			for _, elem := range fields[1:] {
				i, err := parseOBJIndex(elem, len(obj.Vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				idx = append(idx, i)
			}
			for i := 1; i+1 < len(idx); i++ {
				obj.Faces = append(obj.Faces, [3]int{idx[0], idx[i], idx[i+1]})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return obj, nil
}

// parseOBJIndex resolves one face element ("7", "7/1", "7//3", "-1") to a
// zero-based vertex index.
func parseOBJIndex(elem string, numVertices int) (int, error) {
	if i := strings.IndexByte(elem, '/'); i >= 0 {
		elem = elem[:i]
	}
	v, err := strconv.Atoi(elem)
	if err != nil || v == 0 {
		return 0, ErrOBJMalformedFace
	}
	if v < 0 {
		v = numVertices + v // relative index counts back from the end
	} else {
		v-- // OBJ indices are 1-based
	}
	if v < 0 || v >= numVertices {
		return 0, ErrOBJVertexIndex
	}
	return v, nil
}

// LoadOBJ reads and parses an OBJ file.
func LoadOBJ(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	obj, err := ParseOBJ(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return obj, nil
}

// WriteOBJ writes the geometry in OBJ format.
func WriteOBJ(w io.Writer, obj *OBJ) error {
	bw := bufio.NewWriter(w)
	for _, v := range obj.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v[0], v[1], v[2])
	}
	for _, f := range obj.Faces {
		fmt.Fprintf(bw, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1)
	}
	return bw.Flush()
}

// SaveOBJ writes the geometry to a file in OBJ format.
func SaveOBJ(path string, obj *OBJ) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteOBJ(f, obj); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
