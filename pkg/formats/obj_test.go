package formats

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// createTestOBJ builds a small OBJ document from vertex and face lines.
func createTestOBJ(lines ...string) []byte {
	return []byte(strings.Join(lines, "\n") + "\n")
}

func TestParseOBJ_ValidFile(t *testing.T) {
	data := createTestOBJ(
		"# unit right triangle pair",
		"v 0 0 0",
		"v 1 0 0",
		"v 1 1 0",
		"v 0 1 0",
		"f 1 2 3",
		"f 1 3 4",
	)

	obj, err := ParseOBJ(data)
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if len(obj.Vertices) != 4 {
		t.Errorf("expected 4 vertices, got %d", len(obj.Vertices))
	}
	if len(obj.Faces) != 2 {
		t.Errorf("expected 2 faces, got %d", len(obj.Faces))
	}
	if obj.Vertices[2] != [3]float64{1, 1, 0} {
		t.Errorf("vertex 2 = %v, want [1 1 0]", obj.Vertices[2])
	}
	if obj.Faces[0] != [3]int{0, 1, 2} {
		t.Errorf("face 0 = %v, want [0 1 2] (indices converted to 0-based)", obj.Faces[0])
	}
}

func TestParseOBJ_FanTriangulation(t *testing.T) {
	data := createTestOBJ(
		"v 0 0 0",
		"v 1 0 0",
		"v 1 1 0",
		"v 0 1 0",
		"f 1 2 3 4",
	)

	obj, err := ParseOBJ(data)
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	want := [][3]int{{0, 1, 2}, {0, 2, 3}}
	if len(obj.Faces) != len(want) {
		t.Fatalf("expected %d faces from a quad, got %d", len(want), len(obj.Faces))
	}
	for i := range want {
		if obj.Faces[i] != want[i] {
			t.Errorf("face %d = %v, want %v", i, obj.Faces[i], want[i])
		}
	}
}

func TestParseOBJ_IndexForms(t *testing.T) {
	// Slash-separated texture/normal references and negative relative
	// indices all resolve to the same triangle.
	data := createTestOBJ(
		"v 0 0 0",
		"v 1 0 0",
		"v 0 1 0",
		"f 1/5 2/6/3 -1//2",
	)

	obj, err := ParseOBJ(data)
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(obj.Faces) != 1 || obj.Faces[0] != [3]int{0, 1, 2} {
		t.Errorf("faces = %v, want [[0 1 2]]", obj.Faces)
	}
}

func TestParseOBJ_SkipsUnknownStatements(t *testing.T) {
	data := createTestOBJ(
		"mtllib scene.mtl",
		"o triangle",
		"v 0 0 0",
		"v 1 0 0",
		"v 0 1 0",
		"vn 0 0 1",
		"vt 0 0",
		"s off",
		"f 1 2 3",
	)

	obj, err := ParseOBJ(data)
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(obj.Vertices) != 3 || len(obj.Faces) != 1 {
		t.Errorf("got %d vertices and %d faces, want 3 and 1",
			len(obj.Vertices), len(obj.Faces))
	}
}

func TestParseOBJ_MalformedVertex(t *testing.T) {
	data := createTestOBJ("v 1 2")
	if _, err := ParseOBJ(data); !errors.Is(err, ErrOBJMalformedVertex) {
		t.Errorf("expected ErrOBJMalformedVertex, got %v", err)
	}
}

func TestParseOBJ_BadVertexIndex(t *testing.T) {
	data := createTestOBJ(
		"v 0 0 0",
		"v 1 0 0",
		"v 0 1 0",
		"f 1 2 9",
	)
	if _, err := ParseOBJ(data); !errors.Is(err, ErrOBJVertexIndex) {
		t.Errorf("expected ErrOBJVertexIndex, got %v", err)
	}
}

func TestWriteOBJ_RoundTrip(t *testing.T) {
	orig := &OBJ{
		Vertices: [][3]float64{{0, 0, 0}, {1, 0, 0}, {0.5, 1, -0.25}},
		Faces:    [][3]int{{0, 1, 2}},
	}

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, orig); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}

	parsed, err := ParseOBJ(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseOBJ of written data failed: %v", err)
	}
	if len(parsed.Vertices) != len(orig.Vertices) {
		t.Fatalf("expected %d vertices, got %d", len(orig.Vertices), len(parsed.Vertices))
	}
	for i := range orig.Vertices {
		if parsed.Vertices[i] != orig.Vertices[i] {
			t.Errorf("vertex %d = %v, want %v", i, parsed.Vertices[i], orig.Vertices[i])
		}
	}
	if len(parsed.Faces) != 1 || parsed.Faces[0] != orig.Faces[0] {
		t.Errorf("faces = %v, want %v", parsed.Faces, orig.Faces)
	}
}
