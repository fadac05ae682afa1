// meshtool is a CLI utility for inspecting, checking, and simplifying
// triangle meshes in OBJ and binary STL format.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/hemesh/internal/config"
	"github.com/Faultbox/hemesh/internal/logger"
	"github.com/Faultbox/hemesh/pkg/formats"
	"github.com/Faultbox/hemesh/pkg/hemesh"
	"github.com/Faultbox/hemesh/pkg/simplify"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "simplify":
		cmdSimplify(args)
	case "check":
		cmdCheck(args)
	case "init-config":
		cmdInitConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - triangle mesh utility

Usage:
  meshtool <command> [options]

Commands:
  info <mesh>                        Show mesh statistics
  check <mesh>                       Audit halfedge connectivity invariants
  simplify [options] <in> <out>      Decimate a mesh with quadric error metrics
  init-config [path]                 Write a default meshtool.yaml
  help                               Show this help

Simplify options:
  -target N                Target face count
  -max-error E             Stop when the cheapest collapse costs more than E
  -preserve-boundary       Never collapse boundary edges
  -boundary-weight W       Weight of the boundary fin quadrics
  -config FILE             Explicit config file
  -debug                   Debug logging

Mesh files are read and written by extension: .obj or .stl`)
}

// setup parses flags, loads the config, and initializes logging. It returns
// the config and the remaining positional arguments.
func setup(args []string) (*config.Config, []string) {
	if err := config.ParseFlags(args); err != nil {
		os.Exit(2)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	return cfg, flag.Args()
}

func cmdInfo(args []string) {
	_, rest := setup(args)
	if len(rest) != 1 {
		fmt.Fprintln(os.Stderr, "usage: meshtool info <mesh>")
		os.Exit(2)
	}

	m, err := loadMesh(rest[0])
	if err != nil {
		logger.Fatal("loading mesh", zap.String("path", rest[0]), zap.Error(err))
	}

	boundaryEdges := 0
	m.EachEdge(func(e hemesh.Edge) {
		if m.IsBoundaryEdge(e) {
			boundaryEdges++
		}
	})

	min := r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max := r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	m.EachVertex(func(v hemesh.Vertex) {
		p := m.Position(v)
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		min.Z = math.Min(min.Z, p.Z)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
		max.Z = math.Max(max.Z, p.Z)
	})

	fmt.Printf("File:           %s\n", rest[0])
	fmt.Printf("Vertices:       %d\n", m.VertexCount())
	fmt.Printf("Edges:          %d\n", m.EdgeCount())
	fmt.Printf("Faces:          %d\n", m.FaceCount())
	fmt.Printf("Boundary edges: %d\n", boundaryEdges)
	fmt.Printf("Euler number:   %d\n", m.VertexCount()-m.EdgeCount()+m.FaceCount())
	fmt.Printf("Bounds min:     %.6g %.6g %.6g\n", min.X, min.Y, min.Z)
	fmt.Printf("Bounds max:     %.6g %.6g %.6g\n", max.X, max.Y, max.Z)
}

func cmdCheck(args []string) {
	_, rest := setup(args)
	if len(rest) != 1 {
		fmt.Fprintln(os.Stderr, "usage: meshtool check <mesh>")
		os.Exit(2)
	}

	m, err := loadMesh(rest[0])
	if err != nil {
		logger.Fatal("loading mesh", zap.String("path", rest[0]), zap.Error(err))
	}

	problems := m.Validate()
	if len(problems) == 0 {
		fmt.Println("OK: all connectivity invariants hold")
		return
	}
	for _, p := range problems {
		fmt.Printf("FAIL: %s\n", p)
	}
	os.Exit(1)
}

func cmdSimplify(args []string) {
	cfg, rest := setup(args)
	if len(rest) != 2 {
		fmt.Fprintln(os.Stderr, "usage: meshtool simplify [options] <in> <out>")
		os.Exit(2)
	}

	m, err := loadMesh(rest[0])
	if err != nil {
		logger.Fatal("loading mesh", zap.String("path", rest[0]), zap.Error(err))
	}

	logger.Info("loaded mesh",
		zap.String("path", rest[0]),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("faces", m.FaceCount()))

	opts := simplify.Options{
		TargetFaces:      cfg.Simplify.TargetFaces,
		MaxError:         cfg.Simplify.MaxError,
		PreserveBoundary: cfg.Simplify.PreserveBoundary,
		BoundaryWeight:   cfg.Simplify.BoundaryWeight,
	}

	start := time.Now()
	res, err := simplify.Simplify(m, opts)
	if err != nil {
		logger.Fatal("simplification failed", zap.Error(err))
	}
	m.GarbageCollection()

	logger.Info("simplified mesh",
		zap.Int("collapses", res.Collapses),
		zap.Int("faces", res.FaceCount),
		zap.Float64("max_error", res.MaxError),
		zap.Duration("elapsed", time.Since(start)))

	if err := saveMesh(rest[1], m); err != nil {
		logger.Fatal("saving mesh", zap.String("path", rest[1]), zap.Error(err))
	}
	logger.Info("wrote mesh", zap.String("path", rest[1]))
	logger.Sync()
}

func cmdInitConfig(args []string) {
	path := "./meshtool.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if err := config.Default().SaveTo(path); err != nil {
		fmt.Fprintf(os.Stderr, "writing %s: %v\n", path, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", path)
}

// loadMesh reads a mesh file and builds the halfedge structure.
func loadMesh(path string) (*hemesh.Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		obj, err := formats.LoadOBJ(path)
		if err != nil {
			return nil, err
		}
		return meshFromIndexed(obj.Vertices, obj.Faces)
	case ".stl":
		stl, err := formats.LoadSTL(path)
		if err != nil {
			return nil, err
		}
		vertices, faces := stl.Indexed()
		return meshFromIndexed(vertices, faces)
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", path)
	}
}

func meshFromIndexed(vertices [][3]float64, faces [][3]int) (*hemesh.Mesh, error) {
	points := make([]r3.Vec, len(vertices))
	for i, v := range vertices {
		points[i] = r3.Vec{X: v[0], Y: v[1], Z: v[2]}
	}
	return hemesh.FromIndexedFaces(points, faces)
}

// saveMesh writes the mesh by extension. The mesh is compacted first so
// handles form a contiguous index range.
func saveMesh(path string, m *hemesh.Mesh) error {
	m.GarbageCollection()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		obj := &formats.OBJ{}
		m.EachVertex(func(v hemesh.Vertex) {
			p := m.Position(v)
			obj.Vertices = append(obj.Vertices, [3]float64{p.X, p.Y, p.Z})
		})
		m.EachFace(func(f hemesh.Face) {
			vs := m.FaceVertices(f)
			if len(vs) == 3 {
				obj.Faces = append(obj.Faces, [3]int{int(vs[0]), int(vs[1]), int(vs[2])})
			}
		})
		return formats.SaveOBJ(path, obj)
	case ".stl":
		stl := &formats.STL{}
		copy(stl.Header[:], "meshtool")
		m.EachFace(func(f hemesh.Face) {
			vs := m.FaceVertices(f)
			if len(vs) != 3 {
				return
			}
			var t formats.STLTriangle
			p0 := m.Position(vs[0])
			n := r3.Unit(r3.Cross(
				r3.Sub(m.Position(vs[1]), p0),
				r3.Sub(m.Position(vs[2]), p0)))
			t.Normal = [3]float32{float32(n.X), float32(n.Y), float32(n.Z)}
			for i, v := range vs {
				p := m.Position(v)
				t.Vertices[i] = [3]float32{float32(p.X), float32(p.Y), float32(p.Z)}
			}
			stl.Triangles = append(stl.Triangles, t)
		})
		return formats.SaveSTL(path, stl)
	default:
		return fmt.Errorf("unsupported mesh format: %s", path)
	}
}
