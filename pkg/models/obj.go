package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/asciiview/internal/logger"
	"github.com/taigrr/asciiview/pkg/math3d"
	"github.com/taigrr/asciiview/pkg/triangulate"
	"go.uber.org/zap"
)

// ErrSyntax is wrapped by every malformed-statement error of the text
// loaders.
var ErrSyntax = errors.New("syntax error")

// maxLineSize bounds a single statement; large polygons can run long.
const maxLineSize = 16 << 20

// OBJLoader loads Wavefront OBJ files into Mesh format.
type OBJLoader struct {
	// Materials enables mtllib/usemtl handling. When false, faces carry
	// NoMaterial and companion MTL files are never opened.
	Materials bool

	tri *triangulate.Triangulator
}

// NewOBJLoader creates a new OBJ loader with default options.
func NewOBJLoader() *OBJLoader {
	return &OBJLoader{tri: triangulate.New()}
}

// LoadOBJ loads an OBJ file without materials.
func LoadOBJ(path string) (*Mesh, error) {
	return NewOBJLoader().Load(path)
}

// Load reads an OBJ file. Material libraries are resolved relative to the
// file's directory.
func (l *OBJLoader) Load(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	return l.read(f, filepath.Base(path), filepath.Dir(path))
}

// objPolygon is a face statement waiting for all vertices to be known.
type objPolygon struct {
	line     int
	indices  []int
	material int
}

func (l *OBJLoader) read(r io.Reader, name, dir string) (*Mesh, error) {
	if l.tri == nil {
		l.tri = triangulate.New()
	}

	mesh := NewMesh(name)
	var polygons []objPolygon
	material := NoMaterial

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for lineNo := 1; sc.Scan(); lineNo++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: v: %w", name, lineNo, err)
			}
			mesh.Vertices = append(mesh.Vertices, v)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%s:%d: f: %w: %d vertices", name, lineNo, ErrSyntax, len(fields)-1)
			}
			indices := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				idx, err := parseFaceIndex(tok, len(mesh.Vertices))
				if err != nil {
					return nil, fmt.Errorf("%s:%d: f: %w", name, lineNo, err)
				}
				indices = append(indices, idx)
			}
			polygons = append(polygons, objPolygon{line: lineNo, indices: indices, material: material})

		case "mtllib":
			if !l.Materials || len(fields) < 2 {
				continue
			}
			mtlPath := filepath.Join(dir, strings.Join(fields[1:], " "))
			if err := loadMTLFile(mesh, mtlPath); err != nil {
				logger.Warn("material library not loaded", zap.String("path", mtlPath), zap.Error(err))
			}

		case "usemtl":
			if !l.Materials {
				continue
			}
			if len(fields) < 2 {
				material = NoMaterial
				continue
			}
			material = mesh.MaterialIndex(fields[1])
			if material == NoMaterial {
				logger.Warn("unknown material", zap.String("file", name), zap.Int("line", lineNo), zap.String("material", fields[1]))
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	for _, p := range polygons {
		err := mesh.AddPolygon(l.tri, p.indices, p.material)
		switch {
		case err == nil:
		case errors.Is(err, triangulate.ErrDegeneratePolygon):
			logger.Warn("skipping degenerate face", zap.String("file", name), zap.Int("line", p.line))
		default:
			return nil, fmt.Errorf("%s:%d: f: %w", name, p.line, err)
		}
	}

	// OBJ is right-handed with the viewer on +Z.
	mesh.InvertZ()
	return mesh, nil
}

// parseVec3 parses the first three fields as coordinates.
func parseVec3(fields []string) (math3d.Vec3, error) {
	if len(fields) < 3 {
		return math3d.Vec3{}, fmt.Errorf("%w: want 3 coordinates, got %d", ErrSyntax, len(fields))
	}
	var c [3]float64
	for i := range c {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return math3d.Vec3{}, fmt.Errorf("%w: %w", ErrSyntax, err)
		}
		c[i] = f
	}
	return math3d.V3(c[0], c[1], c[2]), nil
}

// parseFaceIndex reads the vertex part of a v, v/vt, v//vn or v/vt/vn token
// and converts it to a zero-based index. Negative indices count back from
// the last vertex read so far.
func parseFaceIndex(tok string, vertexCount int) (int, error) {
	if i := strings.IndexByte(tok, '/'); i >= 0 {
		tok = tok[:i]
	}
	idx, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	switch {
	case idx > 0:
		return idx - 1, nil
	case idx < 0 && -idx <= vertexCount:
		return vertexCount + idx, nil
	default:
		return 0, fmt.Errorf("%w: index %d with %d vertices read", triangulate.ErrIndexOutOfRange, idx, vertexCount)
	}
}
