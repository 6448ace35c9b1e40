package models

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/taigrr/asciiview/internal/logger"
	"github.com/taigrr/asciiview/pkg/math3d"
	"go.uber.org/zap"
)

const (
	stlHeaderSize = 80
	stlFacetSize  = 4*3*4 + 2 // normal, three vertices, attribute count
)

// ErrTruncated reports a binary file that ends inside a record.
var ErrTruncated = errors.New("truncated data")

// LoadSTL loads an ASCII or binary STL file.
//
// STL is Z-up; vertices are stored with Y and Z swapped so the model stands
// upright, and each facet's winding is reversed to keep it outward.
func LoadSTL(path string) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open stl: %w", err)
	}
	return parseSTL(data, filepath.Base(path))
}

func parseSTL(data []byte, name string) (*Mesh, error) {
	mesh := NewMesh(name)

	var err error
	if isASCIISTL(data) {
		err = readASCIISTL(mesh, data, name)
	} else {
		err = readBinarySTL(mesh, data, name)
	}
	if err != nil {
		return nil, err
	}

	n := len(mesh.Vertices)
	if rest := n % 3; rest != 0 {
		logger.Warn("ignoring vertices outside a complete facet", zap.String("file", name), zap.Int("count", rest))
		n -= rest
	}
	for i := 0; i < n; i += 3 {
		mesh.Faces = append(mesh.Faces, Face{V: [3]int{i, i + 2, i + 1}, Material: NoMaterial})
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// isASCIISTL reports whether data starts with a "solid" line followed by a
// "facet" line. Binary headers may also begin with "solid", hence the
// second check.
func isASCIISTL(data []byte) bool {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for _, want := range []string{"solid", "facet"} {
		if !sc.Scan() {
			return false
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || fields[0] != want {
			return false
		}
	}
	return true
}

// readASCIISTL collects "vertex x y z" statements. Normals are recomputed
// from the geometry, so facet normals are ignored.
func readASCIISTL(mesh *Mesh, data []byte, name string) error {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for lineNo := 1; sc.Scan(); lineNo++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || fields[0] != "vertex" {
			continue
		}
		v, err := parseVec3(fields[1:])
		if err != nil {
			return fmt.Errorf("%s:%d: vertex: %w", name, lineNo, err)
		}
		mesh.Vertices = append(mesh.Vertices, math3d.V3(v.X, v.Z, v.Y))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read stl: %w", err)
	}
	return nil
}

// readBinarySTL reads every 50-byte facet after the header. The declared
// facet count is only checked, not trusted.
func readBinarySTL(mesh *Mesh, data []byte, name string) error {
	if len(data) < stlHeaderSize+4 {
		return fmt.Errorf("read stl facet count: %w", ErrTruncated)
	}
	declared := binary.LittleEndian.Uint32(data[stlHeaderSize:])
	body := data[stlHeaderSize+4:]

	var facets uint32
	for ; len(body) > 0; body = body[stlFacetSize:] {
		if len(body) < stlFacetSize {
			return fmt.Errorf("read stl facet %d: %w", facets, ErrTruncated)
		}
		for v := range 3 {
			const start = 3 * 4 // skip normal
			x := readFloat32(body[start+12*v:])
			y := readFloat32(body[start+12*v+4:])
			z := readFloat32(body[start+12*v+8:])
			mesh.Vertices = append(mesh.Vertices, math3d.V3(x, z, y))
		}
		facets++
	}

	if facets != declared {
		logger.Warn("facet count does not match header",
			zap.String("file", name), zap.Uint32("declared", declared), zap.Uint32("read", facets))
	}
	return nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}
