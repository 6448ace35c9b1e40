package models

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/taigrr/asciiview/internal/logger"
	"go.uber.org/zap"
)

var (
	// ErrUnsupportedFormat is returned for file extensions without a loader.
	ErrUnsupportedFormat = errors.New("unsupported model format")

	// ErrEmptyMesh is returned when a file yields no vertices or no faces.
	ErrEmptyMesh = errors.New("empty mesh")
)

// LoadOptions controls Load.
type LoadOptions struct {
	// Materials reads material colors where the format has them.
	Materials bool
}

// Load reads a model, picking the loader from the file extension, and
// normalizes it into the unit sphere.
func Load(path string, opts LoadOptions) (*Mesh, error) {
	var (
		mesh *Mesh
		err  error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		l := NewOBJLoader()
		l.Materials = opts.Materials
		mesh, err = l.Load(path)
	case ".stl":
		if opts.Materials {
			logger.Warn("colors are not supported in STL files", zap.String("path", path))
		}
		mesh, err = LoadSTL(path)
	case ".gltf", ".glb":
		mesh, err = LoadGLTF(path)
		if err == nil && !opts.Materials {
			mesh.ClearMaterials()
		}
	case "":
		return nil, fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	switch {
	case len(mesh.Vertices) == 0:
		return nil, fmt.Errorf("%w: %s has no vertices", ErrEmptyMesh, path)
	case len(mesh.Faces) == 0:
		return nil, fmt.Errorf("%w: %s has no faces", ErrEmptyMesh, path)
	}

	mesh.Normalize()
	logger.Debug("model loaded",
		zap.String("path", path),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("materials", mesh.MaterialCount()))
	return mesh, nil
}
