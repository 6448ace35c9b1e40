// Package models provides 3D model loading and representation for asciiview.
package models

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/asciiview/pkg/math3d"
	"github.com/taigrr/asciiview/pkg/triangulate"
)

// Mesh represents a triangle mesh with per-face materials.
type Mesh struct {
	Name      string
	Vertices  []math3d.Vec3
	Faces     []Face
	Materials []Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Face represents a triangle face with vertex indices and material reference.
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials (-1 for no material)
}

// NoMaterial is the material index of faces without a material.
const NoMaterial = -1

// Material is a named diffuse color.
type Material struct {
	Name    string
	Diffuse colorful.Color
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]math3d.Vec3, 0),
		Faces:    make([]Face, 0),
	}
}

// AddPolygon triangulates a polygon given as vertex indices and appends the
// resulting faces. Errors come from the triangulator unchanged, so callers
// can tell degenerate polygons from bad indices with errors.Is.
func (m *Mesh) AddPolygon(t *triangulate.Triangulator, polygon []int, material int) error {
	tris, err := t.Triangulate(m.Vertices, polygon)
	if err != nil {
		return err
	}
	for _, tri := range tris {
		m.Faces = append(m.Faces, Face{V: tri, Material: material})
	}
	return nil
}

// Validate checks that every face references existing vertices and
// materials.
func (m *Mesh) Validate() error {
	for i, f := range m.Faces {
		for _, idx := range f.V {
			if idx < 0 || idx >= len(m.Vertices) {
				return fmt.Errorf("face %d: vertex %d out of range (%d vertices)", i, idx, len(m.Vertices))
			}
		}
		if f.Material < NoMaterial || f.Material >= len(m.Materials) {
			return fmt.Errorf("face %d: material %d out of range (%d materials)", i, f.Material, len(m.Materials))
		}
	}
	return nil
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Normalize moves the bounding-box center to the origin and scales the mesh
// so the farthest vertex lies on the unit sphere.
func (m *Mesh) Normalize() {
	m.CalculateBounds()
	center := m.Center()

	var maxDist float64
	for i := range m.Vertices {
		m.Vertices[i] = m.Vertices[i].Sub(center)
		maxDist = math.Max(maxDist, m.Vertices[i].Len())
	}

	if maxDist > 0 {
		scale := 1 / maxDist
		for i := range m.Vertices {
			m.Vertices[i] = m.Vertices[i].Scale(scale)
		}
	}
	m.CalculateBounds()
}

// InvertTriangles reverses the winding of every face.
func (m *Mesh) InvertTriangles() {
	for i := range m.Faces {
		f := &m.Faces[i]
		f.V[1], f.V[2] = f.V[2], f.V[1]
	}
}

// InvertX mirrors the mesh along X, keeping faces outward.
func (m *Mesh) InvertX() {
	for i := range m.Vertices {
		m.Vertices[i].X = -m.Vertices[i].X
	}
	m.InvertTriangles()
	m.CalculateBounds()
}

// InvertY mirrors the mesh along Y, keeping faces outward.
func (m *Mesh) InvertY() {
	for i := range m.Vertices {
		m.Vertices[i].Y = -m.Vertices[i].Y
	}
	m.InvertTriangles()
	m.CalculateBounds()
}

// InvertZ mirrors the mesh along Z, keeping faces outward.
func (m *Mesh) InvertZ() {
	for i := range m.Vertices {
		m.Vertices[i].Z = -m.Vertices[i].Z
	}
	m.InvertTriangles()
	m.CalculateBounds()
}

// XZRadius returns the largest distance of a vertex from the Y axis, the
// horizontal room the mesh needs while spinning around it.
func (m *Mesh) XZRadius() float64 {
	var r float64
	for _, v := range m.Vertices {
		r = math.Max(r, math.Hypot(v.X, v.Z))
	}
	return r
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]math3d.Vec3, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		Materials: make([]Material, len(m.Materials)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	copy(clone.Materials, m.Materials)
	return clone
}

// GetVertex returns the position of vertex i.
// Implements render.MeshSource interface.
func (m *Mesh) GetVertex(i int) math3d.Vec3 {
	return m.Vertices[i]
}

// GetFace returns the vertex indices for face i.
// Implements render.MeshSource interface.
func (m *Mesh) GetFace(i int) [3]int {
	return m.Faces[i].V
}

// GetFaceMaterial returns the material index for face i.
// Returns -1 if no material assigned.
func (m *Mesh) GetFaceMaterial(i int) int {
	return m.Faces[i].Material
}

// GetMaterial returns the material at index i.
// Returns nil if index is out of bounds or -1.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// MaterialIndex returns the index of the material called name, or -1.
func (m *Mesh) MaterialIndex(name string) int {
	for i, mat := range m.Materials {
		if mat.Name == name {
			return i
		}
	}
	return NoMaterial
}

// ClearMaterials drops every material and detaches the faces from them.
func (m *Mesh) ClearMaterials() {
	m.Materials = nil
	for i := range m.Faces {
		m.Faces[i].Material = NoMaterial
	}
}

// MaterialCount returns the number of materials.
func (m *Mesh) MaterialCount() int {
	return len(m.Materials)
}

// DiffuseColors returns the diffuse color of every material, indexed like
// Materials.
func (m *Mesh) DiffuseColors() []colorful.Color {
	colors := make([]colorful.Color, len(m.Materials))
	for i, mat := range m.Materials {
		colors[i] = mat.Diffuse
	}
	return colors
}

// GetBounds returns the axis-aligned bounding box.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}
