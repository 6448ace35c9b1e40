package models

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/asciiview/pkg/math3d"
	"github.com/taigrr/asciiview/pkg/triangulate"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func boxMesh() *Mesh {
	m := NewMesh("box")
	m.Vertices = []math3d.Vec3{
		math3d.V3(2, 4, 6),
		math3d.V3(6, 4, 6),
		math3d.V3(6, 8, 6),
		math3d.V3(2, 8, 10),
	}
	m.Faces = []Face{{V: [3]int{0, 1, 2}, Material: NoMaterial}, {V: [3]int{0, 2, 3}, Material: NoMaterial}}
	m.CalculateBounds()
	return m
}

func TestCalculateBounds(t *testing.T) {
	m := boxMesh()

	lo, hi := m.GetBounds()
	if lo != math3d.V3(2, 4, 6) || hi != math3d.V3(6, 8, 10) {
		t.Errorf("bounds = %v..%v", lo, hi)
	}
	if got := m.Center(); got != math3d.V3(4, 6, 8) {
		t.Errorf("center = %v, want (4, 6, 8)", got)
	}
	if got := m.Size(); got != math3d.V3(4, 4, 4) {
		t.Errorf("size = %v, want (4, 4, 4)", got)
	}
}

func TestNormalize(t *testing.T) {
	m := boxMesh()
	m.Normalize()

	var maxLen float64
	for _, v := range m.Vertices {
		maxLen = math.Max(maxLen, v.Len())
	}
	if !approxEqual(maxLen, 1) {
		t.Errorf("farthest vertex at %v, want 1", maxLen)
	}

	c := m.Center()
	if !approxEqual(c.X, 0) || !approxEqual(c.Y, 0) || !approxEqual(c.Z, 0) {
		t.Errorf("center = %v, want origin", c)
	}
}

func TestNormalizeSinglePoint(t *testing.T) {
	m := NewMesh("dot")
	m.Vertices = []math3d.Vec3{math3d.V3(3, 3, 3), math3d.V3(3, 3, 3)}
	m.Normalize()

	for _, v := range m.Vertices {
		if v != math3d.Zero3() {
			t.Errorf("vertex = %v, want origin", v)
		}
	}
}

func TestInvertAxes(t *testing.T) {
	tests := []struct {
		name   string
		invert func(*Mesh)
		want   math3d.Vec3
	}{
		{"x", (*Mesh).InvertX, math3d.V3(-6, 4, 6)},
		{"y", (*Mesh).InvertY, math3d.V3(6, -4, 6)},
		{"z", (*Mesh).InvertZ, math3d.V3(6, 4, -6)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := boxMesh()
			before := math3d.TriangleNormal(m.Vertices[0], m.Vertices[1], m.Vertices[2])

			tc.invert(m)

			if got := m.GetVertex(1); got != tc.want {
				t.Errorf("vertex 1 = %v, want %v", got, tc.want)
			}
			if got, want := m.GetFace(0), [3]int{0, 2, 1}; got != want {
				t.Errorf("face 0 = %v, want %v", got, want)
			}

			// Mirroring plus the winding flip keeps a face pointing away from
			// the mirrored body: only the inverted axis changes sign.
			f := m.GetFace(0)
			after := math3d.TriangleNormal(m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]])
			mirrored := before
			switch tc.name {
			case "x":
				mirrored.X = -mirrored.X
			case "y":
				mirrored.Y = -mirrored.Y
			case "z":
				mirrored.Z = -mirrored.Z
			}
			if !approxEqual(after.Sub(mirrored).Len(), 0) {
				t.Errorf("normal = %v, want %v", after, mirrored)
			}

			lo, hi := m.GetBounds()
			for _, v := range m.Vertices {
				if v.Min(lo) != lo || v.Max(hi) != hi {
					t.Errorf("vertex %v outside recalculated bounds %v..%v", v, lo, hi)
				}
			}
		})
	}
}

func TestXZRadius(t *testing.T) {
	m := NewMesh("r")
	m.Vertices = []math3d.Vec3{
		math3d.V3(0, 100, 0),
		math3d.V3(3, -2, 4),
		math3d.V3(-1, 0, 1),
	}
	if got := m.XZRadius(); !approxEqual(got, 5) {
		t.Errorf("XZRadius = %v, want 5", got)
	}
}

func TestAddPolygon(t *testing.T) {
	m := NewMesh("poly")
	m.Vertices = []math3d.Vec3{
		math3d.V3(0, 0, 0),
		math3d.V3(2, 0, 0),
		math3d.V3(2, 2, 0),
		math3d.V3(0, 2, 0),
		math3d.V3(4, 0, 0),
	}
	tri := triangulate.New()

	if err := m.AddPolygon(tri, []int{0, 1, 2, 3}, 3); err != nil {
		t.Fatalf("AddPolygon: %v", err)
	}
	if m.TriangleCount() != 2 {
		t.Fatalf("triangles = %d, want 2", m.TriangleCount())
	}
	for i := range m.Faces {
		if m.GetFaceMaterial(i) != 3 {
			t.Errorf("face %d material = %d, want 3", i, m.GetFaceMaterial(i))
		}
	}

	tests := []struct {
		name    string
		polygon []int
		target  error
	}{
		{"collinear", []int{0, 1, 4}, triangulate.ErrDegeneratePolygon},
		{"too few", []int{0, 1}, triangulate.ErrInvalidPolygon},
		{"out of range", []int{0, 1, 9}, triangulate.ErrIndexOutOfRange},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := m.AddPolygon(tri, tc.polygon, NoMaterial); !errors.Is(err, tc.target) {
				t.Errorf("err = %v, want %v", err, tc.target)
			}
			if m.TriangleCount() != 2 {
				t.Errorf("failed polygon added faces: %d", m.TriangleCount())
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		face    Face
		wantErr bool
	}{
		{"ok", Face{V: [3]int{0, 1, 2}, Material: NoMaterial}, false},
		{"material ok", Face{V: [3]int{0, 1, 3}, Material: 0}, false},
		{"vertex out of range", Face{V: [3]int{0, 1, 4}, Material: NoMaterial}, true},
		{"negative vertex", Face{V: [3]int{-1, 1, 2}, Material: NoMaterial}, true},
		{"material out of range", Face{V: [3]int{0, 1, 2}, Material: 1}, true},
		{"material below NoMaterial", Face{V: [3]int{0, 1, 2}, Material: -2}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := boxMesh()
			m.Materials = []Material{{Name: "only", Diffuse: DefaultDiffuse}}
			m.Faces = []Face{tc.face}
			if err := m.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
