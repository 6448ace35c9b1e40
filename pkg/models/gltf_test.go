package models

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/qmuntal/gltf"
)

// quadDocument builds an in-memory document holding a unit quad made of two
// indexed triangles and one red material.
func quadDocument(t *testing.T, indices []uint16) *gltf.Document {
	t.Helper()

	var buf bytes.Buffer
	positions := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 1, 0.5}
	for _, v := range []any{positions, indices} {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			t.Fatal(err)
		}
	}

	return &gltf.Document{
		Buffers: []*gltf.Buffer{{ByteLength: buf.Len(), Data: buf.Bytes()}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: 48},
			{Buffer: 0, ByteOffset: 48, ByteLength: 2 * len(indices)},
		},
		Accessors: []*gltf.Accessor{
			{BufferView: gltf.Index(0), ComponentType: gltf.ComponentFloat, Count: 4, Type: gltf.AccessorVec3},
			{BufferView: gltf.Index(1), ComponentType: gltf.ComponentUshort, Count: len(indices), Type: gltf.AccessorScalar},
		},
		Materials: []*gltf.Material{
			{Name: "red", PBRMetallicRoughness: &gltf.PBRMetallicRoughness{BaseColorFactor: &[4]float64{1, 0, 0, 1}}},
			{Name: "plain"},
		},
		Meshes: []*gltf.Mesh{{
			Name: "quad",
			Primitives: []*gltf.Primitive{{
				Attributes: map[string]int{gltf.POSITION: 0},
				Indices:    gltf.Index(1),
				Material:   gltf.Index(0),
			}},
		}},
	}
}

func TestMeshFromDocument(t *testing.T) {
	m, err := meshFromDocument(quadDocument(t, []uint16{0, 1, 2, 2, 1, 3}), "quad.glb")
	if err != nil {
		t.Fatalf("meshFromDocument: %v", err)
	}

	if m.VertexCount() != 4 || m.TriangleCount() != 2 {
		t.Fatalf("got %d vertices, %d triangles; want 4, 2", m.VertexCount(), m.TriangleCount())
	}
	// Mirrored along Z with the winding flipped.
	if got, want := m.GetFace(0), [3]int{0, 2, 1}; got != want {
		t.Errorf("face 0 = %v, want %v", got, want)
	}
	if got, want := m.GetFace(1), [3]int{2, 3, 1}; got != want {
		t.Errorf("face 1 = %v, want %v", got, want)
	}
	if got := m.GetVertex(3).Z; got != -0.5 {
		t.Errorf("vertex 3 z = %v, want -0.5", got)
	}

	if m.MaterialCount() != 2 {
		t.Fatalf("materials = %d, want 2", m.MaterialCount())
	}
	if got := m.GetMaterial(0).Diffuse; got.R != 1 || got.G != 0 || got.B != 0 {
		t.Errorf("red diffuse = %v", got)
	}
	if got := m.GetMaterial(1).Diffuse; got != DefaultDiffuse {
		t.Errorf("material without base color = %v, want %v", got, DefaultDiffuse)
	}
	if m.GetFaceMaterial(0) != 0 || m.GetFaceMaterial(1) != 0 {
		t.Errorf("faces should use material 0")
	}
}

func TestMeshFromDocumentNonIndexed(t *testing.T) {
	doc := quadDocument(t, []uint16{0, 1, 2})
	doc.Meshes[0].Primitives[0].Indices = nil
	doc.Meshes[0].Primitives[0].Material = nil

	m, err := meshFromDocument(doc, "tri.gltf")
	if err != nil {
		t.Fatalf("meshFromDocument: %v", err)
	}
	// Four positions make one full triangle; the fourth is unused.
	if m.TriangleCount() != 1 {
		t.Fatalf("triangles = %d, want 1", m.TriangleCount())
	}
	if m.GetFaceMaterial(0) != NoMaterial {
		t.Errorf("material = %d, want NoMaterial", m.GetFaceMaterial(0))
	}
}

func TestMeshFromDocumentErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*gltf.Document)
	}{
		{"index past positions", func(d *gltf.Document) { d.Buffers[0].Data[52] = 7 }},
		{"accessor past buffer", func(d *gltf.Document) { d.Accessors[0].Count = 40 }},
		{"missing buffer view", func(d *gltf.Document) { d.Accessors[0].BufferView = nil }},
		{"wrong position type", func(d *gltf.Document) { d.Accessors[0].Type = gltf.AccessorVec2 }},
		{"missing accessor", func(d *gltf.Document) {
			d.Meshes[0].Primitives[0].Attributes = map[string]int{gltf.POSITION: 9}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := quadDocument(t, []uint16{0, 1, 2})
			tc.mutate(doc)
			if _, err := meshFromDocument(doc, "broken.glb"); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadGLTFInvalidPath(t *testing.T) {
	if _, err := LoadGLTF("/nonexistent/path.glb"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}
