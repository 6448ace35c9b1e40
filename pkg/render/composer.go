package render

import "github.com/taigrr/asciiview/pkg/math3d"

// MeshSource is implemented by models.Mesh. It lets the composer draw
// meshes without importing the models package.
type MeshSource interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) math3d.Vec3
	GetFace(i int) [3]int
	GetFaceMaterial(i int) int
}

// Composer draws whole meshes onto a surface through a camera and shader.
type Composer struct {
	Camera *Camera
	Shader *Shader
	Color  bool // Record face materials in cells
}

// NewComposer creates a composer.
func NewComposer(camera *Camera, shader *Shader) *Composer {
	return &Composer{Camera: camera, Shader: shader}
}

// Frame clears the surface and draws the mesh.
func (c *Composer) Frame(s *Surface, mesh MeshSource) {
	s.Clear()
	c.DrawMesh(s, mesh)
}

// DrawMesh draws every face of mesh, in order, with backface culling.
// The mesh is expected to fit the unit sphere.
func (c *Composer) DrawMesh(s *Surface, mesh MeshSource) {
	view := c.Camera.View()
	lw, lh := s.LogicalWidth, s.LogicalHeight

	for i := range mesh.TriangleCount() {
		face := mesh.GetFace(i)

		var model, tri ScreenTriangle
		for k, idx := range face {
			model[k] = mesh.GetVertex(idx)
			tri[k] = view.ToSurface(view.Rotate(model[k]), lw, lh)
		}

		var normal math3d.Vec3
		if c.Shader.Static {
			a := view.ToSurface(model[0], lw, lh)
			b := view.ToSurface(model[1], lw, lh)
			d := view.ToSurface(model[2], lw, lh)
			normal = math3d.TriangleNormal(a, b, d)
		} else {
			normal = math3d.TriangleNormal(tri[0], tri[1], tri[2])
		}

		material := NoMaterial
		if c.Color {
			material = mesh.GetFaceMaterial(i)
		}
		s.DrawTriangle(tri, true, c.Shader.Symbol(normal), material)
	}
}
