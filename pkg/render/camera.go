package render

import (
	"math"

	"github.com/taigrr/asciiview/pkg/math3d"
)

// Camera is an orthographic orbit camera around the origin.
type Camera struct {
	Azimuth  float64 // Rotation around the Y axis in radians
	Altitude float64 // Elevation in radians, positive looks from above
	Zoom     float64 // Scale factor, 1 maps the unit cube onto the surface height
}

// NewCamera creates a camera looking along +Z with unit zoom.
func NewCamera() *Camera {
	return &Camera{Zoom: 1}
}

// SetDegrees sets azimuth and altitude from degrees.
func (c *Camera) SetDegrees(azimuth, altitude float64) {
	c.Azimuth = azimuth * math.Pi / 180
	c.Altitude = altitude * math.Pi / 180
}

// Rotate adds the given angles (in radians).
func (c *Camera) Rotate(deltaAzimuth, deltaAltitude float64) {
	c.Azimuth += deltaAzimuth
	c.Altitude += deltaAltitude
}

// View returns the camera's rotation with its trigonometry precomputed,
// for use over one frame.
func (c *Camera) View() View {
	return View{
		azCos: math.Cos(c.Azimuth),
		azSin: math.Sin(c.Azimuth),
		alCos: math.Cos(-c.Altitude),
		alSin: math.Sin(-c.Altitude),
		zoom:  c.Zoom,
	}
}

// View is a frozen camera pose.
type View struct {
	azCos, azSin float64
	alCos, alSin float64
	zoom         float64
}

// Rotate turns a model-space point about Y by the azimuth, then about X by
// the negated altitude.
func (v View) Rotate(p math3d.Vec3) math3d.Vec3 {
	return p.RotateY(v.azCos, v.azSin).RotateX(v.alCos, v.alSin)
}

// ToSurface maps a point of the [-1,1]^3 view cube into the logical
// coordinates of a surface: x right, y down, depth growing away from the
// viewer.
func (v View) ToSurface(p math3d.Vec3, logicalWidth, logicalHeight float64) math3d.Vec3 {
	return math3d.V3(
		0.5*logicalWidth+0.5*p.X*v.zoom,
		0.5*logicalHeight-0.5*p.Y*v.zoom,
		0.5+0.5*p.Z*v.zoom,
	)
}
