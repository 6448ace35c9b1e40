package math3d

// TriangleNormal returns the unit normal of the plane through a, b and c,
// oriented by the right-hand rule over (b-a) × (c-a).
// Degenerate triangles yield the zero vector.
func TriangleNormal(a, b, c Vec3) Vec3 {
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

// TriangleArea returns the unsigned area of the triangle a, b, c.
func TriangleArea(a, b, c Vec3) float64 {
	return b.Sub(a).Cross(c.Sub(a)).Len() / 2
}

// SignedArea2D returns twice the signed area of the triangle's projection
// onto the XY plane. Positive means counter-clockwise when Y points up.
func SignedArea2D(a, b, c Vec3) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}
