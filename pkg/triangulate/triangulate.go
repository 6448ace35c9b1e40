// Package triangulate decomposes planar polygons embedded in 3D space into
// triangles. It handles concave polygons by splitting them along diagonals
// and clipping convex ears, and reports the result in terms of the caller's
// original point indices.
package triangulate

import (
	"fmt"
	"math"

	"github.com/taigrr/asciiview/pkg/math3d"
)

// DefaultContainmentTolerance is the relative slack applied to the
// point-in-triangle area test. A vertex lying exactly on an ear edge
// counts as inside.
const DefaultContainmentTolerance = 1e-5

// degenerateEpsilon scales the squared edge length to decide when the best
// plane normal is too small to trust.
const degenerateEpsilon = 1e-12

// Triangulator decomposes polygons, reusing its scratch memory across calls.
// A Triangulator is not safe for concurrent use.
type Triangulator struct {
	// ContainmentTolerance is the relative slack of the containment test.
	// Zero selects DefaultContainmentTolerance.
	ContainmentTolerance float64

	scratch arena
}

// New returns a Triangulator with default settings.
func New() *Triangulator {
	return &Triangulator{ContainmentTolerance: DefaultContainmentTolerance}
}

// Triangulate is a convenience wrapper around a fresh Triangulator.
func Triangulate(points []math3d.Vec3, polygon []int) ([][3]int, error) {
	return New().Triangulate(points, polygon)
}

// Triangulate splits the polygon, given as indices into points, into
// exactly len(polygon)-2 triangles. Each triangle holds original point
// indices. The polygon is assumed to be planar and simple; vertices that
// stray from the fitted plane are projected onto it.
func (t *Triangulator) Triangulate(points []math3d.Vec3, polygon []int) ([][3]int, error) {
	n := len(polygon)
	if n < 3 {
		return nil, fmt.Errorf("%w: %d vertices, need at least 3", ErrInvalidPolygon, n)
	}
	for pos, idx := range polygon {
		if idx < 0 || idx >= len(points) {
			return nil, &IndexError{Position: pos, Index: idx, Points: len(points)}
		}
	}

	dir1, dir2, ok := fitPlane(points, polygon)
	if !ok {
		return nil, ErrDegeneratePolygon
	}

	t.scratch.reset(n)
	root := t.scratch.alloc(n)
	for i, idx := range polygon {
		p := points[idx]
		t.scratch.set(root, i, math3d.V2(dir1.Dot(p), dir2.Dot(p)), idx)
	}
	ccw := t.signedArea(root) > 0

	out := make([][3]int, 0, n-2)
	out = t.decompose(root, ccw, out)
	t.scratch.release(0)
	return out, nil
}

func (t *Triangulator) tolerance() float64 {
	if t.ContainmentTolerance > 0 {
		return t.ContainmentTolerance
	}
	return DefaultContainmentTolerance
}

// fitPlane picks the consecutive vertex triple with the largest cross
// product and derives an orthonormal in-plane basis from it.
func fitPlane(points []math3d.Vec3, polygon []int) (dir1, dir2 math3d.Vec3, ok bool) {
	n := len(polygon)
	var best, scale float64
	var edge, normal math3d.Vec3
	for i := range n {
		v1 := points[polygon[i]]
		v2 := points[polygon[(i+1)%n]]
		v3 := points[polygon[(i+2)%n]]
		d1 := v1.Sub(v2)
		d2 := v3.Sub(v2)
		scale = math.Max(scale, d1.LenSq())
		c := d1.Cross(d2)
		if m := c.Len(); m > best {
			best, edge, normal = m, d1, c
		}
	}
	if best == 0 || best <= degenerateEpsilon*scale {
		return math3d.Vec3{}, math3d.Vec3{}, false
	}
	dir1 = edge.Normalize()
	dir2 = normal.Normalize().Cross(dir1)
	return dir1, dir2, true
}

// signedArea is twice the negated shoelace area, positive for
// counter-clockwise rings in the projected basis.
func (t *Triangulator) signedArea(s span) float64 {
	var area float64
	for i := range s.n {
		a := t.scratch.pt(s, i)
		b := t.scratch.pt(s, (i+1)%s.n)
		area += (a.X - b.X) * (b.Y + a.Y)
	}
	return area
}

// decompose emits triangles for the sub-polygon s, clipping ears in a loop
// and recursing only when a split is required.
func (t *Triangulator) decompose(s span, ccw bool, out [][3]int) [][3]int {
	if s.n < 3 {
		panic(fmt.Sprintf("triangulate: sub-polygon with %d vertices", s.n))
	}
	for s.n > 3 {
		i1, i2, i3 := t.findEar(s, ccw)
		k := t.farthestInside(s, i1, i2, i3)
		if k < 0 {
			out = append(out, [3]int{t.scratch.index(s, i1), t.scratch.index(s, i2), t.scratch.index(s, i3)})
			t.scratch.remove(s, i2)
			s.n--
			continue
		}
		return t.split(s, i2, k, ccw, out)
	}
	return append(out, [3]int{t.scratch.index(s, 0), t.scratch.index(s, 1), t.scratch.index(s, 2)})
}

// findEar scans candidate middle vertices starting at m/2 and returns the
// first convex one. If none is convex the last candidate is used.
func (t *Triangulator) findEar(s span, ccw bool) (i1, i2, i3 int) {
	m := s.n
	for step := range m {
		i2 = (m/2 + step) % m
		i1 = (i2 + m - 1) % m
		i3 = (i2 + 1) % m
		v1, v2, v3 := t.scratch.pt(s, i1), t.scratch.pt(s, i2), t.scratch.pt(s, i3)
		cross := v3.Sub(v2).Cross(v1.Sub(v2))
		if cross == 0 || (cross > 0) == ccw {
			return i1, i2, i3
		}
	}
	return i1, i2, i3
}

// farthestInside returns the vertex lying inside triangle (i1, i2, i3) that
// is farthest from the chord i1-i3, or -1 when the triangle is empty.
func (t *Triangulator) farthestInside(s span, i1, i2, i3 int) int {
	v1, v2, v3 := t.scratch.pt(s, i1), t.scratch.pt(s, i2), t.scratch.pt(s, i3)
	a := v1.Y - v3.Y
	b := v3.X - v1.X
	c := (v1.X-v3.X)*v1.Y + (v3.Y-v1.Y)*v1.X

	tol := 1 + t.tolerance()
	total := triangleArea(v1, v2, v3)
	if total == 0 {
		return -1
	}
	best, bestDist := -1, -1.0
	for i := range s.n {
		if i == i1 || i == i2 || i == i3 {
			continue
		}
		p := t.scratch.pt(s, i)
		sum := triangleArea(p, v1, v2) + triangleArea(p, v2, v3) + triangleArea(p, v3, v1)
		if sum > total*tol {
			continue
		}
		if d := math.Abs(a*p.X + b*p.Y + c); d > bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// split cuts s along the diagonal (a, b). The ring is rotated so that the
// larger half is a prefix that stays in place; the smaller half is copied
// into fresh arena space and released once both halves are done.
func (t *Triangulator) split(s span, a, b int, ccw bool, out [][3]int) [][3]int {
	m := s.n
	start, end := a, b
	if (a-b+m)%m > (b-a+m)%m {
		start, end = b, a
	}
	pe := (end - start + m) % m
	t.scratch.rotate(s, start)

	mark := t.scratch.mark()
	rest := t.scratch.alloc(m - pe + 1)
	for i := range m - pe {
		t.scratch.set(rest, i, t.scratch.pt(s, pe+i), t.scratch.index(s, pe+i))
	}
	t.scratch.set(rest, m-pe, t.scratch.pt(s, 0), t.scratch.index(s, 0))

	out = t.decompose(span{lo: s.lo, n: pe + 1}, ccw, out)
	out = t.decompose(rest, ccw, out)
	t.scratch.release(mark)
	return out
}

func triangleArea(a, b, c math3d.Vec2) float64 {
	return math.Abs(b.Sub(a).Cross(c.Sub(a))) / 2
}
