package triangulate

import "github.com/taigrr/asciiview/pkg/math3d"

// span addresses a sub-polygon inside the arena by offset and length, so
// growing the backing slices never invalidates it.
type span struct {
	lo, n int
}

// arena holds the projected coordinates and original indices of every live
// sub-polygon. Allocation is stack-like: alloc pushes, release pops back to
// a mark.
type arena struct {
	pts []math3d.Vec2
	idx []int
}

// reset empties the arena, keeping capacity for a polygon of n vertices.
// Splits copy at most the smaller half, so 3n covers the worst case
// without growing.
func (a *arena) reset(n int) {
	if want := 3 * n; cap(a.idx) < want {
		a.pts = make([]math3d.Vec2, 0, want)
		a.idx = make([]int, 0, want)
	}
	a.pts = a.pts[:0]
	a.idx = a.idx[:0]
}

func (a *arena) alloc(n int) span {
	lo := len(a.idx)
	for range n {
		a.pts = append(a.pts, math3d.Vec2{})
		a.idx = append(a.idx, 0)
	}
	return span{lo: lo, n: n}
}

func (a *arena) mark() int {
	return len(a.idx)
}

func (a *arena) release(mark int) {
	a.pts = a.pts[:mark]
	a.idx = a.idx[:mark]
}

func (a *arena) pt(s span, i int) math3d.Vec2 {
	return a.pts[s.lo+i]
}

func (a *arena) index(s span, i int) int {
	return a.idx[s.lo+i]
}

func (a *arena) set(s span, i int, p math3d.Vec2, index int) {
	a.pts[s.lo+i] = p
	a.idx[s.lo+i] = index
}

// remove deletes vertex i from the sub-polygon, shifting the tail left.
// The caller shrinks the span.
func (a *arena) remove(s span, i int) {
	end := s.lo + s.n
	copy(a.pts[s.lo+i:end-1], a.pts[s.lo+i+1:end])
	copy(a.idx[s.lo+i:end-1], a.idx[s.lo+i+1:end])
}

// rotate shifts the ring left so that vertex r becomes vertex 0.
func (a *arena) rotate(s span, r int) {
	if r == 0 {
		return
	}
	a.reverse(s.lo, s.lo+r)
	a.reverse(s.lo+r, s.lo+s.n)
	a.reverse(s.lo, s.lo+s.n)
}

func (a *arena) reverse(i, j int) {
	for j--; i < j; i, j = i+1, j-1 {
		a.pts[i], a.pts[j] = a.pts[j], a.pts[i]
		a.idx[i], a.idx[j] = a.idx[j], a.idx[i]
	}
}
