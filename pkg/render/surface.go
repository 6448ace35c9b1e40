// Package render rasterizes triangles onto a character surface with a depth
// buffer and prints the result to terminals.
package render

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"iter"
	"math"
	"strings"

	"github.com/taigrr/asciiview/pkg/math3d"
)

// NoMaterial marks a cell that carries no material color.
const NoMaterial = -1

// Background is the symbol of a cell no triangle has reached.
const Background = ' '

// ErrInvalidSurface is returned for non-positive surface dimensions.
var ErrInvalidSurface = errors.New("invalid surface dimensions")

// Cell is one character of the surface.
type Cell struct {
	Depth    float64 // Depth of the nearest triangle, +Inf when untouched
	Symbol   rune    // Shading symbol
	Material int     // Material id, NoMaterial when untouched
}

// ScreenTriangle is a triangle already mapped into the surface's logical
// coordinates: x grows right, y grows down and z is depth.
type ScreenTriangle [3]math3d.Vec3

// Surface is a grid of cells covering a logical rectangle.
// Cell (i, j) spans [i*dx, (i+1)*dx) × [j*dy, (j+1)*dy) and is sampled at
// its center.
type Surface struct {
	Width         int     // Columns
	Height        int     // Rows
	LogicalWidth  float64 // Logical extent along x
	LogicalHeight float64 // Logical extent along y
	Cells         []Cell  // Row-major cell data

	dx, dy float64
}

// NewSurface creates a cleared surface of width×height cells spanning the
// logical extent logicalWidth×logicalHeight.
func NewSurface(width, height int, logicalWidth, logicalHeight float64) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d cells", ErrInvalidSurface, width, height)
	}
	if !positive(logicalWidth) || !positive(logicalHeight) {
		return nil, fmt.Errorf("%w: logical extent %gx%g", ErrInvalidSurface, logicalWidth, logicalHeight)
	}
	s := &Surface{
		Width:         width,
		Height:        height,
		LogicalWidth:  logicalWidth,
		LogicalHeight: logicalHeight,
		Cells:         make([]Cell, width*height),
		dx:            logicalWidth / float64(width),
		dy:            logicalHeight / float64(height),
	}
	s.Clear()
	return s, nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// CellSize returns the logical size of one cell.
func (s *Surface) CellSize() (dx, dy float64) {
	return s.dx, s.dy
}

// Clear resets every cell to the untouched state: infinite depth, the
// background symbol and no material.
func (s *Surface) Clear() {
	n := len(s.Cells)
	if n == 0 {
		return
	}
	s.Cells[0] = Cell{Depth: math.Inf(1), Symbol: Background, Material: NoMaterial}
	for i := 1; i < n; i *= 2 {
		copy(s.Cells[i:], s.Cells[:i])
	}
}

// nearer reports whether depth a wins over depth b. Smaller depth is nearer
// to the viewer; Clear seeds +Inf so any finite depth wins.
func nearer(a, b float64) bool {
	return a < b
}

// DrawTriangle rasterizes tri with the given symbol and material.
// Front-facing triangles have positive signed area in surface coordinates;
// with cullBackfaces set, the others are skipped. Zero-area triangles and
// triangles outside the logical extent are no-ops.
func (s *Surface) DrawTriangle(tri ScreenTriangle, cullBackfaces bool, symbol rune, material int) {
	area := math3d.SignedArea2D(tri[0], tri[1], tri[2])
	if area == 0 || math.IsNaN(area) {
		return
	}
	if cullBackfaces && area < 0 {
		return
	}

	normal := math3d.TriangleNormal(tri[0], tri[1], tri[2])
	if normal.Z == 0 {
		return
	}

	tri = sortByX(tri)
	p1, p3 := tri[0], tri[2]

	minY := math.Min(p1.Y, math.Min(tri[1].Y, p3.Y))
	maxY := math.Max(p1.Y, math.Max(tri[1].Y, p3.Y))
	if p3.X < 0 || p1.X > s.LogicalWidth || maxY < 0 || minY > s.LogicalHeight {
		return
	}

	firstCol, lastCol := cellSpan(p1.X, p3.X, s.dx, s.Width)
	for col := firstCol; col <= lastCol; col++ {
		x := (float64(col) + 0.5) * s.dx
		y1 := shortEdgesY(tri, x)
		y2 := longEdgeY(tri, x)
		firstRow, lastRow := cellSpan(math.Min(y1, y2), math.Max(y1, y2), s.dy, s.Height)

		for row := firstRow; row <= lastRow; row++ {
			y := (float64(row) + 0.5) * s.dy
			depth := p1.Z - (normal.X*(x-p1.X)+normal.Y*(y-p1.Y))/normal.Z

			cell := &s.Cells[row*s.Width+col]
			if nearer(depth, cell.Depth) {
				cell.Depth = depth
				cell.Symbol = symbol
				cell.Material = material
			}
		}
	}
}

// sortByX orders the vertices by ascending x, keeping the input order of
// ties.
func sortByX(tri ScreenTriangle) ScreenTriangle {
	for i := range 2 {
		for j := i + 1; j < 3; j++ {
			if tri[i].X > tri[j].X {
				tri[i], tri[j] = tri[j], tri[i]
			}
		}
	}
	return tri
}

// cellSpan returns the cells of a grid with n cells of size step whose
// centers lie in [lo, hi], clamped to the grid. The span is empty when
// first > last.
func cellSpan(lo, hi, step float64, n int) (first, last int) {
	f := math.Floor((lo + step/2) / step)
	l := math.Floor((hi - step/2) / step)
	f = math.Max(f, 0)
	l = math.Min(l, float64(n-1))
	if f > l {
		return 0, -1
	}
	return int(f), int(l)
}

// shortEdgesY returns the y of the boundary formed by edges 1→2 and 2→3 at
// x. The triangle must be sorted by x.
func shortEdgesY(tri ScreenTriangle, x float64) float64 {
	p1, p2, p3 := tri[0], tri[1], tri[2]
	switch {
	case x <= p1.X:
		return p1.Y
	case x >= p3.X:
		return p3.Y
	case x <= p2.X:
		return p1.Y + (p2.Y-p1.Y)*(x-p1.X)/(p2.X-p1.X)
	default:
		return p2.Y + (p3.Y-p2.Y)*(x-p2.X)/(p3.X-p2.X)
	}
}

// longEdgeY returns the y of edge 1→3 at x. The triangle must be sorted
// by x.
func longEdgeY(tri ScreenTriangle, x float64) float64 {
	p1, p3 := tri[0], tri[2]
	switch {
	case x <= p1.X:
		return p1.Y
	case x >= p3.X:
		return p3.Y
	default:
		return p1.Y + (p3.Y-p1.Y)*(x-p1.X)/(p3.X-p1.X)
	}
}

// At returns the cell at column x, row y.
// Returns an untouched cell if out of bounds.
func (s *Surface) At(x, y int) Cell {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return Cell{Depth: math.Inf(1), Symbol: Background, Material: NoMaterial}
	}
	return s.Cells[y*s.Width+x]
}

// Row returns the cells of row y. The slice aliases the surface.
func (s *Surface) Row(y int) []Cell {
	if y < 0 || y >= s.Height {
		return nil
	}
	return s.Cells[y*s.Width : (y+1)*s.Width]
}

// All iterates over the cells in row-major order.
func (s *Surface) All() iter.Seq2[image.Point, Cell] {
	return func(yield func(image.Point, Cell) bool) {
		for y := range s.Height {
			for x := range s.Width {
				if !yield(image.Pt(x, y), s.Cells[y*s.Width+x]) {
					return
				}
			}
		}
	}
}

// WriteTo writes the symbols as plain text, one line per row.
func (s *Surface) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for y := range s.Height {
		for _, c := range s.Row(y) {
			m, _ := bw.WriteRune(c.Symbol)
			n += int64(m)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return n, err
		}
		n++
	}
	return n, bw.Flush()
}

// String returns the symbols as plain text.
func (s *Surface) String() string {
	var sb strings.Builder
	_, _ = s.WriteTo(&sb)
	return sb.String()
}
