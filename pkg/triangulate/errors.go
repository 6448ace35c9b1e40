package triangulate

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPolygon is returned for polygons that cannot be triangulated:
	// fewer than three vertices, or no usable plane.
	ErrInvalidPolygon = errors.New("invalid polygon")

	// ErrDegeneratePolygon is returned when every consecutive vertex triple
	// is collinear, so no reference normal exists. It wraps ErrInvalidPolygon.
	ErrDegeneratePolygon = fmt.Errorf("%w: degenerate, no usable plane normal", ErrInvalidPolygon)

	// ErrIndexOutOfRange reports a polygon index outside the point slice.
	// It signals a caller bug rather than bad input geometry.
	ErrIndexOutOfRange = errors.New("polygon index out of range")
)

// IndexError describes a polygon entry that does not address a point.
type IndexError struct {
	Position int // Position within the polygon
	Index    int // Offending point index
	Points   int // Number of points supplied
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("polygon vertex %d references point %d, have %d points", e.Position, e.Index, e.Points)
}

// Unwrap allows errors.Is(err, ErrIndexOutOfRange).
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
