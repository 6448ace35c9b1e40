package render

// FitLogical returns the logical extent of a cols×rows surface that holds a
// model needing requiredX logical units across and one unit of height.
// charAspect is a character's height divided by its width. Unless stretch
// is set, one axis grows so that cells keep their on-screen proportions.
func FitLogical(cols, rows int, charAspect, requiredX float64, stretch bool) (logicalWidth, logicalHeight float64) {
	const requiredY = 1.0
	if stretch {
		return requiredX, requiredY
	}
	rel := float64(cols) / (float64(rows) * charAspect)
	if rel*requiredY >= requiredX {
		return requiredY * rel, requiredY
	}
	return requiredX, requiredX / rel
}

// NewFittedSurface creates a surface sized by FitLogical.
func NewFittedSurface(cols, rows int, charAspect, requiredX float64, stretch bool) (*Surface, error) {
	lw, lh := FitLogical(cols, rows, charAspect, requiredX, stretch)
	return NewSurface(cols, rows, lw, lh)
}
