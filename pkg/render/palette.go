package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// MinColorSum is the smallest R+G+B sum a material color is shown with.
// Darker colors are lifted so they stay visible on a black background.
const MinColorSum = 0.14

// Palette maps material ids to terminal colors.
type Palette struct {
	colors []color.Color
}

// NewPalette creates a palette from diffuse material colors, indexed by
// material id.
func NewPalette(diffuse []colorful.Color) *Palette {
	p := &Palette{colors: make([]color.Color, len(diffuse))}
	for i, c := range diffuse {
		p.colors[i] = Lift(c)
	}
	return p
}

// Len returns the number of materials in the palette.
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.colors)
}

// Color returns the color of a material, or nil for NoMaterial, unknown
// ids and a nil palette.
func (p *Palette) Color(material int) color.Color {
	if p == nil || material < 0 || material >= len(p.colors) {
		return nil
	}
	return p.colors[material]
}

// Lift brightens colors whose channel sum is below MinColorSum by spreading
// the missing amount over the three channels, then clamps to the RGB
// cube.
func Lift(c colorful.Color) colorful.Color {
	if sum := c.R + c.G + c.B; sum < MinColorSum {
		rem := (MinColorSum - sum) / 3
		c.R += rem
		c.G += rem
		c.B += rem
	}
	return c.Clamped()
}
