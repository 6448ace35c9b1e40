package render

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// Draw writes the surface into the screen area, one cell per character.
// Cells carrying a material are colored through pal; a nil pal draws
// everything in the terminal's default color.
func (s *Surface) Draw(scr uv.Screen, area uv.Rectangle, pal *Palette) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		y := row - area.Min.Y
		if y >= s.Height {
			break
		}
		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= s.Width {
				break
			}
			c := s.Cells[y*s.Width+x]
			scr.SetCell(col, row, &uv.Cell{
				Content: string(c.Symbol),
				Width:   1,
				Style:   uv.Style{Fg: pal.Color(c.Material)},
			})
		}
	}
}

// DrawText writes a single line of text into the screen starting at (x, y),
// clipped to the screen bounds.
func DrawText(scr uv.Screen, x, y int, text string, style uv.Style) {
	bounds := scr.Bounds()
	if y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}
	for _, r := range text {
		if x >= bounds.Max.X {
			return
		}
		if x >= bounds.Min.X {
			scr.SetCell(x, y, &uv.Cell{Content: string(r), Width: 1, Style: style})
		}
		x++
	}
}
