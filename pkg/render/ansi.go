package render

import (
	"bufio"
	"image/color"
	"io"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/x/ansi"
)

// WriteANSI prints the surface to w, coloring material cells through pal.
// Colors are downsampled to what the terminal described by environ
// supports, and dropped entirely when w is not a terminal.
func WriteANSI(w io.Writer, environ []string, s *Surface, pal *Palette) error {
	cw := colorprofile.NewWriter(w, environ)
	return writeStyled(cw, s, pal)
}

// writeStyled emits full-color SGR sequences, switching style only when
// the color changes along a row and resetting at the end of every styled
// row.
func writeStyled(w io.Writer, s *Surface, pal *Palette) error {
	bw := bufio.NewWriter(w)
	for y := range s.Height {
		var current color.Color
		for _, c := range s.Row(y) {
			fg := pal.Color(c.Material)
			if fg != current {
				if current != nil {
					bw.WriteString(ansi.ResetStyle)
				}
				if fg != nil {
					bw.WriteString(ansi.Style{}.ForegroundColor(fg).String())
				}
				current = fg
			}
			bw.WriteRune(c.Symbol)
		}
		if current != nil {
			bw.WriteString(ansi.ResetStyle)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
