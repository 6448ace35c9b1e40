package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
)

func paintedSurface(t *testing.T) *Surface {
	t.Helper()
	s := newTestSurface(t, 4, 2, 4, 2)
	s.Cells[0] = Cell{Depth: 0, Symbol: '#', Material: 0}
	s.Cells[1] = Cell{Depth: 0, Symbol: '#', Material: 0}
	s.Cells[2] = Cell{Depth: 0, Symbol: '*', Material: 1}
	s.Cells[3] = Cell{Depth: 0, Symbol: '*', Material: 1}
	s.Cells[5] = Cell{Depth: 0, Symbol: '.', Material: NoMaterial}
	return s
}

func TestWriteStyledPlain(t *testing.T) {
	s := paintedSurface(t)
	var buf bytes.Buffer
	if err := writeStyled(&buf, s, nil); err != nil {
		t.Fatalf("writeStyled() error = %v", err)
	}
	if buf.String() != s.String() {
		t.Errorf("uncolored output = %q, want %q", buf.String(), s.String())
	}
}

func TestWriteStyledColors(t *testing.T) {
	s := paintedSurface(t)
	pal := NewPalette([]colorful.Color{{R: 1}, {B: 1}})

	var buf bytes.Buffer
	if err := writeStyled(&buf, s, pal); err != nil {
		t.Fatalf("writeStyled() error = %v", err)
	}
	out := buf.String()

	if got := ansi.Strip(out); got != s.String() {
		t.Errorf("stripped output = %q, want %q", got, s.String())
	}
	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[0], "\x1b[") {
		t.Errorf("first row has no escape sequences: %q", lines[0])
	}
	if !strings.HasSuffix(lines[0], ansi.ResetStyle) {
		t.Errorf("styled row does not end with a reset: %q", lines[0])
	}
	if strings.Contains(lines[1], "\x1b[") {
		t.Errorf("uncolored row has escape sequences: %q", lines[1])
	}
	// One style per run of equal colors.
	if n := strings.Count(lines[0], ansi.ResetStyle); n != 2 {
		t.Errorf("first row has %d resets, want 2", n)
	}
}

func TestWriteANSI(t *testing.T) {
	s := paintedSurface(t)
	pal := NewPalette([]colorful.Color{{R: 1}, {B: 1}})

	var buf bytes.Buffer
	if err := WriteANSI(&buf, []string{"TERM=xterm-256color"}, s, pal); err != nil {
		t.Fatalf("WriteANSI() error = %v", err)
	}
	if got := ansi.Strip(buf.String()); got != s.String() {
		t.Errorf("stripped output = %q, want %q", got, s.String())
	}
}
