package main

import (
	"context"
	"fmt"
	"image"
	"math"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/asciiview/internal/config"
	"github.com/taigrr/asciiview/pkg/models"
	"github.com/taigrr/asciiview/pkg/render"
)

// viewer renders one mesh with a fixed configuration onto a surface that
// follows the terminal size.
type viewer struct {
	view     config.ViewConfig
	mesh     *models.Mesh
	camera   *render.Camera
	composer *render.Composer
	palette  *render.Palette
	surface  *render.Surface
}

func newViewer(view config.ViewConfig, mesh *models.Mesh) (*viewer, error) {
	shader, err := render.NewShader(view.Chars, view.StaticLight)
	if err != nil {
		return nil, err
	}

	v := &viewer{
		view:   view,
		mesh:   mesh,
		camera: render.NewCamera(),
	}
	v.composer = render.NewComposer(v.camera, shader)
	if view.Color {
		v.composer.Color = true
		v.palette = render.NewPalette(mesh.DiffuseColors())
	}
	v.camera.Zoom = view.Zoom / 100
	return v, nil
}

// resize recreates the surface for a cols×rows terminal. Explicit sizes in
// the configuration win over the terminal's.
func (v *viewer) resize(cols, rows int) error {
	if v.view.Width > 0 {
		cols = v.view.Width
	}
	if v.view.Height > 0 {
		rows = v.view.Height
	}
	s, err := render.NewFittedSurface(cols, rows, v.view.Aspect, v.mesh.XZRadius(), v.view.Stretch)
	if err != nil {
		return fmt.Errorf("surface %dx%d: %w", cols, rows, err)
	}
	v.surface = s
	return nil
}

// frame draws the mesh with the camera at the given angles in radians and
// zoom factor.
func (v *viewer) frame(azimuth, altitude, zoom float64) {
	v.camera.Azimuth = azimuth
	v.camera.Altitude = altitude
	v.camera.Zoom = zoom
	v.composer.Frame(v.surface, v.mesh)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// screen owns the terminal while a full-screen mode runs.
type screen struct {
	term          *uv.Terminal
	width, height int
}

func openScreen() (*screen, error) {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return nil, fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return nil, fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	return &screen{term: term, width: width, height: height}, nil
}

// resize follows a window size event.
func (s *screen) resize(width, height int) {
	s.width, s.height = width, height
	s.term.Erase()
	s.term.Resize(width, height)
}

// present draws the surface and the overlay lines, then flushes.
func (s *screen) present(v *viewer, overlay []string) error {
	area := uv.Rectangle(image.Rect(0, 0, s.width, s.height))
	v.surface.Draw(s.term, area, v.palette)
	for row, line := range overlay {
		render.DrawText(s.term, 0, row, line, uv.Style{})
	}
	return s.term.Display()
}

func (s *screen) close() {
	s.term.ExitAltScreen()
	s.term.ShowCursor()
	s.term.Shutdown(context.Background())
}
