package main

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	angleStep = 15.0 // degrees per key press
	zoomStep  = 5.0  // percent per key press
	zoomMin   = 5.0
	zoomMax   = 1000.0

	// Spring tuning for the displayed camera: fast and critically damped,
	// so a key press settles in a few frames without overshoot.
	springFrequency = 8.0
	springDamping   = 1.0

	settleEpsilon = 1e-3
)

// action is a camera command bound to a key in interactive mode.
type action int

const (
	actionNone action = iota
	actionLeft
	actionRight
	actionUp
	actionDown
	actionZoomIn
	actionZoomOut
	actionToggleHUD
	actionQuit
)

// springAxis is one displayed camera coordinate chasing its target.
type springAxis struct {
	pos, vel float64
}

func (a *springAxis) update(s harmonica.Spring, target float64) {
	a.pos, a.vel = s.Update(a.pos, a.vel, target)
}

func (a *springAxis) settled(target float64) bool {
	return math.Abs(a.pos-target) < settleEpsilon && math.Abs(a.vel) < settleEpsilon
}

// Orbit holds the interactive camera. Azimuth, Altitude and Zoom are the
// targets set by key presses; the camera that is drawn follows them through
// springs.
type Orbit struct {
	Azimuth  float64 // degrees in [0, 360)
	Altitude float64 // degrees in [-180, 180]
	Zoom     float64 // percent in [zoomMin, zoomMax]
	HUD      bool

	spring       harmonica.Spring
	az, al, zoom springAxis
}

// NewOrbit creates an orbit at the origin angles, already settled on zoom.
func NewOrbit(fps int, zoom float64) *Orbit {
	zoom = clamp(zoom, zoomMin, zoomMax)
	return &Orbit{
		Zoom:   zoom,
		HUD:    true,
		spring: harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping),
		zoom:   springAxis{pos: zoom},
	}
}

// Apply changes the targets for a. It reports false for actionQuit.
func (o *Orbit) Apply(a action) bool {
	switch a {
	case actionLeft:
		o.Azimuth += angleStep
	case actionRight:
		o.Azimuth -= angleStep
	case actionUp:
		o.Altitude += angleStep
	case actionDown:
		o.Altitude -= angleStep
	case actionZoomIn:
		o.Zoom += zoomStep
	case actionZoomOut:
		o.Zoom -= zoomStep
	case actionToggleHUD:
		o.HUD = !o.HUD
	case actionQuit:
		return false
	}

	o.Azimuth = math.Mod(o.Azimuth, 360)
	if o.Azimuth < 0 {
		o.Azimuth += 360
	}
	o.Altitude = clamp(o.Altitude, -180, 180)
	o.Zoom = clamp(o.Zoom, zoomMin, zoomMax)
	return true
}

// azimuthTarget is the target azimuth as seen from the displayed one, so the
// spring takes the short way around the circle.
func (o *Orbit) azimuthTarget() float64 {
	d := math.Mod(o.Azimuth-o.az.pos, 360)
	switch {
	case d > 180:
		d -= 360
	case d <= -180:
		d += 360
	}
	return o.az.pos + d
}

// Update advances the displayed camera by one frame.
func (o *Orbit) Update() {
	o.az.update(o.spring, o.azimuthTarget())
	o.al.update(o.spring, o.Altitude)
	o.zoom.update(o.spring, o.Zoom)
}

// Settled reports whether the displayed camera has reached the targets.
func (o *Orbit) Settled() bool {
	return o.az.settled(o.azimuthTarget()) && o.al.settled(o.Altitude) && o.zoom.settled(o.Zoom)
}

// Displayed returns the drawn camera: azimuth and altitude in degrees, zoom
// in percent.
func (o *Orbit) Displayed() (azimuth, altitude, zoom float64) {
	return o.az.pos, o.al.pos, o.zoom.pos
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
