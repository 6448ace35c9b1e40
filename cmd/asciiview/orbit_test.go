package main

import (
	"math"
	"testing"
	"time"
)

func TestOrbitApply(t *testing.T) {
	tests := []struct {
		name     string
		actions  []action
		azimuth  float64
		altitude float64
		zoom     float64
	}{
		{"left", []action{actionLeft}, 15, 0, 100},
		{"right wraps", []action{actionRight}, 345, 0, 100},
		{"full turn", repeat(actionLeft, 24), 0, 0, 100},
		{"up and down", []action{actionUp, actionUp, actionDown}, 0, 15, 100},
		{"altitude clamps high", repeat(actionUp, 13), 0, 180, 100},
		{"altitude clamps low", repeat(actionDown, 13), 0, -180, 100},
		{"zoom in", []action{actionZoomIn, actionZoomIn}, 0, 0, 110},
		{"zoom clamps low", repeat(actionZoomOut, 30), 0, 0, zoomMin},
		{"unbound key", []action{actionNone}, 0, 0, 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := NewOrbit(20, 100)
			for _, a := range tc.actions {
				if !o.Apply(a) {
					t.Fatalf("Apply(%v) asked to quit", a)
				}
			}
			if o.Azimuth != tc.azimuth || o.Altitude != tc.altitude || o.Zoom != tc.zoom {
				t.Errorf("got az %v al %v zoom %v, want %v %v %v",
					o.Azimuth, o.Altitude, o.Zoom, tc.azimuth, tc.altitude, tc.zoom)
			}
		})
	}
}

func repeat(a action, n int) []action {
	out := make([]action, n)
	for i := range out {
		out[i] = a
	}
	return out
}

func TestOrbitZoomClampsHigh(t *testing.T) {
	o := NewOrbit(20, 2000)
	if o.Zoom != zoomMax {
		t.Errorf("initial zoom = %v, want %v", o.Zoom, zoomMax)
	}
	o.Apply(actionZoomIn)
	if o.Zoom != zoomMax {
		t.Errorf("zoom = %v, want %v", o.Zoom, zoomMax)
	}
}

func TestOrbitQuitAndHUD(t *testing.T) {
	o := NewOrbit(20, 100)
	if !o.HUD {
		t.Error("HUD should start visible")
	}
	o.Apply(actionToggleHUD)
	if o.HUD {
		t.Error("HUD should be hidden after toggle")
	}
	if o.Apply(actionQuit) {
		t.Error("actionQuit should report false")
	}
}

func settle(t *testing.T, o *Orbit) {
	t.Helper()
	for range 400 {
		if o.Settled() {
			return
		}
		o.Update()
	}
	t.Fatal("orbit did not settle")
}

func TestOrbitSpringsFollowTargets(t *testing.T) {
	o := NewOrbit(20, 100)
	if !o.Settled() {
		t.Fatal("new orbit should be settled")
	}

	o.Apply(actionLeft)
	o.Apply(actionUp)
	o.Apply(actionZoomOut)
	if o.Settled() {
		t.Fatal("orbit should move after a key press")
	}

	o.Update()
	az, _, _ := o.Displayed()
	if az <= 0 || az >= 15 {
		t.Errorf("after one frame azimuth = %v, want between 0 and 15", az)
	}

	settle(t, o)
	az, al, zoom := o.Displayed()
	if math.Abs(az-15) > 0.01 || math.Abs(al-15) > 0.01 || math.Abs(zoom-95) > 0.01 {
		t.Errorf("settled at az %v al %v zoom %v, want 15 15 95", az, al, zoom)
	}
}

func TestOrbitAzimuthTakesShortWay(t *testing.T) {
	o := NewOrbit(20, 100)
	o.Apply(actionRight)

	for range 400 {
		o.Update()
		if az, _, _ := o.Displayed(); az > 0.01 {
			t.Fatalf("azimuth went the long way: %v", az)
		}
	}

	az, _, _ := o.Displayed()
	if math.Abs(az+15) > 0.01 {
		t.Errorf("azimuth = %v, want -15 (345 the short way)", az)
	}
	if !o.Settled() {
		t.Error("orbit should be settled")
	}
}

func TestHUDLines(t *testing.T) {
	o := NewOrbit(20, 100)
	o.Apply(actionRight)
	o.Apply(actionDown)

	want := []string{"zo: 100", "az: 345", "al: -15"}
	got := hudLines(o)
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFrameDuration(t *testing.T) {
	tests := []struct {
		fps  int
		want time.Duration
	}{
		{1, time.Second},
		{20, 50 * time.Millisecond},
		{30, 33334 * time.Microsecond},
		{60, 16667 * time.Microsecond},
	}

	for _, tc := range tests {
		if got := frameDuration(tc.fps); got != tc.want {
			t.Errorf("frameDuration(%d) = %v, want %v", tc.fps, got, tc.want)
		}
	}
}

func TestAnimationAngles(t *testing.T) {
	tests := []struct {
		name     string
		t        float64
		top      bool
		azimuth  float64
		altitude float64
	}{
		{"start", 0, false, 0, 0.125 * math.Pi},
		{"start top", 0, true, 0, 0.25 * math.Pi},
		{"one second", 1, false, 2, 0.125 * math.Pi * (1 - math.Sin(goldenRatio/4))},
		{"level at the wave crest", math.Pi / 2 / (goldenRatio / 4), false, math.Pi / (goldenRatio / 4), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			az, al := animationAngles(tc.t, tc.top)
			if math.Abs(az-tc.azimuth) > 1e-9 || math.Abs(al-tc.altitude) > 1e-9 {
				t.Errorf("got (%v, %v), want (%v, %v)", az, al, tc.azimuth, tc.altitude)
			}
		})
	}
}
