package main

import (
	"math"
	"time"
)

const (
	goldenRatio   = 1.6180339887
	azimuthSpeed  = 2.0             // radians per second
	altitudeSpeed = goldenRatio / 4 // radians per second of the elevation wave
	lowElevation  = 0.125           // fraction of pi
	fullElevation = 0.25            // fraction of pi, with --top
)

// frameDuration rounds one frame up to a whole microsecond.
func frameDuration(fps int) time.Duration {
	return time.Duration((1_000_000+fps-1)/fps) * time.Microsecond
}

// animationAngles returns the camera at t seconds into the animation, in
// radians. The azimuth spins steadily while the altitude swings between
// level and the peak elevation.
func animationAngles(t float64, top bool) (azimuth, altitude float64) {
	peak := lowElevation
	if top {
		peak = fullElevation
	}
	return azimuthSpeed * t, peak * math.Pi * (1 - math.Sin(altitudeSpeed*t))
}
