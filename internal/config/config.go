// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// DefaultChars is the luminance ramp, from least to most light.
const DefaultChars = ".,':;!+*=#$@"

// Config holds all viewer settings.
type Config struct {
	View      ViewConfig      `yaml:"view"`
	Animation AnimationConfig `yaml:"animation"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ViewConfig holds surface and shading settings.
type ViewConfig struct {
	Width       int     `yaml:"width"`  // 0 follows the terminal
	Height      int     `yaml:"height"` // 0 follows the terminal
	Aspect      float64 `yaml:"aspect"` // character height/width
	Stretch     bool    `yaml:"stretch"`
	Zoom        float64 `yaml:"zoom"` // percent
	Chars       string  `yaml:"chars"`
	StaticLight bool    `yaml:"static_light"`
	Color       bool    `yaml:"color"`
}

// AnimationConfig holds the automatic rotation settings.
type AnimationConfig struct {
	FPS      int           `yaml:"fps"`
	Duration time.Duration `yaml:"duration"` // 0 runs until a key press
	Top      bool          `yaml:"top"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Default returns a Config with the viewer's default values.
func Default() *Config {
	return &Config{
		View: ViewConfig{
			Aspect: 1.8,
			Zoom:   100,
			Chars:  DefaultChars,
		},
		Animation: AnimationConfig{
			FPS: 20,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Validate checks the values a viewer cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.View.Width < 0:
		return fmt.Errorf("%w: width %d", ErrInvalid, c.View.Width)
	case c.View.Height < 0:
		return fmt.Errorf("%w: height %d", ErrInvalid, c.View.Height)
	case c.View.Aspect <= 0:
		return fmt.Errorf("%w: aspect %g", ErrInvalid, c.View.Aspect)
	case c.View.Zoom <= 0:
		return fmt.Errorf("%w: zoom %g", ErrInvalid, c.View.Zoom)
	case c.View.Chars == "":
		return fmt.Errorf("%w: empty luminance chars", ErrInvalid)
	case c.Animation.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.Animation.FPS)
	case c.Animation.Duration < 0:
		return fmt.Errorf("%w: duration %v", ErrInvalid, c.Animation.Duration)
	}
	return nil
}
