package config

import (
	"errors"
	"time"

	"github.com/spf13/pflag"
)

// Flag names shared between RegisterFlags and ApplyFlags.
const (
	FlagConfig      = "config"
	FlagWidth       = "width"
	FlagHeight      = "height"
	FlagDuration    = "duration"
	FlagFPS         = "fps"
	FlagAspect      = "aspect"
	FlagChars       = "chars"
	FlagStretch     = "stretch"
	FlagTop         = "top"
	FlagStaticLight = "static-light"
	FlagZoom        = "zoom"
	FlagColor       = "color"
	FlagLogLevel    = "log-level"
	FlagLogFile     = "log-file"
)

// RegisterFlags adds the config-backed flags to fs. Defaults shown in help
// come from Default; only flags the user sets override the file.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()

	fs.String(FlagConfig, "", "path to a YAML config file")
	fs.IntP(FlagWidth, "w", d.View.Width, "output width in characters (0 uses the terminal width)")
	fs.IntP(FlagHeight, "H", d.View.Height, "output height in characters (0 uses the terminal height)")
	fs.Float64P(FlagDuration, "d", d.Animation.Duration.Seconds(), "stop the animation after this many seconds (0 runs until a key press)")
	fs.IntP(FlagFPS, "f", d.Animation.FPS, "frames per second")
	fs.Float64P(FlagAspect, "a", d.View.Aspect, "height/width ratio of terminal characters")
	fs.StringP(FlagChars, "c", d.View.Chars, "luminance characters, from less to more light")
	fs.BoolP(FlagStretch, "s", d.View.Stretch, "stretch the model regardless of the character ratio")
	fs.BoolP(FlagTop, "t", d.Animation.Top, "let the animation reach maximum elevation")
	fs.BoolP(FlagStaticLight, "l", d.View.StaticLight, "don't rotate the light with the model")
	fs.Float64P(FlagZoom, "z", d.View.Zoom, "zoom level in percent")
	fs.Bool(FlagColor, d.View.Color, "display material colors")
	fs.String(FlagLogLevel, d.Logging.Level, "log level (debug, info, warn, error)")
	fs.String(FlagLogFile, d.Logging.LogFile, "write logs to this file")
}

// ApplyFlags applies the flags the user changed on top of cfg. fs must
// have been populated by RegisterFlags.
func ApplyFlags(cfg *Config, fs *pflag.FlagSet) error {
	var errs []error
	keep := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	var err error

	if fs.Changed(FlagWidth) {
		cfg.View.Width, err = fs.GetInt(FlagWidth)
		keep(err)
	}
	if fs.Changed(FlagHeight) {
		cfg.View.Height, err = fs.GetInt(FlagHeight)
		keep(err)
	}
	if fs.Changed(FlagAspect) {
		cfg.View.Aspect, err = fs.GetFloat64(FlagAspect)
		keep(err)
	}
	if fs.Changed(FlagStretch) {
		cfg.View.Stretch, err = fs.GetBool(FlagStretch)
		keep(err)
	}
	if fs.Changed(FlagZoom) {
		cfg.View.Zoom, err = fs.GetFloat64(FlagZoom)
		keep(err)
	}
	if fs.Changed(FlagChars) {
		cfg.View.Chars, err = fs.GetString(FlagChars)
		keep(err)
	}
	if fs.Changed(FlagStaticLight) {
		cfg.View.StaticLight, err = fs.GetBool(FlagStaticLight)
		keep(err)
	}
	if fs.Changed(FlagColor) {
		cfg.View.Color, err = fs.GetBool(FlagColor)
		keep(err)
	}
	if fs.Changed(FlagFPS) {
		cfg.Animation.FPS, err = fs.GetInt(FlagFPS)
		keep(err)
	}
	if fs.Changed(FlagTop) {
		cfg.Animation.Top, err = fs.GetBool(FlagTop)
		keep(err)
	}
	if fs.Changed(FlagDuration) {
		var secs float64
		secs, err = fs.GetFloat64(FlagDuration)
		cfg.Animation.Duration = time.Duration(secs * float64(time.Second))
		keep(err)
	}
	if fs.Changed(FlagLogLevel) {
		cfg.Logging.Level, err = fs.GetString(FlagLogLevel)
		keep(err)
	}
	if fs.Changed(FlagLogFile) {
		cfg.Logging.LogFile, err = fs.GetString(FlagLogFile)
		keep(err)
	}

	return errors.Join(errs...)
}
