// asciiview - ASCII 3D model viewer for the terminal.
// Renders OBJ, STL and glTF models with shaded characters.
//
// Modes:
//
//	default       - Spin the model until a key is pressed or --duration elapses
//	--snap AZ,AL  - Print one frame at the given azimuth/altitude (degrees)
//	--interactive - Rotate by hand
//
// Interactive controls:
//
//	Arrows, H/J/K/L - Rotate 15 degrees
//	+/-, S/A        - Zoom in/out by 5%
//	T               - Toggle HUD
//	Q               - Quit
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/fang"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"github.com/taigrr/asciiview/internal/config"
	"github.com/taigrr/asciiview/internal/logger"
	"github.com/taigrr/asciiview/pkg/models"
	"github.com/taigrr/asciiview/pkg/render"
	"go.uber.org/zap"
)

var version = "dev"

// options holds the flags that only make sense on the command line.
type options struct {
	snap        []float64
	interactive bool
	invertX     bool
	invertY     bool
	invertZ     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newCommand(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "asciiview [flags] MODEL",
		Short: "View OBJ, STL and glTF models as ASCII art in the terminal",
		Long: `asciiview renders 3D models with shaded characters.

By default the model spins until a key is pressed. Use --snap to print a
single frame to stdout, or --interactive to rotate it by hand.

Settings are read from --config, ./asciiview.yaml or the user config
directory; flags override them.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], opts)
		},
	}

	fs := cmd.Flags()
	config.RegisterFlags(fs)
	fs.Float64SliceVar(&opts.snap, "snap", nil, "print one frame at azimuth,altitude in degrees and exit")
	fs.BoolVar(&opts.interactive, "interactive", false, "rotate the camera with the keyboard")
	fs.BoolVarP(&opts.invertX, "invert-x", "X", false, "invert the X axis")
	fs.BoolVarP(&opts.invertY, "invert-y", "Y", false, "invert the Y axis")
	fs.BoolVarP(&opts.invertZ, "invert-z", "Z", false, "invert the Z axis")
	cmd.MarkFlagsMutuallyExclusive("snap", "interactive")

	return cmd
}

func run(cmd *cobra.Command, path string, opts options) error {
	configPath, _ := cmd.Flags().GetString(config.FlagConfig)
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := config.ApplyFlags(cfg, cmd.Flags()); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if opts.snap != nil && len(opts.snap) != 2 {
		return fmt.Errorf("--snap takes azimuth,altitude, got %d values", len(opts.snap))
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	mesh, err := models.Load(path, models.LoadOptions{Materials: cfg.View.Color})
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	if opts.invertX {
		mesh.InvertX()
	}
	if opts.invertY {
		mesh.InvertY()
	}
	if opts.invertZ {
		mesh.InvertZ()
	}

	v, err := newViewer(cfg.View, mesh)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	switch {
	case opts.snap != nil:
		return snap(v, opts.snap[0], opts.snap[1])
	case opts.interactive:
		return fullScreen(ctx, cfg, func(ctx context.Context, scr *screen) error {
			return interactive(ctx, scr, v, cfg.Animation.FPS)
		})
	default:
		return fullScreen(ctx, cfg, func(ctx context.Context, scr *screen) error {
			return animate(ctx, scr, v, cfg.Animation)
		})
	}
}

// snap prints a single frame to stdout.
func snap(v *viewer, azimuth, altitude float64) error {
	cols, rows := v.view.Width, v.view.Height
	if cols == 0 || rows == 0 {
		w, h, err := uv.DefaultTerminal().GetSize()
		if err != nil {
			return fmt.Errorf("terminal size unknown, set --width and --height: %w", err)
		}
		cols, rows = w, h
	}
	if err := v.resize(cols, rows); err != nil {
		return err
	}

	if v.view.Color {
		if p := colorprofile.Detect(os.Stdout, os.Environ()); p == colorprofile.NoTTY || p == colorprofile.Ascii {
			logger.Warn("output does not support colors", zap.String("profile", p.String()))
		}
	}

	v.frame(radians(azimuth), radians(altitude), v.view.Zoom/100)
	return render.WriteANSI(os.Stdout, os.Environ(), v.surface, v.palette)
}

// fullScreen runs mode on the alternate screen. Console logging is turned
// off meanwhile so it cannot tear the display.
func fullScreen(ctx context.Context, cfg *config.Config, mode func(context.Context, *screen) error) error {
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileConfig(cfg.Logging.LogFile), false); err != nil {
		return err
	}

	scr, err := openScreen()
	if err != nil {
		return err
	}
	defer scr.close()

	err = mode(ctx, scr)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func fileConfig(path string) logger.FileConfig {
	if path == "" {
		return logger.FileConfig{}
	}
	return logger.DefaultFileConfig(path)
}

// animate spins the model until a key press, the configured duration or
// cancellation.
func animate(ctx context.Context, scr *screen, v *viewer, anim config.AnimationConfig) error {
	if err := v.resize(scr.width, scr.height); err != nil {
		return err
	}

	step := frameDuration(anim.FPS)
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	start := time.Now()
	zoom := v.view.Zoom / 100
	events := scr.term.Events()

	for frame := 0; ; frame++ {
		az, al := animationAngles(float64(frame)*step.Seconds(), anim.Top)
		v.frame(az, al, zoom)
		if err := scr.present(v, nil); err != nil {
			return fmt.Errorf("display: %w", err)
		}

		if anim.Duration > 0 && time.Since(start) >= anim.Duration {
			return nil
		}

	wait:
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case ev := <-events:
				switch ev := ev.(type) {
				case uv.WindowSizeEvent:
					scr.resize(ev.Width, ev.Height)
					if err := v.resize(ev.Width, ev.Height); err != nil {
						return err
					}
				case uv.KeyPressEvent:
					return nil
				}
			case <-ticker.C:
				break wait
			}
		}
	}
}

// interactive lets the user drive the camera. The scene is redrawn while
// the springs move and after every event.
func interactive(ctx context.Context, scr *screen, v *viewer, fps int) error {
	if err := v.resize(scr.width, scr.height); err != nil {
		return err
	}

	orbit := NewOrbit(fps, v.view.Zoom)
	ticker := time.NewTicker(frameDuration(fps))
	defer ticker.Stop()

	events := scr.term.Events()
	dirty := true

	for {
		if dirty {
			az, al, zoom := orbit.Displayed()
			v.frame(radians(az), radians(al), zoom/100)
			var overlay []string
			if orbit.HUD {
				overlay = hudLines(orbit)
			}
			if err := scr.present(v, overlay); err != nil {
				return fmt.Errorf("display: %w", err)
			}
			dirty = false
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				scr.resize(ev.Width, ev.Height)
				if err := v.resize(ev.Width, ev.Height); err != nil {
					return err
				}
				dirty = true
			case uv.KeyPressEvent:
				if !orbit.Apply(keyAction(ev)) {
					return nil
				}
				dirty = true
			}
		case <-ticker.C:
			if !orbit.Settled() {
				orbit.Update()
				dirty = true
			}
		}
	}
}

// keyAction maps a key press to a camera action.
func keyAction(ev uv.KeyPressEvent) action {
	switch {
	case ev.MatchString("q", "ctrl+c"):
		return actionQuit
	case ev.MatchString("t"):
		return actionToggleHUD
	case ev.MatchString("h", "left"):
		return actionLeft
	case ev.MatchString("l", "right"):
		return actionRight
	case ev.MatchString("k", "up"):
		return actionUp
	case ev.MatchString("j", "down"):
		return actionDown
	case ev.MatchString("+", "=", "s"):
		return actionZoomIn
	case ev.MatchString("-", "_", "a"):
		return actionZoomOut
	}
	return actionNone
}

// hudLines reports the camera targets.
func hudLines(o *Orbit) []string {
	return []string{
		fmt.Sprintf("zo:%4.0f", o.Zoom),
		fmt.Sprintf("az: %3.0f", o.Azimuth),
		fmt.Sprintf("al: %3.0f", o.Altitude),
	}
}
