// Package app wires configuration, assets and the engine into a running viewer.
package app

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/fuel3d/fuel/internal/assets"
	"github.com/fuel3d/fuel/internal/config"
	"github.com/fuel3d/fuel/internal/engine/control"
	"github.com/fuel3d/fuel/internal/engine/debug"
	"github.com/fuel3d/fuel/internal/engine/gfx"
	"github.com/fuel3d/fuel/internal/engine/input"
	"github.com/fuel3d/fuel/internal/engine/scene"
	"github.com/fuel3d/fuel/internal/logger"
)

// Display is the window the app presents to and reads events from.
type Display interface {
	input.Source
	Size() (width, height int)
	SwapBuffers()
	SetTitle(title string)
	WarpCursor(x, y int)
	HideCursor()
}

// App owns the scene and runs the frame loop.
type App struct {
	dev     gfx.Device
	display Display

	scene   *scene.Scene
	control *control.Control
	input   *input.Input
	shots   *debug.ScreenshotCapture
	pacer   *Pacer
	title   string

	log *zap.Logger
}

// New builds the configured scene on dev. The display's current size sets
// the viewport and camera aspect.
func New(cfg *config.Config, dev gfx.Device, display Display, manager *assets.Manager) (*App, error) {
	log := logger.Named("app")

	width, height := display.Size()
	dev.Viewport(width, height)

	s := scene.New(dev, NewCamera(cfg.Camera, width, height))
	s.ClearColor = mgl32.Vec4(cfg.Graphics.ClearColor)
	s.SetPolygonMode(gfx.ParsePolygonMode(cfg.Graphics.PolygonMode))

	b := NewBuilder(dev, manager, cfg.Graphics)
	if err := b.Populate(s, cfg.Scene.Objects); err != nil {
		s.Release()
		return nil, fmt.Errorf("building scene: %w", err)
	}

	display.HideCursor()
	display.WarpCursor(width/2, height/2)

	log.Info("scene ready",
		zap.Int("objects", s.Len()),
		zap.Int("width", width),
		zap.Int("height", height),
	)

	return &App{
		dev:     dev,
		display: display,
		scene:   s,
		control: control.New(dev, s),
		input:   input.New(),
		shots:   debug.NewScreenshotCapture(cfg.Graphics.ScreenshotDir, "fuel"),
		pacer:   NewPacer(cfg.Graphics.FPSLimit),
		title:   cfg.Window.Title,
		log:     log,
	}, nil
}

// Scene returns the scene being rendered.
func (a *App) Scene() *scene.Scene { return a.scene }

// Control returns the input controller.
func (a *App) Control() *control.Control { return a.control }

// Run renders frames until a stop is requested or a graphics error occurs.
func (a *App) Run() error {
	a.log.Info("starting render loop", zap.Duration("frame_budget", a.pacer.Budget()))

	var dt time.Duration
	frameCount := 0
	fpsTimer := time.Now()

	for a.control.Running() {
		if err := a.Frame(float32(dt.Seconds())); err != nil {
			return err
		}
		dt = a.pacer.Wait()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.reportFPS(frameCount, dt)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	a.log.Info("render loop stopped")
	return nil
}

// Frame processes input, then draws and presents one frame. dt is the
// previous frame's duration in seconds. Nothing is drawn once stopped.
func (a *App) Frame(dt float32) error {
	a.input.Update(a.display)
	a.control.Update(a.input, dt)
	if !a.control.Running() {
		return nil
	}

	a.scene.Render()
	if err := a.dev.Err(); err != nil {
		return fmt.Errorf("rendering frame: %w", err)
	}

	if a.control.ScreenshotRequested() {
		w, h := a.display.Size()
		if path, err := a.shots.Capture(a.dev, w, h); err != nil {
			a.log.Error("screenshot failed", zap.Error(err))
		} else {
			a.log.Info("screenshot saved", zap.String("path", path))
		}
	}

	a.display.SwapBuffers()
	return nil
}

// reportFPS shows the last second's frame count in the window title.
func (a *App) reportFPS(frames int, dt time.Duration) {
	a.display.SetTitle(fmt.Sprintf("%s - %d fps", a.title, frames))
	a.log.Debug("fps", zap.Int("count", frames), zap.Duration("dt", dt))
}

// Close releases every scene object.
func (a *App) Close() {
	a.scene.Release()
}
