// Package control maps input to camera and scene operations.
//
//	W/A/S/D        move while held
//	right mouse    hold and move the cursor to look around
//	F / L / P      filled / point / wireframe polygons
//	F12            screenshot
//	Escape, close  stop
package control

import (
	"go.uber.org/zap"

	"github.com/fuel3d/fuel/internal/engine/camera"
	"github.com/fuel3d/fuel/internal/engine/gfx"
	"github.com/fuel3d/fuel/internal/engine/input"
	"github.com/fuel3d/fuel/internal/engine/scene"
	"github.com/fuel3d/fuel/internal/logger"
)

var movement = []struct {
	key input.Key
	dir camera.Direction
}{
	{input.KeyW, camera.Forward},
	{input.KeyS, camera.Backward},
	{input.KeyA, camera.Left},
	{input.KeyD, camera.Right},
}

var polygonModes = map[input.Key]gfx.PolygonMode{
	input.KeyF: gfx.PolygonFill,
	input.KeyL: gfx.PolygonPoint,
	input.KeyP: gfx.PolygonLine,
}

// Control dispatches one frame of input at a time.
type Control struct {
	dev   gfx.Device
	scene *scene.Scene

	running    bool
	looking    bool
	screenshot bool

	log *zap.Logger
}

// New returns a running controller for s.
func New(dev gfx.Device, s *scene.Scene) *Control {
	return &Control{
		dev:     dev,
		scene:   s,
		running: true,
		log:     logger.Named("control"),
	}
}

// Running reports whether the loop should continue.
func (c *Control) Running() bool { return c.running }

// Stop ends the loop after the current frame.
func (c *Control) Stop() {
	if c.running {
		c.log.Info("stop requested")
	}
	c.running = false
}

// ScreenshotRequested reports and clears a pending screenshot request.
func (c *Control) ScreenshotRequested() bool {
	r := c.screenshot
	c.screenshot = false
	return r
}

// Update handles this frame's events, then moves the camera for every held
// movement key using dt seconds.
func (c *Control) Update(in *input.Input, dt float32) {
	for _, e := range in.Events() {
		c.Handle(e)
	}

	cam := c.scene.Camera()
	cam.SetDeltaTime(dt)
	for _, m := range movement {
		if in.IsKeyHeld(m.key) {
			cam.MoveDirection(m.dir)
		}
	}
}

// Handle applies a single event.
func (c *Control) Handle(e input.Event) {
	cam := c.scene.Camera()

	switch e.Type {
	case input.EventQuit:
		c.Stop()

	case input.EventWindowResize:
		if e.Width > 0 && e.Height > 0 {
			cam.Resize(e.Width, e.Height)
			c.dev.Viewport(e.Width, e.Height)
		}

	case input.EventKeyDown:
		if e.Repeat {
			return
		}
		if mode, ok := polygonModes[e.Key]; ok {
			c.scene.SetPolygonMode(mode)
			return
		}
		switch e.Key {
		case input.KeyEscape:
			c.Stop()
		case input.KeyF12:
			c.screenshot = true
		}

	case input.EventMouseDown:
		if e.Button == input.ButtonRight {
			c.looking = true
			cam.ResetSpin()
		}

	case input.EventMouseUp:
		if e.Button == input.ButtonRight {
			c.looking = false
		}

	case input.EventMouseMove:
		if c.looking {
			cam.Spin(float32(e.X), float32(e.Y))
		}
	}
}
