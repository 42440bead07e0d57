package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/fuel3d/fuel/internal/engine/input"
)

var keys = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_W:      input.KeyW,
	sdl.SCANCODE_A:      input.KeyA,
	sdl.SCANCODE_S:      input.KeyS,
	sdl.SCANCODE_D:      input.KeyD,
	sdl.SCANCODE_F:      input.KeyF,
	sdl.SCANCODE_L:      input.KeyL,
	sdl.SCANCODE_P:      input.KeyP,
	sdl.SCANCODE_ESCAPE: input.KeyEscape,
	sdl.SCANCODE_F12:    input.KeyF12,
}

var buttons = map[uint8]input.Button{
	sdl.BUTTON_LEFT:   input.ButtonLeft,
	sdl.BUTTON_MIDDLE: input.ButtonMiddle,
	sdl.BUTTON_RIGHT:  input.ButtonRight,
}

// Poll implements input.Source over the SDL event queue. Events the engine
// does not use are dropped.
func (w *Window) Poll() (input.Event, bool) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e, ok := translate(event); ok {
			return e, true
		}
	}
	return input.Event{}, false
}

func translate(event sdl.Event) (input.Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return input.Event{Type: input.EventQuit}, true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_CLOSE:
			return input.Event{Type: input.EventQuit}, true
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			return input.Event{
				Type:   input.EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			}, true
		}

	case *sdl.KeyboardEvent:
		key, ok := keys[e.Keysym.Scancode]
		if !ok {
			return input.Event{}, false
		}
		typ := input.EventKeyDown
		if e.Type == sdl.KEYUP {
			typ = input.EventKeyUp
		}
		return input.Event{Type: typ, Key: key, Repeat: e.Repeat != 0}, true

	case *sdl.MouseMotionEvent:
		return input.Event{
			Type: input.EventMouseMove,
			X:    int(e.X),
			Y:    int(e.Y),
		}, true

	case *sdl.MouseButtonEvent:
		typ := input.EventMouseDown
		if e.Type == sdl.MOUSEBUTTONUP {
			typ = input.EventMouseUp
		}
		return input.Event{
			Type:   typ,
			Button: buttons[e.Button],
			X:      int(e.X),
			Y:      int(e.Y),
		}, true
	}

	return input.Event{}, false
}
