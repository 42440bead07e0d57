// Package input turns platform events into engine events and tracks held
// keys and mouse buttons.
package input

// EventType identifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

// Key is a physical key the engine reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyF
	KeyL
	KeyP
	KeyEscape
	KeyF12
)

// Button is a mouse button.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// Event is a platform event reduced to what the engine uses.
type Event struct {
	Type   EventType
	Key    Key
	Repeat bool // key auto-repeat
	Button Button
	X, Y   int // cursor position for mouse events
	Width  int
	Height int
}

// Source delivers queued platform events without blocking.
type Source interface {
	// Poll returns the next queued event, or false when the queue is empty.
	Poll() (Event, bool)
}

// Input handles all input processing.
type Input struct {
	events  []Event
	keys    map[Key]bool
	buttons map[Button]bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events:  make([]Event, 0, 16),
		keys:    make(map[Key]bool),
		buttons: make(map[Button]bool),
	}
}

// Update drains src and records this frame's events.
// Returns true if a quit was requested.
func (i *Input) Update(src Source) bool {
	i.events = i.events[:0]

	quit := false
	for e, ok := src.Poll(); ok; e, ok = src.Poll() {
		i.events = append(i.events, e)
		switch e.Type {
		case EventQuit:
			quit = true
		case EventKeyDown:
			i.keys[e.Key] = true
		case EventKeyUp:
			delete(i.keys, e.Key)
		case EventMouseDown:
			i.buttons[e.Button] = true
		case EventMouseUp:
			delete(i.buttons, e.Button)
		}
	}

	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a key went down this frame, ignoring auto-repeat.
func (i *Input) IsKeyPressed(key Key) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == key && !e.Repeat {
			return true
		}
	}
	return false
}

// IsKeyHeld reports whether a key is currently down.
func (i *Input) IsKeyHeld(key Key) bool {
	return i.keys[key]
}

// IsButtonHeld reports whether a mouse button is currently down.
func (i *Input) IsButtonHeld(b Button) bool {
	return i.buttons[b]
}

// Queue is a Source backed by a slice.
type Queue []Event

func (q *Queue) Poll() (Event, bool) {
	if len(*q) == 0 {
		return Event{}, false
	}
	e := (*q)[0]
	*q = (*q)[1:]
	return e, true
}
