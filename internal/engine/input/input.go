// Package input collects window-system events in a backend-neutral form.
// Window backends translate their native events and Push them; the render
// loop reads them once per frame.
package input

// Key identifies a keyboard key independently of the window backend.
type Key int

// Keys used by the demos.
const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyEnter
	KeyLeftShift
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyB
	KeyF
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF12
	keyCount
)

var keyNames = [...]string{
	KeyUnknown:   "Unknown",
	KeyEscape:    "Escape",
	KeySpace:     "Space",
	KeyEnter:     "Enter",
	KeyLeftShift: "LeftShift",
	KeyW:         "W",
	KeyA:         "A",
	KeyS:         "S",
	KeyD:         "D",
	KeyQ:         "Q",
	KeyE:         "E",
	KeyB:         "B",
	KeyF:         "F",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyF12:       "F12",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "Unknown"
	}
	return keyNames[k]
}

// Event types
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventScroll
)

// Event represents a processed input event.
type Event struct {
	Type    EventType
	Key     Key
	Width   int // framebuffer size for EventWindowResize
	Height  int
	MouseX  float64
	MouseY  float64
	ScrollY float64
}

// Input holds the events of the current frame and the held-key state.
type Input struct {
	events []Event
	held   [keyCount]bool
	quit   bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// BeginFrame clears the previous frame's events. Held keys persist.
func (i *Input) BeginFrame() {
	i.events = i.events[:0]
}

// Push records an event and updates the held-key state.
func (i *Input) Push(e Event) {
	switch e.Type {
	case EventQuit:
		i.quit = true
	case EventKeyDown:
		if e.Key > KeyUnknown && e.Key < keyCount {
			i.held[e.Key] = true
		}
	case EventKeyUp:
		if e.Key > KeyUnknown && e.Key < keyCount {
			i.held[e.Key] = false
		}
	}
	i.events = append(i.events, e)
}

// Events returns the events pushed since the last BeginFrame.
func (i *Input) Events() []Event {
	return i.events
}

// Quit reports whether a quit event has been received.
func (i *Input) Quit() bool {
	return i.quit
}

// IsKeyPressed checks if a specific key went down this frame.
func (i *Input) IsKeyPressed(k Key) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == k {
			return true
		}
	}
	return false
}

// IsKeyDown reports whether k is currently held.
func (i *Input) IsKeyDown(k Key) bool {
	if k <= KeyUnknown || k >= keyCount {
		return false
	}
	return i.held[k]
}
