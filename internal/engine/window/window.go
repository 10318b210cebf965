// Package window creates a window with an OpenGL 4.1 core context and feeds
// its events into an input.Input. GLFW is the default backend; SDL2 is
// available for systems where GLFW is not.
package window

import (
	"fmt"
	"runtime"

	"github.com/Faultbox/learnopengl/internal/engine/input"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Backend names.
const (
	BackendGLFW = "glfw"
	BackendSDL  = "sdl"
)

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	Samples    int // multisample buffer samples, 0 disables
	Backend    string
}

// Window is a window owning the current GL context.
type Window interface {
	ShouldClose() bool
	SetShouldClose(bool)
	// PollEvents translates pending native events and pushes them into in.
	PollEvents(in *input.Input)
	SwapBuffers()
	// FramebufferSize returns the drawable size in pixels.
	FramebufferSize() (width, height int)
	// Time returns seconds since the window was created.
	Time() float64
	// SetCursorCaptured hides the cursor and reports unbounded relative motion.
	SetCursorCaptured(captured bool)
	SetTitle(title string)
	Close()
}

// New creates a window with the configured backend.
func New(cfg Config) (Window, error) {
	switch cfg.Backend {
	case "", BackendGLFW:
		return newGLFW(cfg)
	case BackendSDL:
		return newSDL(cfg)
	default:
		return nil, fmt.Errorf("unknown window backend %q", cfg.Backend)
	}
}
