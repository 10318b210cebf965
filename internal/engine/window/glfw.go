package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/Faultbox/learnopengl/internal/engine/input"
	"github.com/Faultbox/learnopengl/internal/logger"
)

var glfwKeys = map[glfw.Key]input.Key{
	glfw.KeyEscape:    input.KeyEscape,
	glfw.KeySpace:     input.KeySpace,
	glfw.KeyEnter:     input.KeyEnter,
	glfw.KeyLeftShift: input.KeyLeftShift,
	glfw.KeyW:         input.KeyW,
	glfw.KeyA:         input.KeyA,
	glfw.KeyS:         input.KeyS,
	glfw.KeyD:         input.KeyD,
	glfw.KeyQ:         input.KeyQ,
	glfw.KeyE:         input.KeyE,
	glfw.KeyB:         input.KeyB,
	glfw.KeyF:         input.KeyF,
	glfw.KeyUp:        input.KeyUp,
	glfw.KeyDown:      input.KeyDown,
	glfw.KeyLeft:      input.KeyLeft,
	glfw.KeyRight:     input.KeyRight,
	glfw.KeyF12:       input.KeyF12,
}

// glfwWindow wraps a GLFW window. Callbacks buffer events that PollEvents
// hands to the input.
type glfwWindow struct {
	win     *glfw.Window
	pending []input.Event
}

func newGLFW(cfg Config) (*glfwWindow, error) {
	log := logger.Named("window")
	log.Info("initializing GLFW")

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init failed: %w", err)
	}

	// OpenGL 4.1 Core Profile (max supported on macOS)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	if cfg.Samples > 0 {
		glfw.WindowHint(glfw.Samples, cfg.Samples)
	}

	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw create window failed: %w", err)
	}
	win.MakeContextCurrent()

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &glfwWindow{win: win}

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		k, ok := glfwKeys[key]
		if !ok {
			return
		}
		switch action {
		case glfw.Press:
			w.pending = append(w.pending, input.Event{Type: input.EventKeyDown, Key: k})
		case glfw.Release:
			w.pending = append(w.pending, input.Event{Type: input.EventKeyUp, Key: k})
		}
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.pending = append(w.pending, input.Event{Type: input.EventMouseMove, MouseX: x, MouseY: y})
	})
	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		w.pending = append(w.pending, input.Event{Type: input.EventScroll, ScrollY: yoff})
	})
	// Framebuffer size differs from window size on high-DPI displays
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.pending = append(w.pending, input.Event{Type: input.EventWindowResize, Width: width, Height: height})
	})
	win.SetCloseCallback(func(_ *glfw.Window) {
		w.pending = append(w.pending, input.Event{Type: input.EventQuit})
	})

	log.Info("window created",
		zap.String("backend", BackendGLFW),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
		zap.Int("samples", cfg.Samples))

	return w, nil
}

func (w *glfwWindow) ShouldClose() bool           { return w.win.ShouldClose() }
func (w *glfwWindow) SetShouldClose(v bool)       { w.win.SetShouldClose(v) }
func (w *glfwWindow) SwapBuffers()                { w.win.SwapBuffers() }
func (w *glfwWindow) Time() float64               { return glfw.GetTime() }
func (w *glfwWindow) SetTitle(title string)       { w.win.SetTitle(title) }
func (w *glfwWindow) FramebufferSize() (int, int) { return w.win.GetFramebufferSize() }

func (w *glfwWindow) PollEvents(in *input.Input) {
	glfw.PollEvents()
	for _, e := range w.pending {
		in.Push(e)
	}
	w.pending = w.pending[:0]
}

func (w *glfwWindow) SetCursorCaptured(captured bool) {
	mode := glfw.CursorNormal
	if captured {
		mode = glfw.CursorDisabled
	}
	w.win.SetInputMode(glfw.CursorMode, mode)
}

// Close destroys the window and terminates GLFW.
func (w *glfwWindow) Close() {
	logger.Named("window").Info("closing window")
	w.win.Destroy()
	glfw.Terminate()
}
