package window

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/learnopengl/internal/engine/input"
	"github.com/Faultbox/learnopengl/internal/logger"
)

var sdlKeys = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_ESCAPE: input.KeyEscape,
	sdl.SCANCODE_SPACE:  input.KeySpace,
	sdl.SCANCODE_RETURN: input.KeyEnter,
	sdl.SCANCODE_LSHIFT: input.KeyLeftShift,
	sdl.SCANCODE_W:      input.KeyW,
	sdl.SCANCODE_A:      input.KeyA,
	sdl.SCANCODE_S:      input.KeyS,
	sdl.SCANCODE_D:      input.KeyD,
	sdl.SCANCODE_Q:      input.KeyQ,
	sdl.SCANCODE_E:      input.KeyE,
	sdl.SCANCODE_B:      input.KeyB,
	sdl.SCANCODE_F:      input.KeyF,
	sdl.SCANCODE_UP:     input.KeyUp,
	sdl.SCANCODE_DOWN:   input.KeyDown,
	sdl.SCANCODE_LEFT:   input.KeyLeft,
	sdl.SCANCODE_RIGHT:  input.KeyRight,
	sdl.SCANCODE_F12:    input.KeyF12,
}

// sdlWindow wraps SDL2 window and OpenGL context.
type sdlWindow struct {
	win         *sdl.Window
	glContext   sdl.GLContext
	shouldClose bool
	captured    bool
	// accumulated relative motion while the cursor is captured
	mouseX, mouseY float64
}

func newSDL(cfg Config) (*sdlWindow, error) {
	log := logger.Named("window")
	w := &sdlWindow{}

	log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Set OpenGL attributes BEFORE creating window
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	sdl.GLSetAttribute(sdl.GL_STENCIL_SIZE, 8)
	if cfg.Samples > 0 {
		sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 1)
		sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, cfg.Samples)
	}

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	var err error
	w.win, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.win.GLCreateContext()
	if err != nil {
		w.win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	if cfg.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			log.Warn("failed to enable VSync", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	log.Info("window created",
		zap.String("backend", BackendSDL),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
		zap.Int("samples", cfg.Samples))

	return w, nil
}

func (w *sdlWindow) ShouldClose() bool     { return w.shouldClose }
func (w *sdlWindow) SetShouldClose(v bool) { w.shouldClose = v }
func (w *sdlWindow) SwapBuffers()          { w.win.GLSwap() }
func (w *sdlWindow) Time() float64         { return float64(sdl.GetTicks()) / 1000 }
func (w *sdlWindow) SetTitle(title string) { w.win.SetTitle(title) }

func (w *sdlWindow) FramebufferSize() (int, int) {
	width, height := w.win.GLGetDrawableSize()
	return int(width), int(height)
}

// PollEvents polls SDL events and converts them to input events.
func (w *sdlWindow) PollEvents(in *input.Input) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			w.shouldClose = true
			in.Push(input.Event{Type: input.EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				width, height := w.FramebufferSize()
				in.Push(input.Event{Type: input.EventWindowResize, Width: width, Height: height})
			}

		case *sdl.KeyboardEvent:
			k, ok := sdlKeys[e.Keysym.Scancode]
			if !ok || e.Repeat != 0 {
				continue
			}
			if e.Type == sdl.KEYDOWN {
				in.Push(input.Event{Type: input.EventKeyDown, Key: k})
			} else if e.Type == sdl.KEYUP {
				in.Push(input.Event{Type: input.EventKeyUp, Key: k})
			}

		case *sdl.MouseMotionEvent:
			// Relative mode pins the cursor, so integrate the deltas into
			// a virtual position like GLFW's disabled cursor does.
			if w.captured {
				w.mouseX += float64(e.XRel)
				w.mouseY += float64(e.YRel)
			} else {
				w.mouseX, w.mouseY = float64(e.X), float64(e.Y)
			}
			in.Push(input.Event{Type: input.EventMouseMove, MouseX: w.mouseX, MouseY: w.mouseY})

		case *sdl.MouseWheelEvent:
			in.Push(input.Event{Type: input.EventScroll, ScrollY: float64(e.Y)})
		}
	}
}

func (w *sdlWindow) SetCursorCaptured(captured bool) {
	w.captured = captured
	sdl.SetRelativeMouseMode(captured)
}

// Close destroys the window and cleans up SDL2.
func (w *sdlWindow) Close() {
	logger.Named("window").Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.win != nil {
		w.win.Destroy()
	}

	sdl.Quit()
}
