// Package harness runs one demo: it opens the window, wires input to the
// fly camera, drives the frame loop and releases whatever the demo loaded.
// A demo only supplies its setup and per-frame drawing.
package harness

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/learnopengl/internal/config"
	"github.com/Faultbox/learnopengl/internal/engine/camera"
	"github.com/Faultbox/learnopengl/internal/engine/debug"
	"github.com/Faultbox/learnopengl/internal/engine/gpu"
	"github.com/Faultbox/learnopengl/internal/engine/gpu/glgpu"
	"github.com/Faultbox/learnopengl/internal/engine/input"
	"github.com/Faultbox/learnopengl/internal/engine/shader"
	"github.com/Faultbox/learnopengl/internal/engine/window"
	"github.com/Faultbox/learnopengl/internal/logger"
)

// Default window size used when neither the demo nor the config sets one.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Options describe one demo.
type Options struct {
	Title  string
	Width  int
	Height int
	// Samples requests a multisampled default framebuffer.
	Samples int
	// Camera enables the fly camera (WASD, mouse look, scroll zoom).
	Camera *camera.Camera
	// CaptureCursor hides the cursor and feeds mouse motion to the camera.
	CaptureCursor bool
	// Shaders holds the demo's shader sources; replaced by the configured
	// shader directory when one is set.
	Shaders fs.FS

	Setup    func(app *App) error
	Frame    func(app *App, dt float32) error
	Teardown func(app *App)
	// OnKey is called for every key press except Escape and F12.
	OnKey func(app *App, key input.Key)
	// OnResize is called after the framebuffer size changed.
	OnResize func(app *App)
}

// graphics is the small part of the GL state the loop touches directly.
type graphics interface {
	Viewport(width, height int)
	// ReadPixels reads the back buffer as RGBA rows, bottom first.
	ReadPixels(width, height int) []byte
}

// Run opens the window, initializes OpenGL and runs the demo until the
// window closes. It returns the first setup or frame error.
func Run(cfg *config.Config, opts Options) error {
	log := logger.Named("harness")

	width, height := windowSize(cfg, opts)
	samples := opts.Samples
	if cfg.Window.Samples > 0 {
		samples = cfg.Window.Samples
	}

	win, err := window.New(window.Config{
		Title:      title(cfg, opts),
		Width:      width,
		Height:     height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Samples:    samples,
		Backend:    cfg.Window.Backend,
	})
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer win.Close()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("initializing OpenGL: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	return run(win, glgpu.New(), glGraphics{}, cfg, opts)
}

func windowSize(cfg *config.Config, opts Options) (int, int) {
	width, height := opts.Width, opts.Height
	if width == 0 {
		width = DefaultWidth
	}
	if height == 0 {
		height = DefaultHeight
	}
	if cfg.Window.Width > 0 {
		width = cfg.Window.Width
	}
	if cfg.Window.Height > 0 {
		height = cfg.Window.Height
	}
	return width, height
}

func title(cfg *config.Config, opts Options) string {
	if opts.Title == "" {
		return cfg.Window.Title
	}
	return cfg.Window.Title + " - " + opts.Title
}

// runner holds the loop state of one run.
type runner struct {
	win   window.Window
	gfx   graphics
	app   *App
	opts  Options
	mouse input.MouseTracker
	shots *debug.Screenshots
	log   *zap.Logger

	screenshot bool
}

func run(win window.Window, dev gpu.Device, gfx graphics, cfg *config.Config, opts Options) (err error) {
	r := &runner{
		win:   win,
		gfx:   gfx,
		opts:  opts,
		shots: debug.NewScreenshots(cfg.Capture.ScreenshotDir, title(cfg, opts)),
		log:   logger.Named("harness"),
	}
	r.app = newApp(dev, win, cfg, opts)
	app := r.app

	if opts.Camera != nil {
		opts.Camera.MovementSpeed = cfg.Camera.Speed
		opts.Camera.MouseSensitivity = cfg.Camera.Sensitivity
		opts.Camera.SetZoom(cfg.Camera.Zoom)
	}

	if cfg.Assets.ShaderDir != "" {
		app.Shaders = os.DirFS(cfg.Assets.ShaderDir)
		if cfg.Assets.WatchShaders {
			w, err := shader.NewWatcher(cfg.Assets.ShaderDir)
			if err != nil {
				r.log.Warn("shader hot reload disabled", zap.Error(err))
			} else {
				app.watcher = w
			}
		}
	}

	defer func() {
		if opts.Teardown != nil {
			opts.Teardown(app)
		}
		app.release()
	}()

	app.Width, app.Height = win.FramebufferSize()
	gfx.Viewport(app.Width, app.Height)

	if opts.Setup != nil {
		if err := opts.Setup(app); err != nil {
			return fmt.Errorf("setting up demo: %w", err)
		}
	}
	if opts.CaptureCursor {
		win.SetCursorCaptured(true)
	}

	last := win.Time()
	for !win.ShouldClose() {
		now := win.Time()
		dt := float32(now - last)
		last = now
		app.Time = float32(now)
		app.DeltaTime = dt

		app.Input.BeginFrame()
		win.PollEvents(app.Input)
		r.handleEvents()
		if win.ShouldClose() {
			break
		}
		r.moveCamera(dt)
		r.reloadShaders()

		if opts.Frame != nil {
			if err := opts.Frame(app, dt); err != nil {
				return fmt.Errorf("frame %d: %w", app.FrameCount, err)
			}
		}
		if r.screenshot {
			r.captureScreenshot()
			r.screenshot = false
		}

		win.SwapBuffers()
		app.FrameCount++
	}
	return nil
}

func (r *runner) handleEvents() {
	app := r.app
	cam := r.opts.Camera
	for _, e := range app.Input.Events() {
		switch e.Type {
		case input.EventQuit:
			r.win.SetShouldClose(true)

		case input.EventWindowResize:
			if e.Width == 0 || e.Height == 0 {
				continue // minimized
			}
			app.Width, app.Height = e.Width, e.Height
			r.gfx.Viewport(e.Width, e.Height)
			if r.opts.OnResize != nil {
				r.opts.OnResize(app)
			}

		case input.EventKeyDown:
			switch e.Key {
			case input.KeyEscape:
				r.win.SetShouldClose(true)
			case input.KeyF12:
				r.screenshot = true
			default:
				if r.opts.OnKey != nil {
					r.opts.OnKey(app, e.Key)
				}
			}

		case input.EventMouseMove:
			if cam == nil || !r.opts.CaptureCursor {
				continue
			}
			dx, dy := r.mouse.Offset(e.MouseX, e.MouseY)
			cam.ProcessMouseMovement(dx, dy, true)

		case input.EventScroll:
			if cam != nil {
				cam.ProcessMouseScroll(float32(e.ScrollY))
			}
		}
	}
}

var cameraKeys = []struct {
	key input.Key
	dir camera.Movement
}{
	{input.KeyW, camera.Forward},
	{input.KeyS, camera.Backward},
	{input.KeyA, camera.Left},
	{input.KeyD, camera.Right},
}

func (r *runner) moveCamera(dt float32) {
	cam := r.opts.Camera
	if cam == nil {
		return
	}
	for _, ck := range cameraKeys {
		if r.app.Input.IsKeyDown(ck.key) {
			cam.ProcessKeyboard(ck.dir, dt)
		}
	}
}

// reloadShaders rebuilds every program that reads a changed file. A program
// that fails to rebuild keeps running its previous version.
func (r *runner) reloadShaders() {
	w := r.app.watcher
	if w == nil {
		return
	}
	for _, path := range w.Drain() {
		for _, p := range r.app.programs {
			if !p.Uses(path) {
				continue
			}
			if err := p.Reload(); err != nil {
				r.log.Error("shader reload failed", zap.String("program", p.Name()), zap.Error(err))
				continue
			}
			r.log.Info("shader reloaded", zap.String("program", p.Name()), zap.String("file", path))
		}
	}
}

func (r *runner) captureScreenshot() {
	w, h := r.app.Width, r.app.Height
	path, err := r.shots.SaveRGBA(r.gfx.ReadPixels(w, h), w, h)
	if err != nil {
		r.log.Error("screenshot failed", zap.Error(err))
		return
	}
	r.log.Info("screenshot saved", zap.String("path", path))
}
