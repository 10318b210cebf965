package harness

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/learnopengl/internal/config"
	"github.com/Faultbox/learnopengl/internal/engine/camera"
	"github.com/Faultbox/learnopengl/internal/engine/gpu/gputest"
	"github.com/Faultbox/learnopengl/internal/engine/input"
)

// fakeWindow replays scripted events, one slice per frame, and closes
// after the script runs out.
type fakeWindow struct {
	frames   [][]input.Event
	polled   int
	close    bool
	swaps    int
	captured bool
	clock    float64
	closed   bool
}

func (w *fakeWindow) ShouldClose() bool           { return w.close }
func (w *fakeWindow) SetShouldClose(v bool)       { w.close = v }
func (w *fakeWindow) SwapBuffers()                { w.swaps++ }
func (w *fakeWindow) FramebufferSize() (int, int) { return 800, 600 }
func (w *fakeWindow) SetCursorCaptured(c bool)    { w.captured = c }
func (w *fakeWindow) SetTitle(string)             {}
func (w *fakeWindow) Close()                      { w.closed = true }

func (w *fakeWindow) Time() float64 {
	w.clock += 0.1
	return w.clock
}

func (w *fakeWindow) PollEvents(in *input.Input) {
	if w.polled >= len(w.frames) {
		w.close = true
		return
	}
	for _, e := range w.frames[w.polled] {
		in.Push(e)
	}
	w.polled++
}

type fakeGraphics struct {
	viewports [][2]int
	reads     int
}

func (g *fakeGraphics) Viewport(w, h int) { g.viewports = append(g.viewports, [2]int{w, h}) }

func (g *fakeGraphics) ReadPixels(w, h int) []byte {
	g.reads++
	return make([]byte, w*h*4)
}

var testShaders = fstest.MapFS{
	"demo.vs": {Data: []byte("void main() {}")},
	"demo.fs": {Data: []byte("void main() {}")},
}

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.Capture.ScreenshotDir = t.TempDir()
	cfg.Assets.ResourceDir = t.TempDir()
	return cfg
}

func TestRunLifecycle(t *testing.T) {
	dev := &gputest.Device{}
	win := &fakeWindow{frames: [][]input.Event{{}, {}, {}}}
	gfx := &fakeGraphics{}

	var calls []string
	frames := 0
	err := run(win, dev, gfx, testConfig(t), Options{
		Shaders: testShaders,
		Setup: func(app *App) error {
			calls = append(calls, "setup")
			_, err := app.LoadShader("demo.vs", "demo.fs")
			return err
		},
		Frame: func(app *App, dt float32) error {
			frames++
			assert.InDelta(t, 0.1, dt, 1e-6)
			return nil
		},
		Teardown: func(app *App) { calls = append(calls, "teardown") },
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"setup", "teardown"}, calls)
	assert.Equal(t, 3, frames)
	assert.Equal(t, 3, win.swaps)
	assert.Equal(t, [][2]int{{800, 600}}, gfx.viewports)
	assert.Zero(t, dev.Live(), "loaded programs released at teardown")
}

func TestEscapeCloses(t *testing.T) {
	win := &fakeWindow{frames: [][]input.Event{
		{{Type: input.EventKeyDown, Key: input.KeyEscape}},
		{},
	}}
	frames := 0
	err := run(win, &gputest.Device{}, &fakeGraphics{}, testConfig(t), Options{
		Frame: func(*App, float32) error { frames++; return nil },
	})
	require.NoError(t, err)
	assert.Zero(t, frames, "no frame is drawn after Escape")
	assert.Equal(t, 1, win.polled)
}

func TestSetupErrorStillTearsDown(t *testing.T) {
	boom := errors.New("boom")
	tornDown := false
	err := run(&fakeWindow{}, &gputest.Device{}, &fakeGraphics{}, testConfig(t), Options{
		Setup:    func(*App) error { return boom },
		Teardown: func(*App) { tornDown = true },
	})
	assert.ErrorIs(t, err, boom)
	assert.True(t, tornDown)
}

func TestFrameErrorStops(t *testing.T) {
	boom := errors.New("boom")
	win := &fakeWindow{frames: [][]input.Event{{}, {}, {}}}
	err := run(win, &gputest.Device{}, &fakeGraphics{}, testConfig(t), Options{
		Frame: func(app *App, _ float32) error {
			if app.FrameCount == 1 {
				return boom
			}
			return nil
		},
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, win.swaps)
}

func TestCameraInput(t *testing.T) {
	cam := camera.NewDefault(mgl32.Vec3{0, 0, 3})
	win := &fakeWindow{frames: [][]input.Event{
		{{Type: input.EventKeyDown, Key: input.KeyW}, {Type: input.EventMouseMove, MouseX: 400, MouseY: 300}},
		{{Type: input.EventKeyUp, Key: input.KeyW}, {Type: input.EventMouseMove, MouseX: 500, MouseY: 300}},
		{{Type: input.EventScroll, ScrollY: 100}},
	}}
	err := run(win, &gputest.Device{}, &fakeGraphics{}, testConfig(t), Options{
		Camera:        cam,
		CaptureCursor: true,
	})
	require.NoError(t, err)

	assert.True(t, win.captured)
	// W held for one frame of 0.1s at speed 2.5, looking down -Z
	assert.InDelta(t, 2.75, cam.Position.Z(), 1e-4)
	// first move primes the tracker; the second turns 100 * 0.1 degrees
	assert.InDelta(t, camera.DefaultYaw+10, cam.Yaw(), 1e-4)
	assert.Equal(t, float32(camera.MinZoom), cam.Zoom())
}

func TestKeysAndResize(t *testing.T) {
	win := &fakeWindow{frames: [][]input.Event{
		{{Type: input.EventKeyDown, Key: input.KeySpace}},
		{{Type: input.EventWindowResize, Width: 1024, Height: 768}},
		{{Type: input.EventWindowResize, Width: 0, Height: 0}},
		{{Type: input.EventKeyDown, Key: input.KeyF12}},
	}}
	gfx := &fakeGraphics{}
	var keys []input.Key
	resized := 0
	err := run(win, &gputest.Device{}, gfx, testConfig(t), Options{
		OnKey:    func(_ *App, k input.Key) { keys = append(keys, k) },
		OnResize: func(app *App) { resized++; assert.Equal(t, float32(1024)/768, app.Aspect()) },
	})
	require.NoError(t, err)

	assert.Equal(t, []input.Key{input.KeySpace}, keys)
	assert.Equal(t, 1, resized, "minimized size is ignored")
	assert.Equal(t, [][2]int{{800, 600}, {1024, 768}}, gfx.viewports)
	assert.Equal(t, 1, gfx.reads, "F12 captures one screenshot")
}

func TestAppDeferOrder(t *testing.T) {
	var order []int
	err := run(&fakeWindow{}, &gputest.Device{}, &fakeGraphics{}, testConfig(t), Options{
		Setup: func(app *App) error {
			app.Defer(func() { order = append(order, 1) })
			app.Defer(func() { order = append(order, 2) })
			return nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, order)
}

func TestLoadShaderWithoutSources(t *testing.T) {
	err := run(&fakeWindow{}, &gputest.Device{}, &fakeGraphics{}, testConfig(t), Options{
		Setup: func(app *App) error {
			_, err := app.LoadShader("demo.vs", "demo.fs")
			return err
		},
	})
	assert.Error(t, err)
}

func TestWindowSize(t *testing.T) {
	cfg := config.Default()
	w, h := windowSize(cfg, Options{})
	assert.Equal(t, DefaultWidth, w)
	assert.Equal(t, DefaultHeight, h)

	w, h = windowSize(cfg, Options{Width: 1280, Height: 720})
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)

	cfg.Window.Width = 640
	w, _ = windowSize(cfg, Options{Width: 1280})
	assert.Equal(t, 640, w)

	assert.Equal(t, "LearnOpenGL - Blinn", title(cfg, Options{Title: "Blinn"}))
	assert.Equal(t, "LearnOpenGL", title(cfg, Options{}))
}
