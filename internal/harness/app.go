package harness

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/learnopengl/internal/config"
	"github.com/Faultbox/learnopengl/internal/engine/camera"
	"github.com/Faultbox/learnopengl/internal/engine/gpu"
	"github.com/Faultbox/learnopengl/internal/engine/input"
	"github.com/Faultbox/learnopengl/internal/engine/model"
	"github.com/Faultbox/learnopengl/internal/engine/shader"
	"github.com/Faultbox/learnopengl/internal/engine/text"
	"github.com/Faultbox/learnopengl/internal/engine/texture"
	"github.com/Faultbox/learnopengl/internal/engine/window"
)

// App is what a demo sees of the running harness. Everything loaded through
// it is released when the demo ends.
type App struct {
	Device  gpu.Device
	Window  window.Window
	Input   *input.Input
	Camera  *camera.Camera
	Config  *config.Config
	Shaders fs.FS

	// Framebuffer size in pixels.
	Width, Height int
	// Seconds since the window opened, and since the previous frame.
	Time, DeltaTime float32
	FrameCount      int

	programs []*shader.Program
	textures []uint32
	models   []*model.Model
	fonts    []*text.Font
	cleanups []func()
	watcher  *shader.Watcher
}

func newApp(dev gpu.Device, win window.Window, cfg *config.Config, opts Options) *App {
	return &App{
		Device:  dev,
		Window:  win,
		Input:   input.New(),
		Camera:  opts.Camera,
		Config:  cfg,
		Shaders: opts.Shaders,
	}
}

// Aspect returns width/height of the framebuffer.
func (a *App) Aspect() float32 {
	if a.Height == 0 {
		return 1
	}
	return float32(a.Width) / float32(a.Height)
}

// Projection returns the camera projection, or a 45° perspective when the
// demo has no camera.
func (a *App) Projection(near, far float32) mgl32.Mat4 {
	if a.Camera != nil {
		return a.Camera.Projection(a.Aspect(), near, far)
	}
	return mgl32.Perspective(mgl32.DegToRad(45), a.Aspect(), near, far)
}

// View returns the camera view matrix, or identity without a camera.
func (a *App) View() mgl32.Mat4 {
	if a.Camera != nil {
		return a.Camera.ViewMatrix()
	}
	return mgl32.Ident4()
}

// Resource returns the path of a file under the resource directory.
func (a *App) Resource(path string) string {
	return filepath.Join(a.Config.Assets.ResourceDir, path)
}

// LoadShader builds a program from shader files and registers it for hot
// reload.
func (a *App) LoadShader(vertexPath, fragmentPath string, geometryPath ...string) (*shader.Program, error) {
	if a.Shaders == nil {
		return nil, fmt.Errorf("loading shader %s: no shader sources configured", vertexPath)
	}
	p, err := shader.Load(a.Device, a.Shaders, vertexPath, fragmentPath, geometryPath...)
	if err != nil {
		return nil, err
	}
	a.programs = append(a.programs, p)
	return p, nil
}

// LoadTexture uploads an image from the resource directory.
func (a *App) LoadTexture(path string, opts texture.Options) (uint32, error) {
	id, err := texture.FromFile(a.Device, path, a.Config.Assets.ResourceDir, opts)
	if err != nil {
		return 0, fmt.Errorf("loading texture %s: %w", path, err)
	}
	a.textures = append(a.textures, id)
	return id, nil
}

// LoadCubemap uploads six faces from a directory under the resource directory.
func (a *App) LoadCubemap(dir string, faces texture.CubemapFaces) (uint32, error) {
	id, err := texture.LoadCubemap(a.Device, a.Resource(dir), faces)
	if err != nil {
		return 0, fmt.Errorf("loading cubemap %s: %w", dir, err)
	}
	a.textures = append(a.textures, id)
	return id, nil
}

// LoadModel loads an OBJ model from the resource directory.
func (a *App) LoadModel(path string, opts model.Options) (*model.Model, error) {
	m, err := model.Load(a.Device, a.Resource(path), opts)
	if err != nil {
		return nil, fmt.Errorf("loading model %s: %w", path, err)
	}
	a.models = append(a.models, m)
	return m, nil
}

// LoadFont rasterizes the configured font (Go Regular by default) at size
// pixels.
func (a *App) LoadFont(size float64) (*text.Font, error) {
	var data []byte
	if path := a.Config.Assets.FontPath; path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("loading font: %w", err)
		}
	}
	f, err := text.NewFont(a.Device, data, size)
	if err != nil {
		return nil, err
	}
	a.fonts = append(a.fonts, f)
	return f, nil
}

// Defer registers fn to run when the demo ends, before the loaded resources
// are released. Deferred functions run in reverse order.
func (a *App) Defer(fn func()) {
	a.cleanups = append(a.cleanups, fn)
}

func (a *App) release() {
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
	for _, f := range a.fonts {
		f.Delete()
	}
	for _, m := range a.models {
		m.Close()
	}
	for _, id := range a.textures {
		a.Device.DeleteTexture(id)
	}
	for _, p := range a.programs {
		p.Delete()
	}
	if a.watcher != nil {
		a.watcher.Close()
	}
	a.cleanups, a.fonts, a.models, a.textures, a.programs = nil, nil, nil, nil, nil
}
