// Package config handles demo runner configuration loading and management.
package config

// Window backends.
const (
	BackendGLFW = "glfw"
	BackendSDL  = "sdl"
)

// Config holds all runner settings.
type Config struct {
	Window  WindowConfig  `yaml:"window" toml:"window"`
	Assets  AssetsConfig  `yaml:"assets" toml:"assets"`
	Camera  CameraConfig  `yaml:"camera" toml:"camera"`
	Capture CaptureConfig `yaml:"capture" toml:"capture"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// WindowConfig holds display settings. Width and Height override the size a demo
// asks for only when set explicitly.
type WindowConfig struct {
	Title      string `yaml:"title" toml:"title"`
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool   `yaml:"vsync" toml:"vsync"`
	Backend    string `yaml:"backend" toml:"backend"` // "glfw" or "sdl"
	Samples    int    `yaml:"samples" toml:"samples"` // default framebuffer MSAA samples
}

// AssetsConfig holds asset locations.
type AssetsConfig struct {
	ResourceDir  string `yaml:"resource_dir" toml:"resource_dir"`   // textures, models, fonts
	ShaderDir    string `yaml:"shader_dir" toml:"shader_dir"`       // empty = embedded shaders
	WatchShaders bool   `yaml:"watch_shaders" toml:"watch_shaders"` // reload on change (needs ShaderDir)
	FontPath     string `yaml:"font_path" toml:"font_path"`         // empty = built-in Go Regular
}

// CameraConfig holds fly-camera tuning.
type CameraConfig struct {
	Speed       float32 `yaml:"speed" toml:"speed"`
	Sensitivity float32 `yaml:"sensitivity" toml:"sensitivity"`
	Zoom        float32 `yaml:"zoom" toml:"zoom"`
}

// CaptureConfig holds screenshot settings.
type CaptureConfig struct {
	ScreenshotDir string `yaml:"screenshot_dir" toml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`   // debug, info, warn, error
	Format  string `yaml:"format" toml:"format"` // console or json
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:   "LearnOpenGL",
			VSync:   true,
			Backend: BackendGLFW,
		},
		Assets: AssetsConfig{
			ResourceDir: "resources",
		},
		Camera: CameraConfig{
			Speed:       2.5,
			Sensitivity: 0.1,
			Zoom:        45.0,
		},
		Capture: CaptureConfig{
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
