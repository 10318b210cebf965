package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile   = flag.String("log-file", "", "Also write logs to this file")
	flagLogJSON   = flag.Bool("log-json", false, "Write logs as JSON")
	flagBackend   = flag.String("backend", "", "Window backend: glfw or sdl")
	flagWidth     = flag.Int("width", 0, "Window width")
	flagHeight    = flag.Int("height", 0, "Window height")
	flagFull      = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagMSAA      = flag.Int("msaa", -1, "Default framebuffer MSAA samples")
	flagResources = flag.String("resources", "", "Resource directory (textures, models, fonts)")
	flagShaders   = flag.String("shaders", "", "Load shaders from this directory instead of the embedded copies")
	flagWatch     = flag.Bool("watch", false, "Reload shaders from -shaders when they change")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogJSON {
		cfg.Logging.Format = "json"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagBackend != "" {
		cfg.Window.Backend = *flagBackend
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagFull {
		cfg.Window.Fullscreen = true
	}
	if *flagMSAA >= 0 {
		cfg.Window.Samples = *flagMSAA
	}
	if *flagResources != "" {
		cfg.Assets.ResourceDir = *flagResources
	}
	if *flagShaders != "" {
		cfg.Assets.ShaderDir = *flagShaders
	}
	if *flagWatch {
		cfg.Assets.WatchShaders = true
	}
}
