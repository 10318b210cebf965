package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the search locations
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the runner cannot honor.
func (c *Config) Validate() error {
	switch c.Window.Backend {
	case BackendGLFW, BackendSDL:
	default:
		return fmt.Errorf("unknown window backend %q (want %q or %q)", c.Window.Backend, BackendGLFW, BackendSDL)
	}
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Assets.WatchShaders && c.Assets.ShaderDir == "" {
		return fmt.Errorf("watch_shaders requires shader_dir")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	return nil
}

// configNames are the file names searched in each config location, in
// order.
var configNames = []string{"learnopengl.yaml", "learnopengl.toml"}

// findConfigFile returns the first config file found in the working
// directory, then in ConfigDir as config.yaml or config.toml.
func findConfigFile() string {
	var candidates []string
	candidates = append(candidates, configNames...)
	for _, ext := range []string{".yaml", ".toml"} {
		candidates = append(candidates, filepath.Join(ConfigDir(), "config"+ext))
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user config directory: XDG_CONFIG_HOME or
// ~/.config on Linux, Application Support on macOS, %AppData% on Windows.
func ConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		// no HOME; fall back next to the working directory
		base, _ = filepath.Abs(".")
	}
	if runtime.GOOS == "linux" {
		return filepath.Join(base, "learnopengl")
	}
	return filepath.Join(base, "LearnOpenGL")
}

// loadFromFile merges the file at path over cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return codecFor(path).unmarshal(data, cfg)
}
