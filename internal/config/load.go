package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "GLExperiments")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "GLExperiments")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "gl-experiments")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "gl-experiments")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// ErrInvalid is returned by Validate for unusable settings.
var ErrInvalid = errors.New("invalid config")

// Validate checks the settings a render cannot start without.
func (c *Config) Validate() error {
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("%w: frame size %dx%d", ErrInvalid, c.Render.Width, c.Render.Height)
	}
	if c.Render.Frames <= 0 {
		return fmt.Errorf("%w: frames %d", ErrInvalid, c.Render.Frames)
	}
	if c.Render.Supersample < 1 {
		return fmt.Errorf("%w: supersample %d", ErrInvalid, c.Render.Supersample)
	}
	if c.Render.FrameInterval < 0 {
		return fmt.Errorf("%w: negative frame interval", ErrInvalid)
	}
	// Zero keeps the experiment default; negated comparisons also reject NaN.
	if !(c.Camera.Near >= 0) || !(c.Camera.Far >= 0) || !(c.Camera.FOV >= 0) {
		return fmt.Errorf("%w: camera fov %g near %g far %g", ErrInvalid, c.Camera.FOV, c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.Near > 0 && c.Camera.Far > 0 && c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: far %g not beyond near %g", ErrInvalid, c.Camera.Far, c.Camera.Near)
	}
	if _, _, _, err := c.Experiment.PickPoint(); err != nil {
		return err
	}
	return nil
}
