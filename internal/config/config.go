// Package config handles experiment configuration loading and management.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config holds all renderer settings.
type Config struct {
	Render     RenderConfig     `yaml:"render"`
	Camera     CameraConfig     `yaml:"camera"`
	Experiment ExperimentConfig `yaml:"experiment"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// RenderConfig holds frame size and rasterizer settings.
type RenderConfig struct {
	Width         int           `yaml:"width"`
	Height        int           `yaml:"height"`
	Frames        int           `yaml:"frames"`         // Frames to render
	FrameInterval time.Duration `yaml:"frame_interval"` // Scene time between frames
	Background    [4]float64    `yaml:"background"`     // RGBA in [0, 1]
	Wireframe     bool          `yaml:"wireframe"`
	Supersample   int           `yaml:"supersample"` // Render at this multiple of the size, then downsample
}

// CameraConfig overrides the experiment's projection. Zero keeps the
// experiment default.
type CameraConfig struct {
	FOV  float64 `yaml:"fov"` // Radians
	Near float64 `yaml:"near"`
	Far  float64 `yaml:"far"`
}

// ExperimentConfig selects the scene.
type ExperimentConfig struct {
	Name string `yaml:"name"`
	Pick string `yaml:"pick"` // "x,y" pixel to pick objects at each frame; empty disables
}

// OutputConfig holds where frames are written.
type OutputConfig struct {
	Dir        string `yaml:"dir"`
	SaveConfig bool   `yaml:"save_config"` // Write the effective config next to the frames
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:         640,
			Height:        480,
			Frames:        1,
			FrameInterval: 40 * time.Millisecond,
			Background:    [4]float64{0, 0, 0, 1},
			Wireframe:     false,
			Supersample:   1,
		},
		Experiment: ExperimentConfig{
			Name: "lighting",
		},
		Output: OutputConfig{
			Dir: "frames",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// PickPoint parses Pick. ok is false when picking is disabled.
func (e ExperimentConfig) PickPoint() (x, y float64, ok bool, err error) {
	if strings.TrimSpace(e.Pick) == "" {
		return 0, 0, false, nil
	}
	xs, ys, found := strings.Cut(e.Pick, ",")
	if !found {
		return 0, 0, false, fmt.Errorf("%w: pick %q, want x,y", ErrInvalid, e.Pick)
	}
	if x, err = strconv.ParseFloat(strings.TrimSpace(xs), 64); err != nil {
		return 0, 0, false, fmt.Errorf("%w: pick x: %v", ErrInvalid, err)
	}
	if y, err = strconv.ParseFloat(strings.TrimSpace(ys), 64); err != nil {
		return 0, 0, false, fmt.Errorf("%w: pick y: %v", ErrInvalid, err)
	}
	return x, y, true, nil
}
