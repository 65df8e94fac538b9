// Package main renders one of the transform experiments to numbered PNG frames.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/gl-experiments/internal/config"
	"github.com/Faultbox/gl-experiments/internal/logger"
	"github.com/Faultbox/gl-experiments/internal/raster"
	"github.com/Faultbox/gl-experiments/internal/scene"
	"github.com/Faultbox/gl-experiments/pkg/geometry"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== GL Experiments ===", zap.String("experiment", cfg.Experiment.Name))
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("render failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	kind, err := scene.ParseKind(cfg.Experiment.Name)
	if err != nil {
		return err
	}

	e, err := scene.New(kind)
	if err != nil {
		return fmt.Errorf("building experiment: %w", err)
	}
	if err := applyCamera(e, cfg.Camera); err != nil {
		return err
	}

	pickX, pickY, picking, err := cfg.Experiment.PickPoint()
	if err != nil {
		return err
	}

	if cfg.Output.SaveConfig {
		path := filepath.Join(cfg.Output.Dir, "config.yaml")
		if err := cfg.SaveTo(path); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		logger.Info("config saved", zap.String("path", path))
	}

	bg := cfg.Render.Background
	ss := cfg.Render.Supersample
	r, err := raster.New(raster.Config{
		Width:      cfg.Render.Width * ss,
		Height:     cfg.Render.Height * ss,
		Background: geometry.Color{R: bg[0], G: bg[1], B: bg[2], A: bg[3]},
		Wireframe:  cfg.Render.Wireframe,
	})
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	capture := raster.NewCapture(cfg.Output.Dir, string(kind))
	step := float64(cfg.Render.FrameInterval) / float64(time.Millisecond)

	var total raster.Stats
	start := time.Now()
	for frame := 0; frame < cfg.Render.Frames; frame++ {
		t := float64(frame) * step

		r.Begin()
		draws, err := e.Frame(t, r.Aspect())
		if err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		r.DrawFrame(e, draws)
		stats := r.End()
		total.Add(stats)

		img := r.Image()
		if ss > 1 {
			img = raster.Downsample(img, cfg.Render.Width, cfg.Render.Height)
		}
		path, err := capture.Save(img, frame)
		if err != nil {
			return fmt.Errorf("saving frame %d: %w", frame, err)
		}
		if picking {
			hit, err := e.Pick(pickX, pickY, cfg.Render.Width, cfg.Render.Height, t)
			if err != nil {
				return fmt.Errorf("picking frame %d: %w", frame, err)
			}
			logger.Info("picked",
				zap.Int("frame", frame),
				zap.Float64("x", pickX),
				zap.Float64("y", pickY),
				zap.Int("object", hit),
			)
		}

		logger.Debug("frame written",
			zap.Int("frame", frame),
			zap.Float64("time_ms", t),
			zap.String("path", path),
			zap.Int("pixels", stats.Pixels),
		)
	}

	logger.Info("render complete",
		zap.String("experiment", string(kind)),
		zap.Int("frames", cfg.Render.Frames),
		zap.String("dir", cfg.Output.Dir),
		zap.Int("triangles", total.Triangles),
		zap.Int("culled", total.Culled),
		zap.Int("clipped", total.Clipped),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// applyCamera overrides the experiment's projection with any non-zero camera
// settings. Scenes without a projection ignore them.
func applyCamera(e *scene.Experiment, cam config.CameraConfig) error {
	if !e.UsesProjection() {
		return nil
	}

	p := e.Projection
	if cam.FOV > 0 {
		p.FOV = cam.FOV
	}
	if cam.Near > 0 {
		p.Near = cam.Near
	}
	if cam.Far > 0 {
		p.Far = cam.Far
	}
	if err := e.SetProjection(p); err != nil {
		return fmt.Errorf("camera: %w", err)
	}
	return nil
}
