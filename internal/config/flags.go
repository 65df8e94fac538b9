package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagExperiment = flag.String("experiment", "", "Experiment to render")
	flagFrames     = flag.Int("frames", 0, "Number of frames to render")
	flagOut        = flag.String("out", "", "Output directory for frames")
	flagWidth      = flag.Int("width", 0, "Frame width")
	flagHeight     = flag.Int("height", 0, "Frame height")
	flagWireframe  = flag.Bool("wireframe", false, "Outline triangles instead of filling them")
	flagPick       = flag.String("pick", "", "Pixel x,y to pick objects at")
	flagSaveConfig = flag.Bool("save-config", false, "Write the effective config next to the frames")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagExperiment != "" {
		cfg.Experiment.Name = *flagExperiment
	}
	if *flagFrames > 0 {
		cfg.Render.Frames = *flagFrames
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagWidth > 0 {
		cfg.Render.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Render.Height = *flagHeight
	}
	if *flagWireframe {
		cfg.Render.Wireframe = true
	}
	if *flagPick != "" {
		cfg.Experiment.Pick = *flagPick
	}
	if *flagSaveConfig {
		cfg.Output.SaveConfig = true
	}
}
