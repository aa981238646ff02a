package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagDensity    = flag.Float64("density", 0, "Grass blades per square unit")
	flagSeed       = flag.Uint64("seed", 0, "Blade placement seed (0 = random)")
	flagHeadless   = flag.Bool("headless", false, "Run the simulation without a window")
	flagFrames     = flag.Int("frames", 600, "Frames to simulate in headless mode")
	flagWatch      = flag.Bool("watch", false, "Reload the config file when it changes")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// RunOptions are process-level switches that are not part of the scene config.
type RunOptions struct {
	Headless bool
	Frames   int
	Watch    bool
}

// Run returns the process-level switches parsed from the command line.
func Run() RunOptions {
	return RunOptions{
		Headless: *flagHeadless,
		Frames:   *flagFrames,
		Watch:    *flagWatch,
	}
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Debug.ShowFPS = true
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagDensity > 0 {
		cfg.Blades.Density = float32(*flagDensity)
	}
	if *flagSeed != 0 {
		cfg.Blades.Seed = *flagSeed
	}
}
