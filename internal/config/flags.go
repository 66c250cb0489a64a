package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging and overlay")
	flagScale      = flag.Int("scale", 0, "Window scale factor")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagAssets     = flag.String("assets", "", "Directory overriding embedded assets")
	flagSprite     = flag.String("sprite", "", "Avatar sprite table")
	flagMute       = flag.Bool("mute", false, "Disable sound")

	// Headless run options, not stored in the config file.
	flagHeadless   = flag.Bool("headless", false, "Run without a window")
	flagTicks      = flag.Int("ticks", 0, "Stop after this many ticks (0 = until quit)")
	flagScript     = flag.String("script", "", "Input script, e.g. right*10,right+a,none*20")
	flagScreenshot = flag.String("screenshot", "", "Write the last frame to this .bmp or .png file")
	flagRecord     = flag.String("record", "", "Save the input of this run as a replay file")
	flagReplay     = flag.String("replay", "", "Drive input from a replay file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// RunOptions are per-invocation settings taken from flags only.
type RunOptions struct {
	Headless   bool
	Ticks      int
	Script     string
	Screenshot string
	Record     string
	Replay     string
}

// Run returns the run options given on the command line.
func Run() RunOptions {
	return RunOptions{
		Headless:   *flagHeadless,
		Ticks:      *flagTicks,
		Script:     *flagScript,
		Screenshot: *flagScreenshot,
		Record:     *flagRecord,
		Replay:     *flagReplay,
	}
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Debug.Overlay = true
		cfg.Debug.ShowFPS = true
	}
	if *flagScale > 0 {
		cfg.Display.Scale = *flagScale
	}
	if *flagWindowed {
		cfg.Display.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Display.Fullscreen = true
	}
	if *flagAssets != "" {
		cfg.Assets.Dir = *flagAssets
	}
	if *flagSprite != "" {
		cfg.Avatar.Sprite = *flagSprite
	}
	if *flagMute {
		cfg.Audio.Muted = true
	}
}
