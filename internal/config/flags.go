package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagTarget   = flag.Int("target", 0, "Target face count")
	flagMaxError = flag.Float64("max-error", 0, "Maximum collapse error (0 = unbounded)")
	flagBoundary = flag.Bool("preserve-boundary", false, "Never collapse boundary edges")
	flagWeight   = flag.Float64("boundary-weight", 0, "Boundary fin quadric weight")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags(args []string) error {
	return flag.CommandLine.Parse(args)
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
	if *flagTarget > 0 {
		cfg.Simplify.TargetFaces = *flagTarget
	}
	if *flagMaxError > 0 {
		cfg.Simplify.MaxError = *flagMaxError
	}
	if *flagBoundary {
		cfg.Simplify.PreserveBoundary = true
	}
	if *flagWeight > 0 {
		cfg.Simplify.BoundaryWeight = *flagWeight
	}
}
