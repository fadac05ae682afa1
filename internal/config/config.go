// Package config handles meshtool configuration loading and management.
package config

// Config holds all meshtool settings.
type Config struct {
	Simplify SimplifyConfig `yaml:"simplify"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SimplifyConfig holds decimation parameters.
type SimplifyConfig struct {
	TargetFaces      int     `yaml:"target_faces"`
	MaxError         float64 `yaml:"max_error"` // <= 0 means unbounded
	PreserveBoundary bool    `yaml:"preserve_boundary"`
	BoundaryWeight   float64 `yaml:"boundary_weight"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Simplify: SimplifyConfig{
			TargetFaces:      1000,
			MaxError:         0,
			PreserveBoundary: false,
			BoundaryWeight:   1.0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
