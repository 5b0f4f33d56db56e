// Package config provides configuration loading for the generator: an
// optional per-user YAML file supplying defaults, and the resolved option
// set for one run.
package config

// FileConfig is the optional on-disk configuration. Every field is a
// default; command-line flags always win.
type FileConfig struct {
	// CC is the compiler driver used for preprocessing and building.
	CC string `yaml:"cc"`
	// IncludeDirs are include directories appended to the ones given on
	// the command line.
	IncludeDirs []string `yaml:"include_dirs"`
	// Measure are instrumentation selectors used when none are given on
	// the command line.
	Measure []string `yaml:"measure"`
	// LogLevel sets the diagnostic level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// DefaultFileConfig returns the built-in defaults.
func DefaultFileConfig() *FileConfig {
	return &FileConfig{
		LogLevel: "info",
	}
}
