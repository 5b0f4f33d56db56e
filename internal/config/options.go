package config

import (
	"fmt"
	"os"
)

// StdoutOutput and StderrOutput are the conventional output values denoting
// the process streams instead of a file path.
const (
	StdoutOutput = "-"
	StderrOutput = "-2"
)

// Stream maps a conventional output value to its process stream. The second
// return is false when the value is a regular file path.
func Stream(output string) (*os.File, bool) {
	switch output {
	case StdoutOutput:
		return os.Stdout, true
	case StderrOutput:
		return os.Stderr, true
	}
	return nil, false
}

// Options is the resolved command surface for one generation run, after
// merging command-line flags with the config file.
type Options struct {
	// IncludeDirs are passed to the preprocessor and to the final build.
	IncludeDirs []string
	// Headers are the headers whose declarations get hooked.
	Headers []string
	// Patterns are ordered function-name patterns, OR'd with
	// first-match-wins semantics.
	Patterns []string
	// Measure are the raw instrumentation selectors.
	Measure []string
	// Output is the generated source destination; StdoutOutput selects
	// standard output.
	Output string
	// Build triggers the toolchain after writing the generated source.
	Build bool
	// LibPath is the shared object path written when Build is set.
	LibPath string
	// CC is the compiler driver.
	CC string
	// Debug raises the diagnostic level.
	Debug bool
}

// ApplyDefaults fills unset options from the file configuration. Command
// line values always win; file include directories are appended after the
// command line ones so their search order stays stable.
func (o *Options) ApplyDefaults(fc *FileConfig) {
	if o.CC == "" {
		o.CC = fc.CC
	}
	o.IncludeDirs = append(o.IncludeDirs, fc.IncludeDirs...)
	if len(o.Measure) == 0 {
		o.Measure = append(o.Measure, fc.Measure...)
	}
	if o.Output == "" {
		o.Output = StdoutOutput
	}
}

// Validate reports usage errors. It runs before any generation work; the
// caller terminates with non-zero status on error.
func (o *Options) Validate() error {
	if len(o.Headers) == 0 {
		return fmt.Errorf("at least one header is required (--header)")
	}
	if len(o.IncludeDirs) == 0 {
		return fmt.Errorf("at least one include directory is required (--include-dir)")
	}
	if len(o.Patterns) == 0 {
		return fmt.Errorf("at least one function pattern is required (--function)")
	}
	if o.Build && o.LibPath == "" {
		return fmt.Errorf("--lib is required when --build is set")
	}
	return nil
}
