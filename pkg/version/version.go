// Package version exposes libhook build metadata, overridable at link time.
package version

import (
	"runtime"
)

var (
	// Version is the libhook release version, set via -ldflags.
	Version = "dev"

	// GitCommit is the source revision the binary was built from.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"

	// GoVersion is the toolchain that produced the binary.
	GoVersion = runtime.Version()
)
