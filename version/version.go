// Package version holds build metadata injected at link time.
package version

import "runtime"

// These are set via -ldflags at build time, e.g.
//
//	go build -ldflags "-X github.com/jackzampolin/thermomap/version.GitRelease=v0.2.0"
var (
	// GitRelease is the release tag the binary was built from.
	GitRelease = "dev"

	// GitCommit is the git commit hash the binary was built from.
	GitCommit = "unknown"

	// GitCommitDate is the commit date of GitCommit.
	GitCommitDate = "unknown"
)

// GoInfo reports the Go toolchain the binary was compiled with.
var GoInfo = runtime.Version()
