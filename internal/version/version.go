// Package version provides build-time version information.
package version

import "fmt"

// Set at build time with -ldflags "-X coord-transf/internal/version.GitCommit=..."
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String returns a one-line description of the build.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
