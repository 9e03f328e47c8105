// Package version holds build metadata injected via -ldflags.
package version

var (
	// Version is the release version, e.g. "0.3.0".
	Version = "dev"
	// Commit is the git commit hash the binary was built from.
	Commit = "none"
	// BuildDate is the UTC build timestamp.
	BuildDate = "unknown"
)
