// Package version carries build metadata, stamped in via -ldflags and
// reported by the encounters -version flag.
package version

var (
	// Version is the release tag of the encounter tooling.
	Version = "dev"
	// GitSHA identifies the exact commit of a build.
	GitSHA = "unknown"
	// BuildTime is when the binary was produced.
	BuildTime = "unknown"
)
