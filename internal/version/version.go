// Package version exposes build metadata injected through -ldflags.
package version

var (
	// Version is the semantic version of the build.
	//nolint:gochecknoglobals // Overridden at link time.
	Version = "0.1.0"
	// Commit is the VCS revision of the build.
	//nolint:gochecknoglobals // Overridden at link time.
	Commit = "none"
	// BuildTime is the build timestamp.
	//nolint:gochecknoglobals // Overridden at link time.
	BuildTime = "unknown"
)

// Short returns the bare version string.
func Short() string {
	return Version
}

// Full returns the version together with commit and build time.
func Full() string {
	return "version: " + Version + ", commit: " + Commit + ", built at: " + BuildTime
}
