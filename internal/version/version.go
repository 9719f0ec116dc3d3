// Package version holds the build-time version string, set via
// -ldflags -X, grounded in tools/dev's "-ldflags -X .../config.GitHash=..."
// pattern for injecting a git hash into a Go binary at build time.
package version

// Version is overridden at build time, e.g.:
//
//	go build -ldflags "-X github.com/arangodb-helper/graphutils/internal/version.Version=2.1.0"
var Version = "dev"

// Banner returns the string printed for --version.
func Banner() string {
	return "smartifier2: Version " + Version
}
