// Package version reports build metadata for ai-readme.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/ai-readme/ai-readme/pkg/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the release version. Binaries built with go install
// carry no ldflags, so the module version is used when present.
func GetVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := readBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

// GetFullVersion returns the version with commit and build date.
func GetFullVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", GetVersion(), Commit, Date)
}
