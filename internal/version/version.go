// Package version exposes build metadata for `mdstatus --version`.
package version

import (
	"fmt"
)

// These variables are populated at build time via
// -ldflags "-X github.com/faizmokh/mdstatus/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns the version string printed by --version.
func Info() string {
	if Commit == "none" && Date == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
