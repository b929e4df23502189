package config

import "fmt"

// Build information, set from main via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// SetBuildFlags records the build information of the binary
func SetBuildFlags(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date
}

// VersionString describes the running binary, e.g. "v0.3.0 (abc1234, 2025-01-02)"
func VersionString() string {
	if Commit == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s (%s, %s)", Version, Commit, Date)
}
