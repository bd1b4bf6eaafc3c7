// Package version records build identification for the jtol binary.
package version

import "fmt"

// Populated by the Go linker (-ldflags "-X ...") at build time.
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// String returns the human-readable version line used in the options banner.
func String() string {
	if Version == "dev" {
		return "jtol dev"
	}
	return fmt.Sprintf("jtol %s (%s, %s)", Version, CommitHash, BuildDate)
}
