// Package version provides build and version information.
package version

import (
	"fmt"
	"runtime"
)

// Version is the current application version.
const Version = "0.3.0"

// Commit is set at build time with -ldflags "-X .../version.Commit=...".
var Commit = "dev"

// Milestones:
// 0.3.0 - Cobra CLI, day trace, suncalc events, meeus cross-check, .env config
// 0.2.0 - Bubble Tea session UI with day sparkline
// 0.1.0 - Initial release: interactive altitude/azimuth prompts

// String returns a one-line version description.
func String() string {
	return fmt.Sprintf("ls-sunpos v%s (%s, %s/%s)", Version, Commit, runtime.GOOS, runtime.GOARCH)
}
