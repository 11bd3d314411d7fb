package version

import "fmt"

// Commit and BuildTime are injected at build time via -ldflags.
var (
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the version reported by --version: short commit hash plus
// build timestamp, since releases are not tagged with semver.
func String() string {
	commit := Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("git-workspace %s (built %s)", commit, BuildTime)
}
