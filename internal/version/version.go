// Package version reports which tofi build is running.
package version

import (
	"runtime/debug"
)

// Set at build time via ldflags:
//
//	-X github.com/rnwolfe/tofi/internal/version.Version=v0.3.0
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

const (
	defaultVersion = "dev"
	defaultCommit  = "none"
	defaultDate    = "unknown"
)

// Full returns "version (commit) date".
func Full() string {
	return Version + " (" + Commit + ") " + Date
}

// Short returns the bare version.
func Short() string {
	return Version
}

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		backfill(info)
	}
}

// backfill fills whichever of Version, Commit and Date still hold their
// defaults from the module build info, so `go install` builds report
// something useful. Values set through ldflags are never replaced.
func backfill(info *debug.BuildInfo) {
	if info == nil {
		return
	}

	// "(devel)" means built from a checkout without a tag.
	if Version == defaultVersion && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}

	if Commit == defaultCommit && settings["vcs.revision"] != "" {
		Commit = shortRevision(settings["vcs.revision"])
		if settings["vcs.modified"] == "true" {
			Commit += "-dirty"
		}
	}
	if Date == defaultDate && settings["vcs.time"] != "" {
		Date = settings["vcs.time"]
	}
}

func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
