// Package version reports build metadata for the running binary
package version

import "runtime/debug"

// BuildInfo is served by /meta/version and stamped into the OpenAPI document
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Set with -ldflags "-X trendscout/internal/core/version.version=v0.1.0 ..."
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// Info returns the build information. Commit and date fall back to the VCS
// stamp the go toolchain embeds, then to "unknown"
func Info() BuildInfo {
	bi := BuildInfo{Service: "trendscout-api", Version: version, Commit: commit, Date: date}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && bi.Commit == "":
				bi.Commit = s.Value
			case s.Key == "vcs.time" && bi.Date == "":
				bi.Date = s.Value
			}
		}
	}
	if bi.Commit == "" {
		bi.Commit = "unknown"
	}
	if bi.Date == "" {
		bi.Date = "unknown"
	}
	return bi
}
