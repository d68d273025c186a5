// Package version holds build information for the versionsync binary.
package version

import "runtime/debug"

// Set with -ldflags at build time.
var (
	Version  = "0.0.0-dev"
	Revision = ""
)

func init() {
	if Revision != "" {
		return
	}

	Revision = "unknown"

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			Revision = s.Value
		}
	}
}
