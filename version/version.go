// Package version reports the version of the program. The version number is
// set by the linker for release builds, otherwise the version is taken from
// the VCS information embedded by the go tool.
package version

import (
	"fmt"
	"runtime/debug"
)

// The name to use when referring to the application
const ApplicationName = "riva128"

// set by the linker with -X for numbered releases
var number string

// the values below are decided once by init()
var (
	version   string
	revision  string
	goVersion string
)

// Version returns the version string, the revision string and whether this is
// a numbered release.
//
// The version string is "unreleased" if the program has been built without
// a version number but with VCS information, and "local" if there is neither.
// The revision is suffixed with "+dirty" if the source had uncommitted
// changes when built.
func Version() (string, string, bool) {
	return version, revision, number != "" && version == number
}

// Banner is a single line description of the program, suitable for the
// start of a debugging session.
func Banner() string {
	ver, rev, rel := Version()
	if rel {
		return fmt.Sprintf("%s %s", ApplicationName, ver)
	}
	return fmt.Sprintf("%s %s (%s)", ApplicationName, ver, rev)
}

// String returns the full version information, including the Go version the
// program was built with.
func String() string {
	ver, rev, _ := Version()
	return fmt.Sprintf("%s\nversion: %s\nrevision: %s\ngo: %s", ApplicationName, ver, rev, goVersion)
}

func init() {
	var vcs bool
	var vcsRevision string
	var vcsModified bool

	goVersion = "unknown"

	if info, ok := debug.ReadBuildInfo(); ok {
		goVersion = info.GoVersion
		for _, v := range info.Settings {
			switch v.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				vcsRevision = v.Value
			case "vcs.modified":
				vcsModified = v.Value == "true"
			}
		}
	}

	switch {
	case vcsRevision == "":
		revision = "no revision information"
	case vcsModified:
		revision = fmt.Sprintf("%s+dirty", vcsRevision)
	default:
		revision = vcsRevision
	}

	switch {
	case number != "":
		version = number
	case vcs:
		version = "unreleased"
	default:
		version = "local"
	}
}
