// Package version holds the molmark build version.
package version

import (
	"runtime"
	"runtime/debug"
)

// Version is set at build time with -ldflags "-X .../version.Version=...".
var Version = "development"

// Commit is the git commit hash, set at build time.
var Commit = "unknown"

// String returns the version, with the commit appended when known.
func String() string {
	if Commit != "unknown" {
		return Version + "+" + Commit
	}
	return Version
}

// Detailed returns String followed by the Go toolchain and, for module
// builds, the main module version.
func Detailed() string {
	s := String() + " (" + runtime.Version()
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		s += ", module " + info.Main.Version
	}
	return s + ")"
}
