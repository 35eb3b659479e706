// Package version exposes the build version of the analytics toolkit.
package version

import "runtime/debug"

var version = "dev"

// Version returns the module version embedded by the Go toolchain, falling
// back to the locally assigned string for source builds.
func Version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
		return info.Main.Version
	}
	return version
}

// Set assigns the version for builds that inject it via -ldflags.
func Set(v string) {
	if v != "" {
		version = v
	}
}
