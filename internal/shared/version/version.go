// Package version exposes the build version stamped at link time.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Current and Commit are overridden with -ldflags "-X ...".
var (
	Current = "dev"
	Commit  = "unknown"
)

// Normalize ensures version string has "v" prefix for semver compatibility.
// Examples: "1.2.3" -> "v1.2.3", "v1.2.3" -> "v1.2.3"
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// IsRelease reports whether v is a tagged semver release rather than a dev build.
func IsRelease(v string) bool {
	v = Normalize(v)
	return semver.IsValid(v) && semver.Prerelease(v) == ""
}

// String returns the normalized version for release builds and the raw value otherwise.
func String() string {
	if IsRelease(Current) {
		return Normalize(Current)
	}
	return Current
}
