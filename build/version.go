package build

import "fmt"

const (
	// AppMajor defines the major version of this binary.
	AppMajor uint = 0

	// AppMinor defines the minor version of this binary.
	AppMinor uint = 3

	// AppPatch defines the application patch for this binary.
	AppPatch uint = 1

	// AppPreRelease is appended to the version string when non-empty.
	AppPreRelease = "beta"
)

// Commit stores the current commit of this build, set at link time with
// -ldflags "-X github.com/lightningnetwork/teakit/build.Commit=...".
var Commit string

// Version returns the application version formatted as a semantic version
// (http://semver.org/).
func Version() string {
	version := fmt.Sprintf("%d.%d.%d", AppMajor, AppMinor, AppPatch)
	if AppPreRelease != "" {
		version = fmt.Sprintf("%s-%s", version, AppPreRelease)
	}

	return version
}
