// Package version holds build metadata for the javadocs binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// ProductName is the default value of the PRODUCT_NAME template variable.
const ProductName = "javadocs"

var (
	// Version is the application version, set via ldflags.
	Version string
	// Branch is the git branch, set via ldflags.
	Branch string
	// BuildUser is the user who built the binary, set via ldflags.
	BuildUser string
	// BuildDate is when the binary was built, set via ldflags.
	BuildDate string

	// Revision is the git commit revision.
	Revision = getRevision()
	// GoVersion is the Go version used to build.
	GoVersion = runtime.Version()
	// GoOS is the operating system target.
	GoOS = runtime.GOOS
	// GoArch is the architecture target.
	GoArch = runtime.GOARCH
)

// BuildInfo is a serializable snapshot of the build metadata.
type BuildInfo struct {
	Version   string `json:"version"`
	Revision  string `json:"revision"`
	Branch    string `json:"branch,omitempty"`
	BuildUser string `json:"buildUser,omitempty"`
	BuildDate string `json:"buildDate,omitempty"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// Info returns the current build metadata. An unset [Version] reports as
// "dev".
func Info() BuildInfo {
	v := Version
	if v == "" {
		v = "dev"
	}

	return BuildInfo{
		Version:   v,
		Revision:  Revision,
		Branch:    Branch,
		BuildUser: BuildUser,
		BuildDate: BuildDate,
		GoVersion: GoVersion,
		Platform:  fmt.Sprintf("%s/%s", GoOS, GoArch),
	}
}

// String returns a one-line summary, e.g.
// "javadocs dev (abc123, go1.25.0 linux/amd64)".
func (b BuildInfo) String() string {
	return fmt.Sprintf("%s %s (%s, %s %s)", ProductName, b.Version, b.Revision, b.GoVersion, b.Platform)
}

func getRevision() string {
	rev := "unknown"

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return rev
	}

	modified := false

	for _, v := range buildInfo.Settings {
		switch v.Key {
		case "vcs.revision":
			rev = v.Value
		case "vcs.modified":
			if v.Value == "true" {
				modified = true
			}
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}
