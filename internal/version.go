package internal

import (
	"fmt"
	"runtime"

	"github.com/blang/semver/v4"
)

// Version is set at build time with -ldflags "-X github.com/mini-infragpt/infragpt/internal.Version=1.2.3 (commit abc)".
var Version = "1.0.0 (commit 0000000000000000000000000000000000000000)"

// VersionSpec is the parsed form of Version.
type VersionSpec struct {
	Version semver.Version `json:"version"`
	Commit  string         `json:"commit"`
}

// VersionInfo parses Version. A value that does not start with a semantic version is reported as 0.0.0.
func VersionInfo() VersionSpec {
	var raw, commit string
	if _, err := fmt.Sscanf(Version, "%s (commit %40s)", &raw, &commit); err != nil {
		fmt.Sscanf(Version, "%s", &raw)
	}

	ver, err := semver.Parse(raw)
	if err != nil {
		ver = semver.Version{}
	}

	return VersionSpec{
		Version: ver,
		Commit:  commit,
	}
}

// UserAgent identifies this build in outbound requests and logs.
func UserAgent() string {
	return fmt.Sprintf("infragpt/%s (Go %s; %s/%s)", VersionInfo().Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
