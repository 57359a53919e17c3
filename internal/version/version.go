// Package version exposes build metadata injected through -ldflags:
//
//	go build -ldflags "-X github.com/valpere/pohoda/internal/version.Version=1.2.0 \
//	  -X github.com/valpere/pohoda/internal/version.GitCommit=$(git rev-parse HEAD)"
package version

import (
	"fmt"
	"runtime"
)

// Set at build time via ldflags
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// Info is the build metadata reported by -version and /health
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

func GetInfo() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
	}
}

// String returns the multi-line form printed by -version
func (i Info) String() string {
	return fmt.Sprintf("Pohoda v%s\nCommit: %s\nBuilt: %s\nGo: %s",
		i.Version, i.GitCommit, i.BuildTime, i.GoVersion)
}

// Short returns the version with an abbreviated commit, e.g. "v1.0.0 (abc123d)"
func (i Info) Short() string {
	return fmt.Sprintf("v%s (%s)", i.Version, i.shortCommit())
}

// UserAgent is the default User-Agent sent to weather providers
func (i Info) UserAgent() string {
	return fmt.Sprintf("Pohoda/%s (+https://github.com/valpere/pohoda)", i.Version)
}

func (i Info) shortCommit() string {
	if len(i.GitCommit) > 7 {
		return i.GitCommit[:7]
	}
	return i.GitCommit
}
