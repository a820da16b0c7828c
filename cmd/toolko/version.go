package main

import (
	"fmt"
	"runtime"
)

// Release metadata, stamped at link time:
//
//	go build -ldflags "-X main.version=v1.2.0 -X main.gitCommit=$(git rev-parse --short HEAD)"
//
// A plain `go build` leaves the dev defaults in place.
var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

// BuildInfo identifies the running toolko binary in the startup banner.
type BuildInfo struct {
	Version, BuildDate, GitCommit, GoVersion, Platform string
}

func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}
