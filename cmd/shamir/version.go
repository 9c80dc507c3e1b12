package main

import (
	"fmt"
	"runtime"
)

// Version information, set via -ldflags "-X main.Version=x.y.z".
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func versionString() string {
	return fmt.Sprintf("shamir %s (commit %s, %s %s/%s)",
		Version, GitCommit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
