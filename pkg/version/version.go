// Package version holds the pw version string.
package version

// Version is the current pw version. Overridden at build time:
//
//	go build -ldflags "-X github.com/primewatch/primewatch/pkg/version.Version=v1.2.3"
var Version = "dev"
