// Package version holds build information injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/stupside/fingerprint/internal/version.Version=v1.2.0"
package version

var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)
