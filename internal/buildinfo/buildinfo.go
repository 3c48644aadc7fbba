// Package buildinfo holds version information injected at build time via ldflags:
//
//	-X github.com/edgeshelf/edgeshelf/internal/buildinfo.Version=1.2.0
package buildinfo

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)
