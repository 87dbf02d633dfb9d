// Package buildinfo carries the version identity stamped into release
// binaries via -ldflags; a plain `go build` reports the dev defaults.
package buildinfo

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
