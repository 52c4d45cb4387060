// Package cmd holds build metadata injected with -ldflags.
package cmd

// Set with -ldflags "-X github.com/thoreinstein/unattend/cmd.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
