// Package version exposes build metadata for the provision binaries.
//
// Version, Commit and BuildTime are injected through -ldflags "-X ..." at
// release time. Short and Full render them for the `version` subcommand.
package version
