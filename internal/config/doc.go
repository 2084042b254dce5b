// Package config defines deployment settings used by the provision binaries
// and provides helpers to load, validate and save them in YAML format.
//
// The Config type holds per-installer option defaults, the local delivery
// shell and state files, and the gRPC sequence service address.
package config
