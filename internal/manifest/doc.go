// Package manifest reads package declarations.
//
// A manifest lists packages with their version, source URL and installer
// options. Files ending in .toml are decoded with go-toml; everything else is
// treated as YAML.
package manifest
