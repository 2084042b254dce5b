// Package options holds installer configuration.
//
// A Builder collects values in two layers: package-level values set at
// declaration time and deployment-wide defaults merged in afterwards, which
// only fill keys that are still absent. Build freezes the result into an
// immutable Options snapshot that the pipeline reads.
package options
