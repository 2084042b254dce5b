// Package source derives the build directory name a checkout lands in.
package source
