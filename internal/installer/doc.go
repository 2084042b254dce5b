// Package installer is the composition root for SCM source installs.
//
// An Installer owns a package reference, a source URL, frozen options and a
// stage pipeline, and exposes InstallSequence: the ordered shell commands a
// delivery executes verbatim, stopping at the first failure.
package installer
