// Package scm maps a declared source-control kind to the command that fetches
// a checkout. The set of backends is closed: git, svn, hg, bzr, darcs and cvs.
package scm
