// Package planner turns package declarations into install sequences.
//
// It loads the deployment settings and the manifest, builds one installer per
// selected package with the deployment's scm defaults merged in, and renders
// the resulting command lists.
package planner
