// Package applier delivers install sequences on the local host.
//
// It guards the run with a lock marker, executes each package's sequence in
// order through the configured shell, stops at the first failed command and
// records every delivery in the runs file.
package applier
