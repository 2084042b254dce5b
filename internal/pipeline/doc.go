// Package pipeline composes the install stages into one ordered command list.
//
// The stages are an explicit ordered slice of descriptors (prepare, download,
// configure, build, install). Each descriptor validates its preconditions and
// produces its commands; the pipeline wraps them with the stage hooks and
// concatenates the results without reordering. Nothing is retained between
// calls: every InstallSequence recomputes the whole list.
package pipeline
