// Package runs implements persistence for delivery records.
//
// The FileRepository appends records to a YAML file on disk and exposes a
// Repository interface that the apply service depends on.
package runs
