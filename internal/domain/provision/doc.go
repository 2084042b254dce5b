// Package provision contains core domain types shared by the installer
// pipeline, the delivery layer and the run records.
//
// It defines Package (what is installed) and Actor (who ran a delivery).
package provision
