// Package remote asks a provision-server for install sequences.
//
// Every declaration is sent as written in the manifest; the server merges
// its own defaults under it, so the result matches a local plan made with
// the same settings.
package remote
