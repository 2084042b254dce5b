// Package server runs the gRPC sequence service.
//
// It loads the deployment settings, merges their scm defaults under every
// request and serves install sequences until the context is canceled.
package server
