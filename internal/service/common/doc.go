// Package common holds helpers shared by several services.
//
// It provides a lightweight gRPC client for the sequence service with
// timeouts and a helper that detects the current system actor
// (hostname/username) for delivery records.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
