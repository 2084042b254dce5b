// Package logger wraps zap for the provision binaries.
//
// A process-wide sugared logger writes console output to stderr; its level
// is set once from --log-level. Services and the installer pipeline carry
// a named logger in the context (WithName, WithKV, WithFields), so stage
// and delivery messages say which package they belong to.
package logger
