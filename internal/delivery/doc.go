// Package delivery executes install sequences.
//
// A Deliverer runs commands verbatim and in order, stopping at the first
// failure. Shell runs them locally through a shell, Printer only writes them
// out. Lock prevents two deliveries from running on the same host at once.
package delivery
