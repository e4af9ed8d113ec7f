// Package server runs the status HTTP server of the daemon.
//
// The server's lifecycle follows a context: it serves until the context is
// cancelled and then shuts down gracefully within the configured timeout.
// It satisfies the workers.Worker contract so it can run next to the
// sync scheduler.
package server
