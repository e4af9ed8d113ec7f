// Package http implements the status API of the sync daemon.
//
// Routes are read-only: the per-resource sync state with the last run report,
// the build version and a liveness probe. Every request gets a trace id and
// an access log entry before it reaches the service layer.
package http
