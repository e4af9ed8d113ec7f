package server

import "context"

// Server is a transport server managed by this package.
type Server interface {
	// Run serves requests until ctx is cancelled, then shuts down gracefully.
	// It returns an error only when the server cannot start or stops unexpectedly.
	Run(ctx context.Context) error
}
