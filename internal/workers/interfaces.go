// Package workers runs the long-lived components of the daemon together.
//
// A [Workers] aggregate starts every [Worker] on its own goroutine and stops
// all of them as soon as one fails or the parent context is cancelled.
package workers

import "context"

// Worker is a long-running component: the sync scheduler, the status server.
//
// Run blocks until ctx is cancelled (returning nil) or the worker fails.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}
