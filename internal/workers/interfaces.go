// Package workers runs the background loops of the client process, such
// as the sync scheduler and the queue flusher, under one errgroup.
package workers

import "context"

// Worker is a background loop. Run blocks until ctx is cancelled or the
// loop fails; a nil return after cancellation is a clean stop.
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

// WorkerFunc adapts a function to Worker.
type WorkerFunc func(ctx context.Context) error

func (f WorkerFunc) Run(ctx context.Context) error {
	return f(ctx)
}
