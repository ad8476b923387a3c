// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface, a Workers aggregate that runs multiple
// workers in a unified way, and the session pruner that sweeps expired
// session rows.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run blocks until ctx is cancelled or Stop is called. Stop must be safe to
// call more than once and before Run.
type Worker interface {
	Run(ctx context.Context)
	Stop()
}
