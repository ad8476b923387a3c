package workers

import "context"

type Workers struct {
	workers []Worker
}

// NewWorkers aggregates the given workers under one lifecycle.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run launches every worker in its own goroutine and returns immediately.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		go worker.Run(ctx)
	}
}

// Stop stops every worker.
func (w *Workers) Stop() {
	for _, worker := range w.workers {
		worker.Stop()
	}
}
