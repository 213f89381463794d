package analyzer

import (
	"runtime"
	"sync"
)

// WorkerPool runs analyzer stages concurrently. The five analyzers share no
// mutable state, so each pipeline invocation fans its stages out here and
// waits for all of them.
type WorkerPool struct {
	workers  int
	jobQueue chan func()
	once     sync.Once
	closed   sync.Once
}

// NewWorkerPool creates a new worker pool with the specified number of
// workers, defaulting to the CPU count.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &WorkerPool{
		workers:  workers,
		jobQueue: make(chan func(), workers*2),
	}
}

// Start initializes and starts all workers in the pool
func (wp *WorkerPool) Start() {
	wp.once.Do(func() {
		for i := 0; i < wp.workers; i++ {
			go wp.worker()
		}
	})
}

// worker processes jobs from the job queue
func (wp *WorkerPool) worker() {
	for job := range wp.jobQueue {
		job()
	}
}

// Submit adds a job to the worker pool queue
func (wp *WorkerPool) Submit(job func()) {
	wp.jobQueue <- job
}

// Close shuts down the worker pool
func (wp *WorkerPool) Close() {
	wp.closed.Do(func() {
		close(wp.jobQueue)
	})
}
