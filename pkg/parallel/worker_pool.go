// Package parallel runs independent tasks on a bounded set of goroutines.
package parallel

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dd0wney/regionmask/pkg/logging"
)

var (
	// ErrTooManyWorkers is returned when the worker count exceeds MaxWorkers.
	ErrTooManyWorkers = errors.New("worker count exceeds maximum")
	// ErrTaskPanic wraps a panic recovered from a task.
	ErrTaskPanic = errors.New("task panicked")
)

// MaxWorkers is the maximum number of workers allowed in a pool.
const MaxWorkers = 4096

// Task is one unit of work. A non-nil error is collected by the pool.
type Task func() error

// WorkerPool manages a pool of worker goroutines
type WorkerPool struct {
	workers   int
	taskQueue chan Task
	wg        sync.WaitGroup
	once      sync.Once
	mu        sync.RWMutex // Protects taskQueue from concurrent close during send
	closed    bool         // Protected by mu
	logger    logging.Logger

	errMu sync.Mutex
	errs  []error
}

// NewWorkerPool creates a pool with the given number of workers; values
// below 1 select a single worker. A nil logger discards output.
func NewWorkerPool(workers int, logger logging.Logger) (*WorkerPool, error) {
	if workers <= 0 {
		workers = 1
	}
	if workers > MaxWorkers {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooManyWorkers, workers, MaxWorkers)
	}

	pool := &WorkerPool{
		workers:   workers,
		taskQueue: make(chan Task, workers*2),
		logger:    logging.OrNop(logger).With(logging.Component("worker_pool")),
	}
	pool.start()
	return pool, nil
}

// Workers returns the number of worker goroutines.
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

func (wp *WorkerPool) start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		if err := wp.runTask(task); err != nil {
			wp.errMu.Lock()
			wp.errs = append(wp.errs, err)
			wp.errMu.Unlock()
		}
	}
}

// runTask turns a panic into an ErrTaskPanic error so one bad task does not
// take the worker down.
func (wp *WorkerPool) runTask(task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			wp.logger.Error("task panic recovered", logging.Any("panic", r))
			err = fmt.Errorf("%w: %v", ErrTaskPanic, r)
		}
	}()
	return task()
}

// Submit adds a task to the pool.
// Returns false if the pool is closed, true if the task was queued.
func (wp *WorkerPool) Submit(task Task) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		return false
	}
	wp.taskQueue <- task
	return true
}

// Close stops accepting tasks and waits for queued ones to finish.
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskQueue)
		wp.mu.Unlock()
	})
	wp.wg.Wait()
}

// Wait closes the pool and returns the joined errors of all failed tasks.
func (wp *WorkerPool) Wait() error {
	wp.Close()

	wp.errMu.Lock()
	defer wp.errMu.Unlock()
	return errors.Join(wp.errs...)
}
