package renderer

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

const (
	// workerQueueSize bounds the number of tasks waiting or running at once
	workerQueueSize = 256
	workerIdleTime  = time.Second
)

// WorkerPool runs tile tasks on a fixed number of reusable goroutines.
// The workers live as long as the pool, so renders share pools through
// SharedWorkerPool instead of creating one each.
type WorkerPool struct {
	pool       worker.DynamicWorkerPool
	numWorkers int
	inFlight   chan struct{}
	nextID     atomic.Int64
}

var (
	sharedPoolsMu sync.Mutex
	sharedPools   = make(map[int]*WorkerPool)
)

// NewWorkerPool creates a pool with numWorkers workers, or one fewer than
// the CPU count when numWorkers is not positive
func NewWorkerPool(numWorkers int) *WorkerPool {
	numWorkers = resolveWorkers(numWorkers)
	return &WorkerPool{
		pool:       worker.NewDynamicWorkerPool(numWorkers, workerQueueSize, workerIdleTime),
		numWorkers: numWorkers,
		inFlight:   make(chan struct{}, workerQueueSize),
	}
}

// SharedWorkerPool returns the process-wide pool with numWorkers workers,
// creating it on first use
func SharedWorkerPool(numWorkers int) *WorkerPool {
	numWorkers = resolveWorkers(numWorkers)

	sharedPoolsMu.Lock()
	defer sharedPoolsMu.Unlock()
	if pool, ok := sharedPools[numWorkers]; ok {
		return pool
	}
	pool := NewWorkerPool(numWorkers)
	sharedPools[numWorkers] = pool
	return pool
}

func resolveWorkers(numWorkers int) int {
	if numWorkers <= 0 {
		return max(runtime.NumCPU()-1, 1)
	}
	return numWorkers
}

// Run executes every task on the pool and returns once all of them are
// done. Concurrent Runs on the same pool share its workers and each waits
// only for its own tasks.
func (wp *WorkerPool) Run(tasks []func()) {
	var wg sync.WaitGroup
	for _, task := range tasks {
		wp.inFlight <- struct{}{}
		wg.Add(1)

		wp.pool.SubmitTask(worker.Task{
			ID: int(wp.nextID.Add(1)),
			Do: func() (any, error) {
				defer func() { <-wp.inFlight }()
				defer wg.Done()
				task()
				return nil, nil
			},
		})
	}
	wg.Wait()
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}
