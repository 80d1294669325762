package renderer

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_RunsEveryTask(t *testing.T) {
	pool := NewWorkerPool(3)
	if pool.GetNumWorkers() != 3 {
		t.Errorf("GetNumWorkers() = %d, want 3", pool.GetNumWorkers())
	}

	// More tasks than the queue holds so Run has to wait for slots
	const count = 3 * workerQueueSize
	var done atomic.Int64
	tasks := make([]func(), count)
	for i := range tasks {
		tasks[i] = func() { done.Add(1) }
	}
	pool.Run(tasks)

	if got := done.Load(); got != count {
		t.Errorf("ran %d tasks, want %d", got, count)
	}
}

func TestWorkerPool_ConcurrentRuns(t *testing.T) {
	pool := NewWorkerPool(2)

	const runs, perRun = 4, 100
	var counts [runs]atomic.Int64
	var wg sync.WaitGroup
	for r := 0; r < runs; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tasks := make([]func(), perRun)
			for i := range tasks {
				tasks[i] = func() { counts[r].Add(1) }
			}
			pool.Run(tasks)
			// Run returns only after its own tasks are done
			if got := counts[r].Load(); got != perRun {
				t.Errorf("run %d: %d tasks done when Run returned, want %d", r, got, perRun)
			}
		}()
	}
	wg.Wait()
}

func TestSharedWorkerPool_Reused(t *testing.T) {
	if SharedWorkerPool(5) != SharedWorkerPool(5) {
		t.Error("SharedWorkerPool(5) returned different pools")
	}
	if SharedWorkerPool(5) == SharedWorkerPool(6) {
		t.Error("pools of different sizes must differ")
	}
	if SharedWorkerPool(0) != SharedWorkerPool(resolveWorkers(0)) {
		t.Error("default size should map to the resolved worker count")
	}
}

func TestWorkerPool_DefaultSize(t *testing.T) {
	if n := NewWorkerPool(0).GetNumWorkers(); n < 1 {
		t.Errorf("default pool has %d workers", n)
	}
}
