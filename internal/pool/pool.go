// Package pool runs hash tasks on a fixed set of workers. Commit
// applies back-pressure through a weighted semaphore bounding the
// number of in-flight tasks (queued plus running), so producers block
// instead of growing the queue without limit.
package pool

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

// MaxWorkers caps the pool size.
const MaxWorkers = 256

// ErrStopped is returned by Commit after Stop.
var ErrStopped = errors.New("commit on a stopped worker pool")

type Task func()

type Pool struct {
	tasks    chan Task
	inflight *semaphore.Weighted
	wg       sync.WaitGroup
	size     int

	mu      sync.Mutex
	stopped bool
}

// New starts a pool. size 0 selects the hardware concurrency, falling
// back to 8; the result is capped at MaxWorkers.
func New(size int) *Pool {
	if size == 0 {
		size = runtime.NumCPU()
	}
	if size == 0 {
		size = 8
	}
	if size > MaxWorkers {
		size = MaxWorkers
	}

	p := &Pool{
		tasks:    make(chan Task, size),
		inflight: semaphore.NewWeighted(int64(2 * size)),
		size:     size,
	}
	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
		p.inflight.Release(1)
	}
}

// Commit enqueues a task, blocking while the in-flight bound is
// reached. It fails once the pool is stopped.
func (p *Pool) Commit(task Task) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return ErrStopped
	}
	p.mu.Unlock()

	if err := p.inflight.Acquire(context.Background(), 1); err != nil {
		return err
	}
	p.tasks <- task
	return nil
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return p.size
}

// Stop drains in-flight tasks and joins all workers. Further Commit
// calls fail.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	p.mu.Unlock()

	close(p.tasks)
	p.wg.Wait()
}
