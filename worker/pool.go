// Package worker provides a bounded pool of goroutines for batch mapping.
// Each submitted task owns its work entirely; the pool adds no shared state
// beyond the queue, so tasks that each create their own traversal context
// remain safe to run concurrently.
package worker

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// Task is one unit of work.
type Task func()

// Pool executes tasks on a fixed set of worker goroutines.
type Pool struct {
	tasks  chan Task
	cancel context.CancelFunc
	ctx    context.Context
	wg     sync.WaitGroup
	closed atomic.Bool

	submitted atomic.Uint64
	completed atomic.Uint64
}

// NewPool creates a pool with the given number of workers. Non-positive
// counts default to runtime.NumCPU().
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		tasks:  make(chan Task, workers*2),
		ctx:    ctx,
		cancel: cancel,
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
		p.completed.Add(1)
	}
}

// Submit queues a task, blocking while the queue is full. It reports false
// once the pool is closed.
func (p *Pool) Submit(task Task) bool {
	if p.closed.Load() {
		return false
	}
	select {
	case <-p.ctx.Done():
		return false
	case p.tasks <- task:
		p.submitted.Add(1)
		return true
	}
}

// Close stops accepting tasks and waits for queued ones to finish.
func (p *Pool) Close() {
	if p.closed.Swap(true) {
		return
	}
	p.cancel()
	close(p.tasks)
	p.wg.Wait()
}

// Submitted returns the number of tasks accepted.
func (p *Pool) Submitted() uint64 {
	return p.submitted.Load()
}

// Completed returns the number of tasks finished.
func (p *Pool) Completed() uint64 {
	return p.completed.Load()
}

// Run executes all tasks on a temporary pool of the given width and waits
// for completion. It is the convenience path used for one-shot batches.
func Run(workers int, tasks []Task) {
	p := NewPool(workers)
	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for _, task := range tasks {
		task := task
		p.Submit(func() {
			defer wg.Done()
			task()
		})
	}
	wg.Wait()
	p.Close()
}
