// Package parallel runs indexed render work across a persistent set of
// worker goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// chunk is a half-open index range handed to one worker.
type chunk struct {
	lo, hi int
	fn     func(worker, index int)
	wg     *sync.WaitGroup
}

// Pool is a pool of goroutines for parallel rendering.
//
// Work is submitted as an index range; the pool splits it into chunks
// that idle workers pull from a shared queue, so uneven per-index cost
// still balances. Each invocation receives the worker's id alongside
// the index, which lets callers keep per-worker scratch state (such as
// a rasterizer kernel) without locking.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	workers int
	jobs    chan chunk
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewPool creates a pool with the specified number of workers. If
// workers is 0 or negative, GOMAXPROCS is used. Workers start
// immediately and wait for work.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		workers: workers,
		jobs:    make(chan chunk, workers*4),
		done:    make(chan struct{}),
	}
	p.running.Store(true)
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(i)
	}
	return p
}

// worker is the main loop for each worker goroutine.
func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			// Drain queued work before exiting so Run never deadlocks
			// against a concurrent Close.
			for {
				select {
				case c := <-p.jobs:
					c.run(id)
				default:
					return
				}
			}
		case c := <-p.jobs:
			c.run(id)
		}
	}
}

func (c chunk) run(worker int) {
	for i := c.lo; i < c.hi; i++ {
		c.fn(worker, i)
	}
	c.wg.Done()
}

// Run invokes fn(worker, i) for every i in [0, n) and waits for all
// invocations to complete. The worker argument is in [0, Workers()).
// Indices within one chunk run in order on one worker; chunks run in
// any order. If the pool is closed, remaining work runs on the caller
// with worker id 0.
func (p *Pool) Run(n int, fn func(worker, index int)) {
	if n <= 0 {
		return
	}
	if !p.running.Load() {
		for i := 0; i < n; i++ {
			fn(0, i)
		}
		return
	}

	// Aim for a few chunks per worker so stealing has slack without
	// drowning the queue in tiny ranges.
	size := n / (p.workers * 4)
	if size < 1 {
		size = 1
	}

	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		wg.Add(1)
		c := chunk{lo: lo, hi: hi, fn: fn, wg: &wg}
		select {
		case p.jobs <- c:
		case <-p.done:
			c.run(0)
		}
	}
	wg.Wait()
}

// Close gracefully shuts down the pool. It stops accepting new work,
// lets queued work finish, and stops all workers. Close is safe to call
// multiple times.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool is still accepting work.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}
