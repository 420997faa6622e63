// Package worker provides a worker pool for checking save files in parallel.
package worker

import (
	"sync"
	"sync/atomic"
)

// WorkItem represents a save file to be processed.
type WorkItem struct {
	Path  string
	Index int // position in the input list
}

// ProcessResult represents the result of processing a save file.
type ProcessResult struct {
	Path       string
	Index      int
	MoveIndex  int    // Move index stored in the file
	Turn       string // Side to move, empty in header-only mode
	Status     string // Game status, empty in header-only mode
	Signature  uint64
	Duplicates []string // Earlier files holding the same position
	Error      error
}

// OK reports whether the file loaded cleanly.
func (r ProcessResult) OK() bool {
	return r.Error == nil
}

// ProcessFunc checks one file.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool fans save files out to a fixed set of goroutines. Results arrive
// in completion order; callers that need input order use the item Index.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopped     atomic.Bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines. Values below one are
// ignored.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the capacity of the work and result channels.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a pool running fn on every submitted file. Without
// options it has one worker and a buffer of ten.
func NewPool(fn ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: fn,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.stopped.Load() {
			continue
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit queues a file, blocking while the buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// Stop makes the workers skip everything still queued.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// IsStopped reports whether Stop has been called.
func (p *Pool) IsStopped() bool {
	return p.stopped.Load()
}

// Close ends submission, waits for the workers and closes Results.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the channel of finished files.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}
