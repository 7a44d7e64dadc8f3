// Package worker provides the concurrent batch ingestion machinery: a small
// worker pool and a JSONL batch processor feeding claims into the engine.
// Parallelism here is throughput-only; each item still goes through the
// exact same linking sequence it would on a single-item ingest.
package worker

import (
	"context"
	"sync"
)

// Job is one unit of work executed by the pool
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one job
type Result interface {
	GetError() error
}

// Pool runs jobs across a fixed number of workers. Results are drained into
// a collector as they arrive, so Submit never deadlocks against a full
// results channel no matter how many jobs are queued.
type Pool struct {
	workers    int
	jobQueue   chan Job
	results    chan Result
	collector  *ResultCollector
	drained    chan struct{}
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
}

// NewPool creates a pool with the given worker count. The pool's context is
// derived from ctx; cancelling it stops queued and in-flight jobs.
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	poolCtx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan Job, workers*2),
		results:    make(chan Result, workers*2),
		collector:  NewResultCollector(),
		drained:    make(chan struct{}),
		ctx:        poolCtx,
		cancelFunc: cancel,
	}
}

// Start launches the workers and the result drain
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	go func() {
		for result := range p.results {
			p.collector.Add(result)
		}
		close(p.drained)
	}()
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job for execution
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobQueue <- job:
	}
}

// Wait closes the queue, waits for all submitted jobs, and returns their
// results. Result order does not match submission order.
func (p *Pool) Wait() []Result {
	close(p.jobQueue)
	p.wg.Wait()
	p.closeResults()
	<-p.drained
	return p.collector.Results()
}

// Shutdown cancels outstanding work and waits for workers to exit
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
	<-p.drained
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}

// ResultCollector accumulates results as they arrive
type ResultCollector struct {
	results []Result
	mu      sync.Mutex
}

// NewResultCollector creates an empty collector
func NewResultCollector() *ResultCollector {
	return &ResultCollector{
		results: make([]Result, 0),
	}
}

// Add appends a result (thread-safe)
func (c *ResultCollector) Add(result Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, result)
}

// Results returns all collected results
func (c *ResultCollector) Results() []Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results
}
