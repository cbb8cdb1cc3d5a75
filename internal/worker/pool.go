// Package worker provides the pool used to process conferences in
// parallel. Conference datasets are read-only with disjoint outputs, so
// parallelism here is purely a throughput optimization.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work, typically one conference.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of a job.
type Result interface {
	Err() error
}

// Pool runs jobs across a fixed number of workers. Submit all jobs, then
// call Wait once to collect the results. Results are drained continuously,
// so any number of jobs may be submitted without blocking the workers.
type Pool struct {
	workers   int
	jobs      chan Job
	results   chan Result
	workerWg  sync.WaitGroup
	collectWg sync.WaitGroup
	collected []Result
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewPool creates a pool with the given worker count; counts below one
// fall back to a single worker. Workers start immediately.
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	p := &Pool{
		workers: workers,
		jobs:    make(chan Job, workers),
		results: make(chan Result, workers),
		ctx:     ctx,
		cancel:  cancel,
	}

	p.collectWg.Add(1)
	go p.collect()

	for i := 0; i < workers; i++ {
		p.workerWg.Add(1)
		go p.run()
	}
	return p
}

func (p *Pool) run() {
	defer p.workerWg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			p.results <- job.Execute(p.ctx)
		}
	}
}

func (p *Pool) collect() {
	defer p.collectWg.Done()
	for result := range p.results {
		p.collected = append(p.collected, result)
	}
}

// Submit queues a job. Submitting after Wait is not allowed.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobs <- job:
	}
}

// Wait closes the queue, waits for the workers to drain it, and returns
// every collected result.
func (p *Pool) Wait() []Result {
	close(p.jobs)
	p.workerWg.Wait()
	close(p.results)
	p.collectWg.Wait()
	p.cancel()
	return p.collected
}
