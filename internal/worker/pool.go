package worker

import (
	"context"
	"sync"
)

// Job is one unit of work whose value is stored at Index
type Job[T any] struct {
	Index int
	Run   func(ctx context.Context) T
}

type done[T any] struct {
	index int
	value T
}

// Pool runs jobs on a fixed number of goroutines
type Pool[T any] struct {
	workers   int
	jobs      chan Job[T]
	results   chan done[T]
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
	queueOnce sync.Once
}

// NewPool creates a pool whose workers stop when parent is done
func NewPool[T any](parent context.Context, workers int) *Pool[T] {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(parent)
	return &Pool[T]{
		workers: workers,
		jobs:    make(chan Job[T], workers*2),
		results: make(chan done[T], workers*2),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the workers
func (p *Pool[T]) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.work()
	}
}

func (p *Pool[T]) work() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			select {
			case p.results <- done[T]{index: job.Index, value: job.Run(p.ctx)}:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. It returns false once the pool is cancelled.
func (p *Pool[T]) Submit(job Job[T]) bool {
	select {
	case <-p.ctx.Done():
		return false
	case p.jobs <- job:
		return true
	}
}

// Close signals that no more jobs will be submitted
func (p *Pool[T]) Close() {
	p.queueOnce.Do(func() {
		close(p.jobs)
	})
}

// Collect drains results into a slice of length n until every worker has
// exited. ok[i] is false for jobs that never ran. It may run while another
// goroutine is still submitting.
func (p *Pool[T]) Collect(n int) (values []T, ok []bool) {
	go func() {
		p.wg.Wait()
		p.closeResults()
	}()

	values = make([]T, n)
	ok = make([]bool, n)
	for r := range p.results {
		if r.index >= 0 && r.index < n {
			values[r.index] = r.value
			ok[r.index] = true
		}
	}
	return values, ok
}

// Shutdown cancels the workers and waits for them to exit
func (p *Pool[T]) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool[T]) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
