package worker

import (
	"context"

	"github.com/ppiankov/cfpwatch/internal/model"
)

// UnitFunc processes one conference edition end-to-end
type UnitFunc[T any] func(ctx context.Context, key model.ConferenceKey) T

// BatchProcessor runs units sequentially or on a worker pool.
// Results always come back in input order.
type BatchProcessor[T any] struct {
	process     UnitFunc[T]
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor[T any](process UnitFunc[T], concurrency int) *BatchProcessor[T] {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchProcessor[T]{
		process:     process,
		concurrency: concurrency,
	}
}

// ProcessUnits processes every key and returns values aligned with keys.
// Units the pool never reached after cancellation still run, so they report
// the context error through their own value.
func (b *BatchProcessor[T]) ProcessUnits(ctx context.Context, keys []model.ConferenceKey) []T {
	if b.concurrency == 1 || len(keys) <= 1 {
		values := make([]T, len(keys))
		for i, key := range keys {
			values[i] = b.process(ctx, key)
		}
		return values
	}

	pool := NewPool[T](ctx, b.concurrency)
	pool.Start()

	go func() {
		defer pool.Close()
		for i, key := range keys {
			job := Job[T]{Index: i, Run: func(ctx context.Context) T { return b.process(ctx, key) }}
			if !pool.Submit(job) {
				return
			}
		}
	}()

	values, ok := pool.Collect(len(keys))
	for i, key := range keys {
		if !ok[i] {
			values[i] = b.process(ctx, key)
		}
	}
	return values
}
