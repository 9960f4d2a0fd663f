// Package worker provides a bounded worker pool for fanning work out across goroutines.
package worker

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Pool bounds how many tasks run at once. A Pool holds no goroutines between
// calls and may be shared by concurrent callers.
type Pool struct {
	numWorkers int
	stopFlag   int32 // Atomic flag for early termination
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the maximum number of concurrent tasks.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// NewPool creates a pool. Default: one worker per CPU.
func NewPool(opts ...PoolOption) *Pool {
	p := &Pool{numWorkers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(p)
	}
	if p.numWorkers < 1 {
		p.numWorkers = 1
	}
	return p
}

// Stop signals that tasks not yet started should be skipped.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Map applies fn to every item and returns the results in item order.
// It returns once every task has finished. Items not started before Stop
// leave the zero value in their slot.
func Map[T, R any](p *Pool, items []T, fn func(T) R) []R {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results
	}
	if p.numWorkers == 1 || len(items) == 1 {
		for i, item := range items {
			if p.IsStopped() {
				break
			}
			results[i] = fn(item)
		}
		return results
	}

	var g errgroup.Group
	g.SetLimit(p.numWorkers)
	for i, item := range items {
		g.Go(func() error {
			if !p.IsStopped() {
				results[i] = fn(item)
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// MapContext is Map for fallible tasks. The first error cancels the context
// handed to the remaining tasks and is returned once all tasks have finished.
func MapContext[T, R any](ctx context.Context, p *Pool, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.numWorkers)
	for i, item := range items {
		g.Go(func() error {
			if p.IsStopped() {
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := fn(ctx, item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	return results, g.Wait()
}
