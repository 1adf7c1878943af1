package bridge

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"backupbridge/internal/common"
)

// DefaultWorkers bounds the pool when no worker count is configured.
const DefaultWorkers = 4

// Executor is the single worker pool blocking backend calls are offloaded
// to. The semaphore bounds concurrency; the caller's goroutine waits for
// the result or for its context, whichever comes first.
type Executor struct {
	sem       *semaphore.Weighted
	capacity  int64
	submitted atomic.Int64
}

func NewExecutor(workers int) *Executor {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Executor{
		sem:      semaphore.NewWeighted(int64(workers)),
		capacity: int64(workers),
	}
}

type outcome struct {
	value any
	err   error
}

// Submit runs fn on the pool and waits for the result. A cancelled or
// expired context releases the caller immediately; the worker still runs
// to completion and returns its permit. Panics inside fn surface as
// internal errors instead of killing the process.
func (e *Executor) Submit(ctx context.Context, op string, fn func() (any, error)) (any, error) {
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrorBackendUnavailable, op, err)
	}
	e.submitted.Add(1)

	ch := make(chan outcome, 1)
	go func() {
		defer e.sem.Release(1)
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{err: fmt.Errorf("%w: %s: panic: %v", common.ErrorInternal, op, r)}
			}
		}()
		value, err := fn()
		ch <- outcome{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %s: %v", common.ErrorBackendUnavailable, op, ctx.Err())
	case out := <-ch:
		return out.value, out.err
	}
}

// Submitted reports how many calls have been handed to the pool.
func (e *Executor) Submitted() int64 {
	return e.submitted.Load()
}

// Drain blocks until every in-flight worker has finished or ctx is done.
func (e *Executor) Drain(ctx context.Context) error {
	if err := e.sem.Acquire(ctx, e.capacity); err != nil {
		return err
	}
	e.sem.Release(e.capacity)
	return nil
}
