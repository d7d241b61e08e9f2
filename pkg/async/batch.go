package async

import (
	"context"
	"time"
)

// Waiter is the part of a worker needed to wait on it. Every *Worker
// implements it, so one batch can hold workers of different value types.
type Waiter interface {
	Wait() error
	WaitTimeout(timeout time.Duration) error
}

// Run launches every task in order and returns their workers in the same
// order. It does not wait.
func Run[T any](ctx context.Context, tasks ...Launcher[T]) []*Worker[T] {
	workers := make([]*Worker[T], len(tasks))
	for i, task := range tasks {
		workers[i] = task.Launch(ctx)
	}
	return workers
}

// WaitAll waits on every waiter without a time limit. It never stops at the
// first failure: all errors are returned together as an *AggregateError.
func WaitAll(waiters ...Waiter) error {
	return Aggregate(WaitEach(waiters...)...)
}

// WaitAllTimeout waits on every waiter in order under one shared budget.
// Each waiter gets whatever is left of timeout once the previous waits have
// returned, down to zero, which still reports workers that already finished.
// Timeouts are collected like any other failure.
func WaitAllTimeout(timeout time.Duration, waiters ...Waiter) error {
	return Aggregate(WaitEachTimeout(timeout, waiters...)...)
}

// WaitEach is WaitAll that reports the error of every waiter by position
// instead of aggregating them.
func WaitEach(waiters ...Waiter) []error {
	errs := make([]error, len(waiters))
	for i, w := range waiters {
		errs[i] = w.Wait()
	}
	return errs
}

// WaitEachTimeout is WaitAllTimeout that reports the error of every waiter
// by position. A slot holds a *TimeoutError when its share of the budget ran
// out, even if the worker finished a moment later.
func WaitEachTimeout(timeout time.Duration, waiters ...Waiter) []error {
	started := time.Now()

	errs := make([]error, len(waiters))
	for i, w := range waiters {
		remaining := max(timeout-time.Since(started), 0)
		errs[i] = w.WaitTimeout(remaining)
	}
	return errs
}

// Aggregate returns the non-nil errors as an *AggregateError, keeping their
// order, or nil when there are none.
func Aggregate(errs ...error) error {
	var failed []error
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	return newAggregateError(failed)
}

// Collect waits for all workers and returns their values by position.
// Failed workers leave the zero value in their slot and contribute to the
// returned *AggregateError.
func Collect[T any](workers ...*Worker[T]) ([]T, error) {
	results := make([]T, len(workers))

	var errs []error
	for i, w := range workers {
		result, err := w.Result()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results[i] = result
	}
	return results, newAggregateError(errs)
}

// WaitAny returns the index, value and error of the first worker to finish.
// One goroutine per worker is spawned; each exits once its worker completes.
func WaitAny[T any](workers ...*Worker[T]) (int, T, error) {
	if len(workers) == 0 {
		var zero T
		return -1, zero, ErrNoWorkers
	}

	// Buffered so late finishers never block.
	done := make(chan int, len(workers))
	for i, w := range workers {
		go func() {
			<-w.Done()
			done <- i
		}()
	}

	index := <-done
	result, err := workers[index].Result()
	return index, result, err
}
