// Package fanout runs independent tasks with settle-all semantics: every
// task runs to completion or failure without cancelling its siblings, and
// the caller merges outcomes only after all tasks have settled.
package fanout

import (
	"context"
	"sync"
)

// Result is the typed outcome of one task: either a value or the cause of
// its failure.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the task settled successfully.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// SettleAll runs every task concurrently and waits for all of them.
// Outcomes are returned in task order; no task's failure affects another.
func SettleAll[T any](ctx context.Context, tasks []func(context.Context) (T, error)) []Result[T] {
	results := make([]Result[T], len(tasks))

	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func(i int, task func(context.Context) (T, error)) {
			defer wg.Done()
			value, err := task(ctx)
			results[i] = Result[T]{Value: value, Err: err}
		}(i, task)
	}
	wg.Wait()

	return results
}

// Successes extracts the values of the settled tasks that succeeded,
// preserving task order.
func Successes[T any](results []Result[T]) []T {
	values := make([]T, 0, len(results))
	for _, r := range results {
		if r.OK() {
			values = append(values, r.Value)
		}
	}
	return values
}

// AllFailed reports whether not a single task succeeded.
func AllFailed[T any](results []Result[T]) bool {
	for _, r := range results {
		if r.OK() {
			return false
		}
	}
	return len(results) > 0
}
