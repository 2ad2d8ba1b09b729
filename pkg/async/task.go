// Package async models single-shot asynchronous operations (file reads, HTTP
// calls) as tasks with exactly one completion carrying a value or an error.
package async

import (
	"context"
	"sync"
)

// Task is the handle of an operation that completes exactly once.
type Task[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
	err   error
}

// New returns a pending task and the function that completes it. Only the
// first call to complete has an effect.
func New[T any]() (*Task[T], func(T, error)) {
	t := &Task[T]{done: make(chan struct{})}
	return t, t.complete
}

// Go runs fn on its own goroutine and completes the task with its result.
func Go[T any](fn func() (T, error)) *Task[T] {
	t, complete := New[T]()
	go func() {
		complete(fn())
	}()
	return t
}

// Resolved returns a task that is already complete.
func Resolved[T any](value T, err error) *Task[T] {
	t, complete := New[T]()
	complete(value, err)
	return t
}

func (t *Task[T]) complete(value T, err error) {
	t.once.Do(func() {
		t.value = value
		t.err = err
		close(t.done)
	})
}

// Done is closed once the task completes.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Completed reports whether the task has finished.
func (t *Task[T]) Completed() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the task completes or ctx is done.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.value, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
