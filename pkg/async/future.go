package async

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrTimeout is returned when AwaitWithTimeout exceeds its duration.
	ErrTimeout = errors.New("async: await timeout")
	// ErrNoFutures is returned when WaitAny is called with no futures.
	ErrNoFutures = errors.New("async: no futures provided")
)

// Future represents the result of an asynchronous computation.
type Future[T any] struct {
	value T
	err   error
	once  sync.Once
	done  chan struct{}
}

// Async executes fn in a new goroutine and returns a Future for its
// result. If ctx is already cancelled the future completes immediately
// with the context's error, without invoking fn.
func Async[A, T any](ctx context.Context, arg A, fn func(ctx context.Context, arg A) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		if err := ctx.Err(); err != nil {
			f.complete(*new(T), err)
			return
		}
		value, err := fn(ctx, arg)
		f.complete(value, err)
	}()

	return f
}

// Go executes fn in a new goroutine, for computations that need no
// argument beyond the context.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	return Async(ctx, struct{}{}, func(ctx context.Context, _ struct{}) (T, error) {
		return fn(ctx)
	})
}

func (f *Future[T]) complete(value T, err error) {
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
	})
}

// Await blocks until the computation completes and returns its result.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.value, f.err
}

// AwaitWithTimeout waits for completion up to the given duration,
// returning ErrTimeout if the computation is still running.
func (f *Future[T]) AwaitWithTimeout(timeout time.Duration) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-time.After(timeout):
		return *new(T), ErrTimeout
	}
}

// IsComplete checks whether the computation has finished without blocking.
func (f *Future[T]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// WaitAll waits for every future and returns their results in order.
// The first error encountered is returned alongside the partial results.
func WaitAll[T any](futures ...*Future[T]) ([]T, error) {
	results := make([]T, len(futures))
	var firstErr error
	for i, f := range futures {
		value, err := f.Await()
		results[i] = value
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return results, firstErr
}

// WaitAny returns the index and result of the first future to complete.
func WaitAny[T any](futures ...*Future[T]) (int, T, error) {
	if len(futures) == 0 {
		return -1, *new(T), ErrNoFutures
	}

	type outcome struct {
		index int
		value T
		err   error
	}

	ch := make(chan outcome, len(futures))
	for i, f := range futures {
		go func() {
			value, err := f.Await()
			ch <- outcome{index: i, value: value, err: err}
		}()
	}

	first := <-ch
	return first.index, first.value, first.err
}
