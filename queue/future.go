package queue

import "context"

// Future is the completion side of Async: a write-once container filled when
// the invoker runs. All accessors are safe for concurrent use.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// complete is called at most once; the close publishes value and err.
func (f *Future[T]) complete(v T, err error) {
	f.value = v
	f.err = err
	close(f.done)
}

// Get blocks until the future completes and returns its outcome.
func (f *Future[T]) Get() (T, error) {
	<-f.done
	return f.value, f.err
}

// GetContext is Get with a caller-controlled deadline. If ctx expires first
// it returns the zero value and ctx's error; the invoker keeps running
// regardless, since the pool never cancels work mid-execution.
func (f *Future[T]) GetContext(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// IsReady reports completion without blocking.
func (f *Future[T]) IsReady() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done exposes the completion channel for use in select loops.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Async pushes fn wrapped in an Invoker that completes the returned Future
// with fn's result. The pool's own contract stays fire-and-forget: the
// future rides on top of Push, it is not part of the queue's machinery.
//
// The future always completes eventually. A pool that is already closing
// completes it with ErrPoolClosed before Async returns, and an invoker
// discarded during Close (stopped pool, work still queued) completes it with
// ErrPoolClosed through its discard hook.
//
// Example:
//
//	f := queue.Async(p, func() (int, error) {
//	    return strconv.Atoi(raw)
//	})
//	n, err := f.Get()
func Async[T any](p *Pool, fn func() (T, error)) *Future[T] {
	f := newFuture[T]()
	inv := NewInvoker(func() {
		f.complete(fn())
	}).OnDiscard(func() {
		var zero T
		f.complete(zero, ErrPoolClosed)
	})

	if !p.PushInvoker(inv) {
		var zero T
		f.complete(zero, ErrPoolClosed)
	}
	return f
}
