package queue

import (
	"runtime"
	"sync/atomic"

	"go.uber.org/zap"
)

// Invoker is a type-erased, once-callable unit of deferred work. It captures
// a function together with any bound arguments and guarantees the body runs
// at most once, no matter how many goroutines race on Invoke.
//
// The pool stores Invokers in its task queue and never looks at a result;
// anything a call site needs back must be captured inside the body itself
// (see Async for the packaged way to do that).
type Invoker struct {
	fn        func()
	spent     atomic.Bool
	onDiscard func()
}

// NewInvoker wraps fn as an Invoker. fn must be non-nil.
func NewInvoker(fn func()) *Invoker {
	if fn == nil {
		panic("queue: NewInvoker called with nil function")
	}
	return &Invoker{fn: fn}
}

// Bind captures fn together with its argument, the typed equivalent of
// binding call arguments at push time.
//
// Example:
//
//	inv := queue.Bind(processOrder, order)
//	p.PushInvoker(inv)
func Bind[T any](fn func(T), arg T) *Invoker {
	return NewInvoker(func() { fn(arg) })
}

// OnDiscard registers a hook that fires if the pool throws the invoker away
// without running it, which happens only when a stopped pool is closed with
// work still queued. It returns the invoker for chaining. Async uses this to
// fail its Future instead of leaving callers blocked forever.
func (inv *Invoker) OnDiscard(hook func()) *Invoker {
	inv.onDiscard = hook
	return inv
}

// Invoke executes the captured body. Repeat calls are no-ops.
func (inv *Invoker) Invoke() {
	if inv.spent.CompareAndSwap(false, true) {
		inv.fn()
	}
}

// Invoked reports whether the body has already run (or been discarded).
func (inv *Invoker) Invoked() bool {
	return inv.spent.Load()
}

// discard marks the invoker spent without running the body and fires the
// OnDiscard hook. Invoke and discard share one flag, so a discarded invoker
// can never run afterwards and vice versa.
func (inv *Invoker) discard() {
	if inv.spent.CompareAndSwap(false, true) && inv.onDiscard != nil {
		inv.onDiscard()
	}
}

// Safe wraps body so a panic is recovered and logged with a stack trace
// instead of escaping into the worker. The pool deliberately does not recover
// panics on its own; bodies that want to survive their failures opt in here.
// A nil logger discards the report.
func Safe(body func(), logger *zap.Logger) func() {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func() {
		defer func() {
			if r := recover(); r != nil {
				buf := make([]byte, 4096)
				n := runtime.Stack(buf, false)
				logger.Error("invoker panic recovered",
					zap.Any("panic", r),
					zap.ByteString("stack", buf[:n]),
				)
			}
		}()
		body()
	}
}
