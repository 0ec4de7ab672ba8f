// Package queue provides a self-administering, dynamically resizable worker
// pool for deferred work.
//
// The primary type is Pool: a strict-FIFO queue of once-callable Invokers
// drained by a roster of slot-indexed workers. The worker count can be raised
// or lowered at any time, including while workers are mid-flight. All
// administrative operations (Start, Stop, SetWorkerCount) are serialized
// through an internal single-worker controller pool, so concurrent
// administrative calls from arbitrary goroutines never race each other, and
// each call blocks until the pool has reached the requested steady state.
//
// # Basic Usage
//
//	p := queue.New(queue.WithWorkerCount(4))
//	p.Start()
//	defer p.Close()
//
//	p.Push(func() {
//	    fmt.Println("runs on one of the pool's workers")
//	})
//
// # Resizing at Runtime
//
//	p.SetWorkerCount(16) // grow: spawns workers at slots 4..15
//	p.SetWorkerCount(2)  // shrink: retires slots 2..15 and joins them
//	p.SetWorkerCount(0)  // legal: the queue accepts and holds work
//
// Workers retire by slot index: a shrink lowers one shared count and wakes
// everyone, and each worker re-evaluates its own eligibility. Exactly the
// highest-indexed workers exit; the rest never notice.
//
// # Stop vs Close
//
// Stop retires every worker but leaves queued work in place, and a later
// Start resumes draining where the pool left off. Close is terminal: the
// controller is torn down first (completing any administrative operation
// still queued), then a running pool drains its backlog before the workers
// retire, while a stopped pool discards whatever is still queued.
//
// # Results
//
// The pool itself is fire-and-forget. Call sites that need a value back wrap
// the body with Async, which completes a Future:
//
//	f := queue.Async(p, func() (int, error) {
//	    return compute(), nil
//	})
//	n, err := f.Get()
//
// # Failure Handling
//
// The pool does not recover panics: an invoker that panics takes the process
// down, the same way an error escaping a worker thread would in any runtime.
// Bodies are expected to be self-contained, and the package ships two
// builders for exactly that:
//
//	p.Push(queue.Safe(risky, logger))                                // recover + log
//	p.Push(queue.Retry(ctx, callUpstream, queue.RetryPolicy{...}))   // exponential backoff
//
// The package is designed to be small and idiomatic for Go 1.24+.
package queue
