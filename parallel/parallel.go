// Package parallel provides one-shot fork-join execution and detached worker
// management, the lightweight counterpart to package queue for work that is
// known up front rather than pushed over time.
//
// Run fans a single function out over n slots and joins them all; RunFuncs
// does the same for heterogeneous functions. Spawner manages long-running
// workers that are terminated individually by cancel-and-join.
package parallel

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// workerLimit caps the slot count handed out by Run; 0 means uncapped.
var workerLimit atomic.Int64

// SetLimit installs a package-wide ceiling on the number of slots Run will
// use. Zero (the default) removes the ceiling; negative values are treated
// as zero.
func SetLimit(n int) {
	if n < 0 {
		n = 0
	}
	workerLimit.Store(int64(n))
}

// Limit reports the package-wide slot ceiling; 0 means none.
func Limit() int {
	return int(workerLimit.Load())
}

// clampSlots resolves a requested slot count: non-positive requests take
// GOMAXPROCS, and the package limit caps the result.
func clampSlots(n int) int {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if l := Limit(); l > 0 && n > l {
		n = l
	}
	return n
}

// Run executes fn once per slot on n concurrent workers and joins them all
// before returning. Slots are numbered 0..workers-1 and the resolved worker
// count is passed alongside, so bodies can partition data by slot. n <= 0
// requests GOMAXPROCS workers; the package limit caps either way.
//
// The first non-nil error cancels the shared context and is returned after
// every worker has finished.
//
// Example:
//
//	err := parallel.Run(ctx, 8, func(ctx context.Context, slot, workers int) error {
//	    return processChunk(ctx, data, slot, workers)
//	})
func Run(ctx context.Context, n int, fn func(ctx context.Context, slot, workers int) error) error {
	workers := clampSlots(n)
	g, ctx := errgroup.WithContext(ctx)
	for i := range workers {
		g.Go(func() error {
			return fn(ctx, i, workers)
		})
	}
	return g.Wait()
}

// RunFuncs gives each function its own worker: fns[i] runs on slot i. The
// package limit does not apply, since dropping a function is never an
// option. The first non-nil error cancels the shared context and is returned
// after all workers join.
func RunFuncs(ctx context.Context, fns ...func(ctx context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, fn := range fns {
		g.Go(func() error {
			return fn(ctx)
		})
	}
	return g.Wait()
}
