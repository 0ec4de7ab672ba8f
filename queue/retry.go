package queue

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryPolicy shapes the bodies built by Retry. The zero value retries until
// ctx is canceled, starting from the backoff library's default interval.
type RetryPolicy struct {
	// MaxTries caps total attempts; 0 means unbounded.
	MaxTries uint
	// InitialDelay is the first backoff interval; 0 keeps the default.
	InitialDelay time.Duration
	// Report receives the terminal error after all attempts are spent or the
	// context ends. Nil drops it.
	Report func(error)
}

// Retry builds a self-contained invoker body around a fallible operation:
// the body retries op with exponential backoff until it succeeds, the policy
// is exhausted, or ctx is canceled, then hands any terminal error to
// policy.Report. The pool itself never retries; failure handling belongs
// inside the invoker, and this is the packaged way to put it there.
//
// Example:
//
//	p.Push(queue.Retry(ctx, pingUpstream, queue.RetryPolicy{
//	    MaxTries:     5,
//	    InitialDelay: 100 * time.Millisecond,
//	    Report: func(err error) {
//	        logger.Warn("upstream unreachable", zap.Error(err))
//	    },
//	}))
func Retry(ctx context.Context, op func() error, policy RetryPolicy) func() {
	return func() {
		b := backoff.NewExponentialBackOff()
		if policy.InitialDelay > 0 {
			b.InitialInterval = policy.InitialDelay
		}

		opts := []backoff.RetryOption{backoff.WithBackOff(b)}
		if policy.MaxTries > 0 {
			opts = append(opts, backoff.WithMaxTries(policy.MaxTries))
		}

		run := func() (struct{}, error) {
			return struct{}{}, op()
		}
		if _, err := backoff.Retry(ctx, run, opts...); err != nil && policy.Report != nil {
			policy.Report(err)
		}
	}
}
