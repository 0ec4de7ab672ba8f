package queue

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestAsync_DeliversValue(t *testing.T) {
	p := New(WithWorkerCount(2))
	p.Start()
	defer p.Close()

	f := Async(p, func() (int, error) {
		return 42, nil
	})

	got, err := f.Get()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	if !f.IsReady() {
		t.Fatal("future should report ready after Get")
	}
}

func TestAsync_DeliversError(t *testing.T) {
	p := New(WithWorkerCount(1))
	p.Start()
	defer p.Close()

	boom := errors.New("boom")
	f := Async(p, func() (string, error) {
		return "", boom
	})

	if _, err := f.Get(); !errors.Is(err, boom) {
		t.Fatalf("expected the invoker's error, got %v", err)
	}
}

func TestFuture_GetContextHonorsDeadline(t *testing.T) {
	p := New(WithWorkerCount(1))
	p.Start()
	defer p.Close()

	release := make(chan struct{})
	f := Async(p, func() (int, error) {
		<-release
		return 7, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if _, err := f.GetContext(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}

	// The invoker keeps running; a later Get still sees the result.
	close(release)
	got, err := f.Get()
	if err != nil || got != 7 {
		t.Fatalf("expected 7 after release, got %d (%v)", got, err)
	}
}

func TestFuture_IsReadyLifecycle(t *testing.T) {
	p := New(WithWorkerCount(0))
	p.Start()
	defer p.Close()

	f := Async(p, func() (int, error) { return 1, nil })
	if f.IsReady() {
		t.Fatal("future cannot be ready with zero workers")
	}

	p.SetWorkerCount(1)
	select {
	case <-f.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("future never completed after raising worker count")
	}
	if !f.IsReady() {
		t.Fatal("future should be ready after Done closes")
	}
}

func TestAsync_ClosedPoolFailsFast(t *testing.T) {
	p := New(WithWorkerCount(1))
	p.Start()
	p.Close()

	f := Async(p, func() (int, error) { return 9, nil })
	if !f.IsReady() {
		t.Fatal("future on a closed pool should complete immediately")
	}
	if _, err := f.Get(); !errors.Is(err, ErrPoolClosed) {
		t.Fatalf("expected ErrPoolClosed, got %v", err)
	}
}

func TestAsync_DiscardedWorkFailsFuture(t *testing.T) {
	p := New(WithWorkerCount(2)) // Never started: Close discards the queue.

	f := Async(p, func() (int, error) { return 9, nil })
	p.Close()

	if _, err := f.Get(); !errors.Is(err, ErrPoolClosed) {
		t.Fatalf("expected ErrPoolClosed from discarded invoker, got %v", err)
	}
}
