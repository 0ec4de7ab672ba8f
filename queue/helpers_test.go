package queue

import (
	"testing"
	"time"
)

// waitFor polls cond every couple of milliseconds until it holds or the
// timeout expires, failing the test in the latter case.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v: %s", timeout, msg)
}

// holdsFor asserts cond stays true for the whole window, polling as waitFor
// does. Used to prove that something does NOT happen (e.g. a paused pool not
// draining).
func holdsFor(t *testing.T, window time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(window)
	for time.Now().Before(deadline) {
		if !cond() {
			t.Fatalf("condition violated within %v: %s", window, msg)
		}
		time.Sleep(2 * time.Millisecond)
	}
}
