package queue

import (
	ring "github.com/eapache/queue"
)

// fifo is the pool's task queue: strict insertion order, unbounded, backed by
// a growable ring buffer. It does no locking of its own; every call site
// holds the pool mutex.
type fifo struct {
	buf *ring.Queue
}

func newFIFO() *fifo {
	return &fifo{buf: ring.New()}
}

func (q *fifo) push(inv *Invoker) {
	q.buf.Add(inv)
}

// pop removes and returns the oldest invoker. Callers check len first; pop on
// an empty fifo panics, matching the backing buffer.
func (q *fifo) pop() *Invoker {
	return q.buf.Remove().(*Invoker)
}

func (q *fifo) len() int {
	return q.buf.Length()
}
