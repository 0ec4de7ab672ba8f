package queue

import "fmt"

// Stats is a point-in-time diagnostic snapshot of a Pool.
type Stats struct {
	Workers int  // desired worker count
	Pending int  // queued invokers awaiting a worker
	Running bool // true between Start and Stop
}

// Stats captures worker count, queue depth and running state under a single
// mutex hold, so the three fields are mutually consistent.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		Workers: p.workers,
		Pending: p.pending.len(),
		Running: p.running,
	}
}

func (s Stats) String() string {
	state := "stopped"
	if s.Running {
		state = "running"
	}
	return fmt.Sprintf("workers=%d pending=%d state=%s", s.Workers, s.Pending, state)
}
