package queue

import (
	"go.uber.org/zap"
)

// worker runs the loop for one slot until the slot retires. The loop is
// driven by two predicates evaluated under the pool mutex:
//
//   - hold: the slot is in service, the pool is running and not closing, and
//     the queue is empty. The worker blocks on the condition variable.
//   - continue: the slot is in service, the pool is running, and the queue is
//     non-empty. The worker pops one invoker and executes it.
//
// A false continue check after waking means the worker retires: a shrink, a
// Stop and a Close all funnel through this single exit path. The continue
// predicate deliberately ignores the closing flag, which is what lets a
// closing pool drain its backlog before the workers leave.
func (p *Pool) worker(s *slot) {
	defer close(s.done)

	if p.pin {
		undo := pinWorker(s.id)
		defer undo()
	}

	p.log.Debug("worker up", zap.Int("slot", s.id))
	for p.step(s.id) {
	}
	p.log.Debug("worker retired", zap.Int("slot", s.id))
}

// step blocks until slot id either receives work or loses its eligibility,
// then executes at most one invoker. It reports false when the slot retires.
func (p *Pool) step(id int) bool {
	p.mu.Lock()
	for p.onHold(id) {
		p.cond.Wait()
	}
	if !p.keepGoing(id) {
		p.mu.Unlock()
		return false
	}
	inv := p.pending.pop()
	rest := p.pending.len()
	p.mu.Unlock()

	debugLog("slot %d: invoker popped, %d pending", id, rest)
	p.pace()
	inv.Invoke()
	return true
}

// onHold is the blocking predicate; the pool mutex is held.
func (p *Pool) onHold(id int) bool {
	return id < p.workers && !p.closing && p.running && p.pending.len() == 0
}

// keepGoing is the post-wake predicate; the pool mutex is held.
func (p *Pool) keepGoing(id int) bool {
	return id < p.workers && p.running && p.pending.len() > 0
}

// pace waits for a rate-limiter token between popping and invoking. The
// limiter context is canceled during Close, so teardown drains at full
// speed; a popped invoker always runs either way.
func (p *Pool) pace() {
	if p.limiter == nil {
		return
	}
	_ = p.limiter.Wait(p.paceCtx)
}
