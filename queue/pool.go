package queue

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrPoolClosed reports work handed to a pool after Close has begun. Push
// signals it by returning false; Async completes its Future with it.
var ErrPoolClosed = errors.New("queue: pool closed")

// Pool is a self-administering worker pool draining a strict-FIFO queue of
// Invokers. Its worker count can be raised or lowered at any time, including
// under load; excess workers retire by slot index rather than by per-worker
// cancellation tokens.
//
// Administrative calls (Start, Stop, SetWorkerCount) are serialized through
// an internal single-worker controller pool and block until the requested
// state change has completed, so callers always observe the new steady state.
// Push is the only hot-path operation and touches nothing but the pool mutex.
//
// The zero value is not usable; construct with New.
type Pool struct {
	name string
	log  *zap.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	pending *fifo
	slots   []*slot
	workers int // desired worker count; slots at or beyond it retire
	running bool
	closing bool

	// ctrl serializes administrative closures. It is nil on the controller
	// itself, whose administrative surface runs inline on the caller;
	// that is what terminates the recursion.
	ctrl *Pool

	limiter    *rate.Limiter
	paceCtx    context.Context
	paceCancel context.CancelFunc

	pin bool // pin worker threads to cores by slot index
}

// slot is the handle for one worker goroutine: its logical position in the
// roster and a channel closed when the goroutine returns.
type slot struct {
	id   int
	done chan struct{}
}

// New creates a stopped Pool together with its internal controller. The
// controller is a second Pool fixed at one worker and already running; it
// exists only to execute administrative closures one at a time.
//
// Returns:
//   - *Pool: a pool holding no live workers until Start is called. Work may
//     be pushed right away; it queues until the pool runs.
//
// Example:
//
//	p := queue.New(
//	    queue.WithWorkerCount(8),
//	    queue.WithLogger(logger),
//	)
//	p.Start()
//	defer p.Close()
func New(opts ...Option) *Pool {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.name == "" {
		cfg.name = uuid.NewString()
	}
	cfg.logger = cfg.logger.With(zap.String("pool", cfg.name))

	ctrl := newPool(&config{
		workers: 1,
		name:    cfg.name + "/controller",
		logger:  cfg.logger.Named("controller"),
	}, nil)
	ctrl.Start()

	return newPool(cfg, ctrl)
}

// newPool builds one pool instance. A nil ctrl marks the controller itself.
func newPool(cfg *config, ctrl *Pool) *Pool {
	p := &Pool{
		name:    cfg.name,
		log:     cfg.logger,
		pending: newFIFO(),
		slots:   make([]*slot, cfg.workers),
		workers: cfg.workers,
		ctrl:    ctrl,
		limiter: cfg.rateLimiter,
		pin:     cfg.pinWorkers,
	}
	p.cond = sync.NewCond(&p.mu)
	p.paceCtx, p.paceCancel = context.WithCancel(context.Background())
	return p
}

// Push appends fn to the task queue and wakes one waiting worker. It reports
// whether the work was accepted; false means Close has begun. Push never
// blocks beyond the brief mutex hold.
//
// Pushing to a stopped or zero-worker pool is legal: the queue accumulates
// and drains once capacity exists.
func (p *Pool) Push(fn func()) bool {
	return p.PushInvoker(NewInvoker(fn))
}

// PushInvoker is Push for a pre-built Invoker, such as one produced by Bind.
func (p *Pool) PushInvoker(inv *Invoker) bool {
	p.mu.Lock()
	if p.closing {
		p.mu.Unlock()
		return false
	}
	p.pending.push(inv)
	depth := p.pending.len()
	p.mu.Unlock()

	p.cond.Signal()
	debugLog("push: depth=%d", depth)
	return true
}

// exec routes an administrative operation. With a controller present the
// operation is pushed onto it and the call blocks until the controller's
// worker has completed it; on the controller itself it runs inline. A push
// rejected by a closing controller turns the call into a teardown no-op.
func (p *Pool) exec(op func()) {
	if p.ctrl == nil {
		op()
		return
	}

	done := make(chan struct{})
	if !p.ctrl.Push(func() {
		defer close(done)
		op()
	}) {
		return
	}
	<-done
}

// Start transitions the pool to running and spawns one worker per slot
// 0..N-1, N being the current desired count. No-op when already running.
//
// Start blocks until the transition has completed on the controller. Like
// every administrative call, it must not be invoked from inside an Invoker
// executing on this same pool.
func (p *Pool) Start() {
	p.exec(func() {
		p.mu.Lock()
		if p.running {
			p.mu.Unlock()
			return
		}
		p.running = true
		for i := range p.slots {
			p.slots[i] = p.spawnLocked(i)
		}
		n := p.workers
		p.mu.Unlock()

		p.log.Info("pool started", zap.Int("workers", n))
	})
}

// Stop retires every worker and joins them, leaving queue contents in place;
// a later Start resumes draining exactly where the pool left off. No-op when
// not running.
//
// Stop blocks until every worker has joined. It must not be called from an
// Invoker running on this pool: the call would wait on the caller's own slot.
func (p *Pool) Stop() {
	p.exec(func() {
		p.mu.Lock()
		if !p.running {
			p.mu.Unlock()
			return
		}
		p.running = false
		p.mu.Unlock()

		p.cond.Broadcast()
		p.joinFrom(0)
		p.log.Info("pool stopped", zap.Int("pending", p.Len()))
	})
}

// SetWorkerCount resizes the pool to n workers; negative n is treated as 0.
//
// Growing while running spawns workers at slots current..n-1. Shrinking
// while running lowers the desired count, wakes everyone, and joins exactly
// the slots n..old-1; workers below n are never disturbed. On a stopped pool
// only the roster changes and workers spawn lazily on the next Start. n == 0
// is legal and leaves a running pool with no active workers: the queue keeps
// accepting and holds everything until the count is raised again.
//
// The call blocks until the resize has completed; once it returns, the pool
// is at the requested size. During Close it degrades to a no-op. Like Stop,
// a shrink must not be issued from an Invoker whose own slot it would retire.
func (p *Pool) SetWorkerCount(n int) {
	if n < 0 {
		n = 0
	}
	p.exec(func() { p.resize(n) })
}

// resize runs on the controller (or inline on the controller itself).
func (p *Pool) resize(n int) {
	p.mu.Lock()
	old := len(p.slots)
	if n == old {
		p.mu.Unlock()
		return
	}
	p.workers = n

	if !p.running {
		// Roster bookkeeping only; nothing live to retire or spawn.
		if n < old {
			p.slots = p.slots[:n]
		} else {
			p.slots = append(p.slots, make([]*slot, n-old)...)
		}
		p.mu.Unlock()
		p.log.Info("worker count set", zap.Int("from", old), zap.Int("to", n))
		return
	}

	if n > old {
		for i := old; i < n; i++ {
			p.slots = append(p.slots, p.spawnLocked(i))
		}
		p.mu.Unlock()
		p.log.Info("pool grown", zap.Int("from", old), zap.Int("to", n))
		return
	}

	p.mu.Unlock()
	p.cond.Broadcast()
	p.joinFrom(n)

	p.mu.Lock()
	p.slots = p.slots[:n]
	p.mu.Unlock()
	p.log.Info("pool shrunk", zap.Int("from", old), zap.Int("to", n))
}

// spawnLocked launches the worker goroutine for slot id. Callers hold the
// pool mutex.
func (p *Pool) spawnLocked(id int) *slot {
	s := &slot{id: id, done: make(chan struct{})}
	go p.worker(s)
	return s
}

// joinFrom waits for the goroutines at slots start.. to return. The snapshot
// is taken under the mutex; administrative serialization guarantees nobody
// else mutates the roster while we wait.
func (p *Pool) joinFrom(start int) {
	p.mu.Lock()
	var tail []*slot
	if start < len(p.slots) {
		tail = append(tail, p.slots[start:]...)
	}
	p.mu.Unlock()

	for _, s := range tail {
		if s != nil {
			<-s.done
		}
	}
}

// Close tears the pool down. The controller goes first, completing any
// administrative operation still queued; then the closing flag shuts the
// intake, every worker is woken, and all of them are joined. A running pool
// drains its remaining queue before the workers retire (the continue
// condition deliberately ignores the closing flag); a stopped or worker-less
// pool discards what is left, firing each invoker's OnDiscard hook.
//
// Close is idempotent and blocks until all goroutines have joined. It must
// not be called from an Invoker running on this pool.
func (p *Pool) Close() {
	if p.ctrl != nil {
		p.ctrl.Close()
	}

	p.mu.Lock()
	if p.closing {
		p.mu.Unlock()
		return
	}
	p.closing = true
	running := p.running
	p.mu.Unlock()

	p.paceCancel()
	p.cond.Broadcast()
	if running {
		p.joinFrom(0)
	}

	// Workers are gone; whatever survived the drain is discarded.
	p.mu.Lock()
	discarded := p.pending.len()
	for p.pending.len() > 0 {
		p.pending.pop().discard()
	}
	p.mu.Unlock()

	p.log.Info("pool closed", zap.Int("discarded", discarded))
}

// Workers returns the desired worker count.
func (p *Pool) Workers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.workers
}

// Len returns the number of queued invokers no worker has popped yet.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending.len()
}

// Running reports whether the pool is draining, i.e. between Start and Stop.
func (p *Pool) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Name returns the instance name carried in the pool's log fields.
func (p *Pool) Name() string {
	return p.name
}
