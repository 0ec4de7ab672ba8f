package parallel

import (
	"context"
	"sync"
)

// Spawner manages detached long-running workers outside the one-shot Run
// model. Each Spawn launches a goroutine that lives until its id is
// terminated (or the whole set is). Termination is cooperative: the
// worker's context is canceled and the call joins the goroutine.
type Spawner struct {
	mu     sync.Mutex
	nextID int
	active map[int]*spawned
}

type spawned struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSpawner returns an empty Spawner ready for use.
func NewSpawner() *Spawner {
	return &Spawner{active: make(map[int]*spawned)}
}

// Spawn launches fn on its own goroutine and returns the id used to
// terminate it later. fn is expected to return promptly once its context is
// canceled; a worker that returns of its own accord stays in the roster
// (joining immediately) until terminated.
func (s *Spawner) Spawn(fn func(ctx context.Context)) int {
	ctx, cancel := context.WithCancel(context.Background())
	sp := &spawned{cancel: cancel, done: make(chan struct{})}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.active[id] = sp
	s.mu.Unlock()

	go func() {
		defer close(sp.done)
		fn(ctx)
	}()
	return id
}

// Terminate cancels the worker's context and joins its goroutine. It reports
// false when the id is unknown or already terminated.
func (s *Spawner) Terminate(id int) bool {
	s.mu.Lock()
	sp, ok := s.active[id]
	if ok {
		delete(s.active, id)
	}
	s.mu.Unlock()
	if !ok {
		return false
	}

	sp.cancel()
	<-sp.done
	return true
}

// TerminateAll cancels every live worker first, then joins them all.
func (s *Spawner) TerminateAll() {
	s.mu.Lock()
	all := make([]*spawned, 0, len(s.active))
	for id, sp := range s.active {
		delete(s.active, id)
		all = append(all, sp)
	}
	s.mu.Unlock()

	for _, sp := range all {
		sp.cancel()
	}
	for _, sp := range all {
		<-sp.done
	}
}

// Active returns the number of workers in the roster.
func (s *Spawner) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}
