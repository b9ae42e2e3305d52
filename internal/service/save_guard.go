package service

import (
	"context"
	"sync"
)

// saveGuard lets one Save run at a time per session. A save that finds
// another in flight returns early, since the running one already writes
// the latest state it saw; wait lets shutdown drain it.
type saveGuard struct {
	mu     sync.Mutex
	active chan struct{} // closed when the running save ends
}

// begin claims the guard. It reports false while a save is running.
func (g *saveGuard) begin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active != nil {
		return false
	}
	g.active = make(chan struct{})
	return true
}

// end releases a guard claimed by begin.
func (g *saveGuard) end() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active != nil {
		close(g.active)
		g.active = nil
	}
}

// wait blocks until the running save ends or ctx is done.
func (g *saveGuard) wait(ctx context.Context) {
	g.mu.Lock()
	active := g.active
	g.mu.Unlock()
	if active == nil {
		return
	}
	select {
	case <-active:
	case <-ctx.Done():
	}
}
