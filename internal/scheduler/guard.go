package scheduler

import "sync"

// dayGuard remembers the last day an obligation ran. It is process
// local on purpose: the store stays the source of truth for booking
// state, and a duplicate daily run after a restart is prevented by
// preseeding the guard from the wall clock instead.
type dayGuard struct {
	mu   sync.Mutex
	last string
}

// Ran reports whether the obligation already ran on day.
func (g *dayGuard) Ran(day string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last == day
}

// MarkDone commits day as done. Called after the attempt completes so a
// crash mid-run leaves the day eligible for retry.
func (g *dayGuard) MarkDone(day string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.last = day
}
