package listview

import (
	"sync"
	"time"
)

// Debounced holds a value that only becomes visible once it has stopped changing
// for latency. Time comes from now, so callers decide when to look again.
type Debounced[T any] struct {
	mu         sync.Mutex
	latency    time.Duration
	now        func() time.Time
	settled    T
	pending    T
	hasPending bool
	setAt      time.Time
}

func NewDebounced[T any](initial T, latency time.Duration, now func() time.Time) *Debounced[T] {
	if now == nil {
		now = time.Now
	}
	return &Debounced[T]{latency: latency, now: now, settled: initial}
}

// Set records v as the newest value and restarts the latency window
func (d *Debounced[T]) Set(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = v
	d.hasPending = true
	d.setAt = d.now()
}

// Value returns the newest value if it has been stable for latency, else the last settled one
func (d *Debounced[T]) Value() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.settle()
	return d.settled
}

// Pending reports whether a newer value is still waiting out its latency
func (d *Debounced[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.settle()
	return d.hasPending
}

// SettlesAt is when the pending value becomes visible. ok is false when nothing is pending.
func (d *Debounced[T]) SettlesAt() (at time.Time, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.settle()
	if !d.hasPending {
		return time.Time{}, false
	}
	return d.setAt.Add(d.latency), true
}

func (d *Debounced[T]) settle() {
	if d.hasPending && !d.now().Before(d.setAt.Add(d.latency)) {
		d.settled = d.pending
		var zero T
		d.pending = zero
		d.hasPending = false
	}
}
