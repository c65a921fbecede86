package tui

import (
	"sync"

	"github.com/jrsteele09/boutik-admin/navigation"
)

// Router is the Navigator of the terminal app. It keeps the current location and a
// back stack; every change is signalled on Changed, latest location wins.
type Router struct {
	mu      sync.Mutex
	current navigation.Location
	history []navigation.Location
	changed chan struct{}
}

var _ navigation.Navigator = (*Router)(nil)

func NewRouter(start navigation.Location) *Router {
	return &Router{
		current: start,
		changed: make(chan struct{}, 1),
	}
}

// Navigate moves to `to`. Push keeps the previous location on the back stack,
// Replace discards it.
func (r *Router) Navigate(to navigation.Location, mode navigation.Mode) {
	r.mu.Lock()
	if mode == navigation.Push {
		r.history = append(r.history, r.current)
	}
	r.current = to
	r.mu.Unlock()
	r.notify()
}

// Back returns to the previous location. It reports false when there is none.
func (r *Router) Back() bool {
	r.mu.Lock()
	if len(r.history) == 0 {
		r.mu.Unlock()
		return false
	}
	r.current = r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]
	r.mu.Unlock()
	r.notify()
	return true
}

func (r *Router) Current() navigation.Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Changed receives a value after one or more navigations
func (r *Router) Changed() <-chan struct{} {
	return r.changed
}

func (r *Router) notify() {
	select {
	case r.changed <- struct{}{}:
	default:
	}
}
