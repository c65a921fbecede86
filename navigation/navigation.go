// Package navigation models in-app locations and the side effect of moving between them.
package navigation

import (
	"net/url"
	"strings"
	"sync"
)

// Location is an in-app path with its query
type Location struct {
	Path  string
	Query url.Values
}

// ParseLocation splits "/path?a=b" into a Location. Anything that is not a
// relative reference is reduced to its path.
func ParseLocation(raw string) Location {
	u, err := url.Parse(raw)
	if err != nil {
		path, query, _ := strings.Cut(raw, "?")
		q, _ := url.ParseQuery(query)
		return Location{Path: path, Query: q}
	}
	return Location{Path: u.Path, Query: u.Query()}
}

// String renders the path followed by the encoded query, if any
func (l Location) String() string {
	if len(l.Query) == 0 {
		return l.Path
	}
	return l.Path + "?" + l.Query.Encode()
}

// Get returns the first value of a query parameter
func (l Location) Get(key string) string {
	if l.Query == nil {
		return ""
	}
	return l.Query.Get(key)
}

// With returns a copy of l with key set to value
func (l Location) With(key, value string) Location {
	q := url.Values{}
	for k, v := range l.Query {
		q[k] = append([]string(nil), v...)
	}
	q.Set(key, value)
	return Location{Path: l.Path, Query: q}
}

// Mode says whether a navigation adds a history entry or replaces the current one
type Mode int

const (
	Push Mode = iota
	Replace
)

// Navigator performs navigation. Implementations must be safe for concurrent use.
type Navigator interface {
	Navigate(to Location, mode Mode)
}

// NavigatorFunc adapts a function to a Navigator
type NavigatorFunc func(to Location, mode Mode)

func (f NavigatorFunc) Navigate(to Location, mode Mode) {
	f(to, mode)
}

// Navigation is one recorded call to a Recorder
type Navigation struct {
	To   Location
	Mode Mode
}

// Recorder is a Navigator that remembers every navigation it was asked to perform
type Recorder struct {
	mu    sync.Mutex
	calls []Navigation
}

func (r *Recorder) Navigate(to Location, mode Mode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Navigation{To: to, Mode: mode})
}

func (r *Recorder) Calls() []Navigation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Navigation(nil), r.calls...)
}

// Last returns the most recent navigation
func (r *Recorder) Last() (Navigation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return Navigation{}, false
	}
	return r.calls[len(r.calls)-1], true
}
