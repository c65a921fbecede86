// Package session holds the dashboard's process-wide authentication state.
package session

import (
	"context"
	"sync"

	"github.com/jrsteele09/boutik-admin/users"
)

// Snapshot is an immutable view of the session. User is shared with the session
// and must not be modified.
type Snapshot struct {
	User            *users.User
	IsAuthenticated bool
	IsInitialized   bool
	Version         uint64 // increases on every change
}

// IsSuperuser reports whether the signed in user is an administrator
func (s Snapshot) IsSuperuser() bool {
	return s.IsAuthenticated && s.User != nil && s.User.IsSuperuser
}

// Session is the single owner of the current user, authenticated and initialized flags.
// IsAuthenticated implies User != nil: only SignIn and SignOut change either.
type Session struct {
	mu       sync.Mutex
	state    Snapshot
	watchers map[chan Snapshot]struct{}
}

func New() *Session {
	return &Session{
		watchers: make(map[chan Snapshot]struct{}),
	}
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SignIn records user as the authenticated user. A nil user signs out.
func (s *Session) SignIn(user *users.User) {
	if user == nil {
		s.SignOut()
		return
	}
	u := *user

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = &u
	s.state.IsAuthenticated = true
	s.publish()
}

func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.IsAuthenticated && s.state.User == nil {
		return
	}
	s.state.User = nil
	s.state.IsAuthenticated = false
	s.publish()
}

// MarkInitialized flips the initialized flag. It returns true only for the call that flipped it.
func (s *Session) MarkInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.IsInitialized {
		return false
	}
	s.state.IsInitialized = true
	s.publish()
	return true
}

// Watch delivers the current snapshot followed by every later one. The channel keeps
// only the newest undelivered snapshot and is closed when ctx is done.
func (s *Session) Watch(ctx context.Context) <-chan Snapshot {
	ch := make(chan Snapshot, 1)

	s.mu.Lock()
	ch <- s.state
	s.watchers[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, ch)
		close(ch)
		s.mu.Unlock()
	}()
	return ch
}

// publish must be called with mu held
func (s *Session) publish() {
	s.state.Version++
	for ch := range s.watchers {
		select {
		case <-ch:
		default:
		}
		ch <- s.state
	}
}
