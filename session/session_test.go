package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/boutik-admin/session"
	"github.com/jrsteele09/boutik-admin/users"
	"github.com/stretchr/testify/require"
)

func TestSession_SignInSignOut(t *testing.T) {
	s := session.New()
	snap := s.Snapshot()
	require.False(t, snap.IsAuthenticated)
	require.False(t, snap.IsInitialized)
	require.Nil(t, snap.User)

	u := &users.User{ID: 1, Email: "a@b.com", IsSuperuser: true}
	s.SignIn(u)
	snap = s.Snapshot()
	require.True(t, snap.IsAuthenticated)
	require.Equal(t, 1, snap.User.ID)
	require.True(t, snap.IsSuperuser())

	u.Email = "changed@b.com"
	require.Equal(t, "a@b.com", s.Snapshot().User.Email)

	s.SignOut()
	snap = s.Snapshot()
	require.False(t, snap.IsAuthenticated)
	require.Nil(t, snap.User)
	require.False(t, snap.IsSuperuser())

	s.SignIn(nil)
	require.False(t, s.Snapshot().IsAuthenticated)
}

func TestSession_MarkInitializedOnce(t *testing.T) {
	s := session.New()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		flipped int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.MarkInitialized() {
				mu.Lock()
				flipped++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 1, flipped)

	s.SignOut()
	s.SignIn(&users.User{ID: 2, Email: "x@y.com"})
	s.SignOut()
	require.True(t, s.Snapshot().IsInitialized)
}

func TestSession_WatchDeliversLatest(t *testing.T) {
	s := session.New()
	ctx, cancel := context.WithCancel(context.Background())
	ch := s.Watch(ctx)

	first := <-ch
	require.False(t, first.IsInitialized)

	s.MarkInitialized()
	s.SignIn(&users.User{ID: 3, Email: "w@x.com"})

	select {
	case snap := <-ch:
		require.True(t, snap.IsInitialized)
		require.True(t, snap.IsAuthenticated)
		require.Equal(t, s.Snapshot().Version, snap.Version)
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}

	cancel()
	require.Eventually(t, func() bool {
		_, ok := <-ch
		return !ok
	}, time.Second, 10*time.Millisecond)
}
