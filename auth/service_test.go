package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jrsteele09/boutik-admin/auth"
	"github.com/jrsteele09/boutik-admin/client"
	"github.com/jrsteele09/boutik-admin/credentials"
	"github.com/jrsteele09/boutik-admin/credentials/repofake"
	"github.com/jrsteele09/boutik-admin/internal/config"
	"github.com/jrsteele09/boutik-admin/internal/errors"
	"github.com/jrsteele09/boutik-admin/navigation"
	"github.com/jrsteele09/boutik-admin/session"
	"github.com/jrsteele09/boutik-admin/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const (
	testEmail    = "a@b.com"
	testPassword = "secret1"
	testToken    = "tok-1"
	testRefresh  = "ref-1"

	inactiveEmail = "off@b.com"
)

type testFixture struct {
	tokenCalls atomic.Int32
	meCalls    atomic.Int32
	creds      *credentials.Credentials
	session    *session.Session
	nav        *navigation.Recorder
	service    *auth.Service
}

func setupFixture(t *testing.T) *testFixture {
	t.Helper()
	f := &testFixture{
		creds:   credentials.New(repofake.NewFakeCredentialsRepo()),
		session: session.New(),
		nav:     &navigation.Recorder{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		if err := r.ParseForm(); err != nil || r.PostForm.Get("grant_type") != "password" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if r.PostForm.Get("username") == inactiveEmail && r.PostForm.Get("password") == testPassword {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"detail":"Inactive user"}`))
			return
		}
		if r.PostForm.Get("username") != testEmail || r.PostForm.Get("password") != testPassword {
			w.Header().Set("WWW-Authenticate", "Bearer")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Incorrect email or password"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"access_token":  testToken,
			"refresh_token": testRefresh,
			"token_type":    "bearer",
		})
	})
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		f.meCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(users.User{ID: 42, Email: testEmail, LastName: "Rabe", IsActive: true})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	t.Setenv("API_BASE_URL", srv.URL)
	cfg := config.New()
	c := client.New(cfg, f.creds, f.session, f.nav)
	f.service = auth.NewService(c, f.session, f.nav, cfg)
	return f
}

func TestService_Login(t *testing.T) {
	f := setupFixture(t)

	me, err := f.service.Login(context.Background(), auth.LoginRequest{Username: testEmail, Password: testPassword})
	require.NoError(t, err)
	require.Equal(t, 42, me.ID)

	require.Equal(t, testToken, f.creds.AccessToken())
	require.Equal(t, testRefresh, f.creds.RefreshToken())

	snap := f.session.Snapshot()
	require.True(t, snap.IsAuthenticated)
	require.True(t, snap.IsInitialized)
	require.Equal(t, testEmail, snap.User.Email)

	last, ok := f.nav.Last()
	require.True(t, ok)
	require.Equal(t, config.PathDashboardHome, last.To.Path)
}

func TestService_LoginRejected(t *testing.T) {
	f := setupFixture(t)

	_, err := f.service.Login(context.Background(), auth.LoginRequest{Username: testEmail, Password: "wrong-password"})
	var authErr *errors.AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, http.StatusUnauthorized, authErr.Status)
	require.Equal(t, "Incorrect email or password", authErr.Detail)

	require.Empty(t, f.creds.AccessToken())
	require.False(t, f.session.Snapshot().IsAuthenticated)
	require.Empty(t, f.nav.Calls())
	require.Zero(t, f.meCalls.Load())
}

func TestService_LoginInactiveAccount(t *testing.T) {
	f := setupFixture(t)

	_, err := f.service.Login(context.Background(), auth.LoginRequest{Username: inactiveEmail, Password: testPassword})
	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, http.StatusBadRequest, verr.Status)
	require.Equal(t, "Inactive user", verr.Reason)
	require.Equal(t, errors.KindValidation, errors.KindOf(err))

	require.Empty(t, f.creds.AccessToken())
	require.False(t, f.session.Snapshot().IsAuthenticated)
}

func TestService_LoginTrimsUsername(t *testing.T) {
	f := setupFixture(t)

	me, err := f.service.Login(context.Background(), auth.LoginRequest{Username: "  " + testEmail + " ", Password: testPassword})
	require.NoError(t, err)
	require.Equal(t, testEmail, me.Email)
	require.Equal(t, testToken, f.creds.AccessToken())
}

func TestService_LoginValidation(t *testing.T) {
	f := setupFixture(t)

	tests := []struct {
		name  string
		req   auth.LoginRequest
		field string
	}{
		{"missing email", auth.LoginRequest{Password: testPassword}, "username"},
		{"not an email", auth.LoginRequest{Username: "admin", Password: testPassword}, "username"},
		{"missing password", auth.LoginRequest{Username: testEmail}, "password"},
		{"short password", auth.LoginRequest{Username: testEmail, Password: "12345"}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Login(context.Background(), tt.req)
			var ve *errors.ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tt.field, ve.Field)
		})
	}
	require.Zero(t, f.tokenCalls.Load())
}

func TestService_Initialise(t *testing.T) {
	t.Run("no stored token", func(t *testing.T) {
		f := setupFixture(t)
		require.NoError(t, f.service.Initialise(context.Background()))

		snap := f.session.Snapshot()
		require.True(t, snap.IsInitialized)
		require.False(t, snap.IsAuthenticated)
		require.Zero(t, f.meCalls.Load())
	})

	t.Run("valid token signs in", func(t *testing.T) {
		f := setupFixture(t)
		require.NoError(t, f.creds.Save(&oauth2.Token{AccessToken: testToken}))
		require.NoError(t, f.service.Initialise(context.Background()))

		snap := f.session.Snapshot()
		require.True(t, snap.IsInitialized)
		require.True(t, snap.IsAuthenticated)
		require.Equal(t, 42, snap.User.ID)
	})

	t.Run("rejected token signs out", func(t *testing.T) {
		f := setupFixture(t)
		require.NoError(t, f.creds.Save(&oauth2.Token{AccessToken: "stale"}))

		err := f.service.Initialise(context.Background())
		require.ErrorIs(t, err, errors.ErrNoRefreshToken)

		snap := f.session.Snapshot()
		require.True(t, snap.IsInitialized)
		require.False(t, snap.IsAuthenticated)
		require.Empty(t, f.creds.AccessToken())
	})

	t.Run("runs once", func(t *testing.T) {
		f := setupFixture(t)
		require.NoError(t, f.creds.Save(&oauth2.Token{AccessToken: testToken}))

		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = f.service.Initialise(context.Background())
			}()
		}
		wg.Wait()
		require.NoError(t, f.service.Initialise(context.Background()))
		require.EqualValues(t, 1, f.meCalls.Load())
	})
}

func TestService_Logout(t *testing.T) {
	f := setupFixture(t)
	_, err := f.service.Login(context.Background(), auth.LoginRequest{Username: testEmail, Password: testPassword})
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(context.Background()))
	require.Empty(t, f.creds.AccessToken())
	require.Empty(t, f.creds.RefreshToken())
	require.False(t, f.session.Snapshot().IsAuthenticated)

	last, ok := f.nav.Last()
	require.True(t, ok)
	require.Equal(t, config.PathLogin, last.To.Path)
	require.Equal(t, navigation.Replace, last.Mode)
}
