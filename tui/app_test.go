package tui

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jrsteele09/boutik-admin/auth"
	"github.com/jrsteele09/boutik-admin/client"
	"github.com/jrsteele09/boutik-admin/credentials"
	credrepofake "github.com/jrsteele09/boutik-admin/credentials/repofake"
	"github.com/jrsteele09/boutik-admin/guard"
	"github.com/jrsteele09/boutik-admin/internal/config"
	"github.com/jrsteele09/boutik-admin/internal/errors"
	"github.com/jrsteele09/boutik-admin/navigation"
	"github.com/jrsteele09/boutik-admin/resources"
	"github.com/jrsteele09/boutik-admin/server"
	"github.com/jrsteele09/boutik-admin/session"
	refreshrepofake "github.com/jrsteele09/boutik-admin/token/refresh/repofake"
	unitsrepofake "github.com/jrsteele09/boutik-admin/units/repofake"
	"github.com/jrsteele09/boutik-admin/users"
	fakeuserrepo "github.com/jrsteele09/boutik-admin/users/repofake"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "admin@tantana.mg"
	adminPassword = "changethis"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

type testFixture struct {
	app     *App
	router  *Router
	session *session.Session
	auth    *auth.Service
	clock   *clock
}

func setupFixture(t *testing.T, start string) *testFixture {
	t.Helper()
	t.Setenv("ENV", "TEST")
	t.Setenv("SUPERUSER_EMAIL", adminEmail)
	t.Setenv("SUPERUSER_PASSWORD", adminPassword)

	s, err := server.New(config.New(), server.Repos{
		Users:   fakeuserrepo.NewFakeUserRepo(),
		Units:   unitsrepofake.NewFakeUnitsRepo(),
		Refresh: refreshrepofake.NewFakeRefreshTokenRepo(),
	})
	require.NoError(t, err)
	require.NoError(t, s.SeedDemoData())
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	t.Setenv("API_BASE_URL", srv.URL)
	cfg := config.New()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	f := &testFixture{
		router:  NewRouter(navigation.ParseLocation(start)),
		session: session.New(),
		clock:   &clock{t: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)},
	}
	c := client.New(cfg, credentials.New(credrepofake.NewFakeCredentialsRepo()), f.session, f.router)
	f.auth = auth.NewService(c, f.session, f.router, cfg)
	f.app = NewApp(ctx, Deps{
		Config:  cfg,
		Session: f.session,
		Auth:    f.auth,
		Owners:  resources.NewOwners(c),
		POS:     resources.NewPointsOfSale(c),
		Router:  f.router,
		Guard:   guard.New(guard.DefaultTable(), cfg, f.router),
		Now:     f.clock.now,
	})
	return f
}

// sync hands the latest session snapshot to the app and routes
func (f *testFixture) sync() tea.Cmd {
	f.app.snap = f.session.Snapshot()
	return f.app.route()
}

// send delivers msg and every message its commands produce. Text input keys go
// through app.Update directly because their cursor blink commands never stop.
func (f *testFixture) send(t *testing.T, msg tea.Msg) {
	t.Helper()
	_, cmd := f.app.Update(msg)
	for _, m := range collect(cmd) {
		f.send(t, m)
	}
}

// collect runs cmd and the commands it batches. Callers pass only commands that
// return without waiting.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestApp_GuardsEveryRoute(t *testing.T) {
	f := setupFixture(t, config.PathOwnersList)

	f.sync()
	require.Equal(t, guard.Loading, f.app.Decision().State)
	require.Contains(t, f.app.View(), "Restoring session")

	// resolved as signed out: the login screen remembers where we were going
	f.session.MarkInitialized()
	f.sync()
	require.Equal(t, guard.Denied, f.app.Decision().State)
	loc := f.router.Current()
	require.Equal(t, config.PathLogin, loc.Path)
	require.Equal(t, config.PathOwnersList, loc.Get(config.RedirectQueryParam))

	f.sync()
	require.Equal(t, guard.Allowed, f.app.Decision().State)
	require.Contains(t, f.app.View(), "Sign in")

	// a signed in owner is sent back to the admin page, which then sends it home
	f.session.SignIn(&users.User{ID: 7, Email: "owner@tantana.mg", LastName: "Rabe", IsOwner: true})
	f.sync()
	require.Equal(t, config.PathOwnersList, f.router.Current().Path)
	f.sync()
	require.Equal(t, config.PathDashboardHome, f.router.Current().Path)
	f.sync()
	require.Equal(t, guard.Allowed, f.app.Decision().State)
	require.Contains(t, f.app.View(), "owner@tantana.mg")
}

func TestApp_UnknownRouteLandsOnHome(t *testing.T) {
	f := setupFixture(t, config.PathDashboardRoot)
	f.session.SignIn(&users.User{ID: 1, Email: adminEmail, IsSuperuser: true})
	f.session.MarkInitialized()

	f.sync()
	require.Equal(t, config.PathDashboardHome, f.router.Current().Path)
}

func TestLoginScreen_SessionExpiredNotice(t *testing.T) {
	f := setupFixture(t, config.PathLogin+"?"+client.ReasonParam+"="+client.ReasonSessionExpired)
	f.session.MarkInitialized()

	f.sync()
	require.Contains(t, f.app.View(), noticeSessionExpired)
}

func TestLoginScreen_Submit(t *testing.T) {
	f := setupFixture(t, config.PathLogin)
	f.session.MarkInitialized()
	f.sync()

	f.app.Update(key(adminEmail))
	f.app.Update(key("tab"))
	f.app.Update(key("wrong-password"))
	f.send(t, key("enter"))
	require.Contains(t, f.app.View(), noticeBadCredentials)
	require.False(t, f.session.Snapshot().IsAuthenticated)

	f.app.Update(key(adminPassword))
	f.send(t, key("enter"))
	require.True(t, f.session.Snapshot().IsAuthenticated)
	require.Equal(t, config.PathDashboardHome, f.router.Current().Path)
}

func TestLoginScreen_InactiveOwnerIsToldWhy(t *testing.T) {
	f := setupFixture(t, config.PathLogin)
	f.session.MarkInitialized()
	f.sync()

	f.app.Update(key("faly.andriama@tantana.mg"))
	f.app.Update(key("tab"))
	f.app.Update(key(server.DemoOwnerPassword))
	f.send(t, key("enter"))

	view := f.app.View()
	require.Contains(t, view, "Inactive user")
	require.NotContains(t, view, noticeBadCredentials)
	require.False(t, f.session.Snapshot().IsAuthenticated)
}

func TestLoginScreen_LocalValidation(t *testing.T) {
	f := setupFixture(t, config.PathLogin)
	f.session.MarkInitialized()
	f.sync()

	f.app.Update(key("not-an-email"))
	f.app.Update(key("tab"))
	f.app.Update(key("secret1"))
	f.send(t, key("enter"))
	require.Contains(t, f.app.View(), "username")
}

func TestOwnersScreen_FiltersSettleBeforeFetching(t *testing.T) {
	f := setupFixture(t, config.PathLogin)
	_, err := f.auth.Login(context.Background(), auth.LoginRequest{Username: adminEmail, Password: adminPassword})
	require.NoError(t, err)

	f.router.Navigate(navigation.Location{Path: config.PathOwnersList}, navigation.Push)
	for _, m := range collect(f.sync()) {
		f.send(t, m)
	}
	view := f.app.View()
	require.Contains(t, view, "5 owners (3 active)")
	require.Contains(t, view, "Rakoto")

	// typing does not fetch until the debounce window has elapsed
	f.app.Update(key("/"))
	f.app.Update(key("mialy"))
	require.Contains(t, f.app.View(), "5 owners")

	f.clock.t = f.clock.t.Add(600 * time.Millisecond)
	f.send(t, settleMsg{})
	view = f.app.View()
	require.Contains(t, view, "1 owners (1 active)")
	require.Contains(t, view, "Razafy")
	require.NotContains(t, view, "Rakoto")

	// back to all owners, then the inactive tab
	f.app.Update(key("esc"))
	f.app.Update(key("x"))
	f.app.Update(key("tab"))
	f.app.Update(key("tab"))
	f.clock.t = f.clock.t.Add(600 * time.Millisecond)
	f.send(t, settleMsg{})
	require.Contains(t, f.app.View(), "2 owners (0 active)")

	f.send(t, key("+"))
	require.Contains(t, f.app.View(), "30 per page")
}

func TestOwnersScreen_OpensShopsOfSelectedOwner(t *testing.T) {
	f := setupFixture(t, config.PathLogin)
	_, err := f.auth.Login(context.Background(), auth.LoginRequest{Username: adminEmail, Password: adminPassword})
	require.NoError(t, err)

	f.router.Navigate(navigation.Location{Path: config.PathOwnersList}, navigation.Push)
	for _, m := range collect(f.sync()) {
		f.send(t, m)
	}

	f.app.Update(key("enter"))
	loc := f.router.Current()
	require.Equal(t, config.PathOwnersPOS, loc.Path)
	require.NotEmpty(t, loc.Get(ownerQueryParam))

	for _, m := range collect(f.sync()) {
		f.send(t, m)
	}
	require.Contains(t, f.app.View(), "Boutik")

	f.app.Update(key("esc"))
	require.Equal(t, config.PathOwnersList, f.router.Current().Path)
}

func TestErrorNotice(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"network", &errors.NetworkError{Op: "GET", Err: context.DeadlineExceeded}, noticeUnreachable},
		{"refresh", &errors.RefreshFailure{Cause: errors.CauseNoRefreshToken}, noticeSessionExpired},
		{"unauthorized", &errors.AuthError{Status: 401}, noticeBadCredentials},
		{"forbidden", &errors.AuthError{Status: 403}, noticeForbidden},
		{"field", &errors.ValidationError{Field: "email", Reason: "invalid email address"}, "email: invalid email address"},
		{"inactive account", &errors.ValidationError{Status: 400, Reason: "Inactive user"}, "Inactive user"},
		{"unknown", &errors.UnknownError{Status: 500}, noticeUnexpected},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, errorNotice(tc.err))
		})
	}
}

func TestCycle(t *testing.T) {
	items := []string{"id", "last_name", "created_at"}
	require.Equal(t, "last_name", cycle(items, "id", true))
	require.Equal(t, "id", cycle(items, "created_at", true))
	require.Equal(t, "created_at", cycle(items, "id", false))
	require.Equal(t, "id", cycle(items, "unknown", true))
	require.Equal(t, 30, cycleInt([]int{5, 15, 30, 40}, 15, true))
	require.True(t, strings.HasPrefix(cycle(nil, "x", true), "x"))
}
