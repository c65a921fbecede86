// Package tui is the terminal front end of the dashboard: a Bubble Tea program
// whose router applies the route guard table on every navigation and every
// session change.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jrsteele09/boutik-admin/auth"
	"github.com/jrsteele09/boutik-admin/guard"
	"github.com/jrsteele09/boutik-admin/internal/config"
	"github.com/jrsteele09/boutik-admin/navigation"
	"github.com/jrsteele09/boutik-admin/resources"
	"github.com/jrsteele09/boutik-admin/session"
	"github.com/rs/zerolog/log"
)

// screen is one routed view. Enter runs each time its route becomes active.
type screen interface {
	Enter(loc navigation.Location, snap session.Snapshot) tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
}

// Deps are the services the terminal app drives
type Deps struct {
	Config  config.Config
	Session *session.Session
	Auth    *auth.Service
	Owners  *resources.Owners
	POS     *resources.PointsOfSale
	Router  *Router
	Guard   *guard.Guard
	Now     func() time.Time // defaults to time.Now
}

// env is shared by the screens
type env struct {
	ctx     context.Context
	appName string
	config  config.Config
	auth    *auth.Service
	owners  *resources.Owners
	pos     *resources.PointsOfSale
	router  *Router
	now     func() time.Time
}

type App struct {
	env     *env
	session *session.Session
	guard   *guard.Guard
	watch   <-chan session.Snapshot

	snap      session.Snapshot
	loc       navigation.Location
	decision  guard.Decision
	active    screen
	activeKey string
	screens   map[string]screen
	spinner   spinner.Model
}

var _ tea.Model = (*App)(nil)

func NewApp(ctx context.Context, d Deps) *App {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	e := &env{
		ctx:     ctx,
		appName: d.Config.GetAppName(),
		config:  d.Config,
		auth:    d.Auth,
		owners:  d.Owners,
		pos:     d.POS,
		router:  d.Router,
		now:     now,
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = noticeStyle

	return &App{
		env:     e,
		session: d.Session,
		guard:   d.Guard,
		watch:   d.Session.Watch(ctx),
		snap:    d.Session.Snapshot(),
		screens: map[string]screen{
			config.PathLogin:         newLoginScreen(e),
			config.PathDashboardHome: newHomeScreen(e),
			config.PathOwnersList:    newOwnersScreen(e),
			config.PathOwnersPOS:     newPOSScreen(e),
		},
		spinner: sp,
	}
}

// Run starts the terminal program and blocks until it exits
func Run(ctx context.Context, d Deps, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app := NewApp(ctx, d)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(app, opts...).Run()
	return err
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.initialise(), a.waitNavigation(), a.waitSession(), a.route())
}

func (a *App) initialise() tea.Cmd {
	ctx, svc := a.env.ctx, a.env.auth
	return func() tea.Msg {
		return initialisedMsg{err: svc.Initialise(ctx)}
	}
}

func (a *App) waitSession() tea.Cmd {
	watch := a.watch
	return func() tea.Msg {
		snap, ok := <-watch
		if !ok {
			return nil
		}
		return sessionMsg{snap: snap}
	}
}

func (a *App) waitNavigation() tea.Cmd {
	ctx, changed := a.env.ctx, a.env.router.Changed()
	return func() tea.Msg {
		select {
		case <-changed:
			return navigatedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "ctrl+l":
			if a.snap.IsAuthenticated {
				return a, a.logout()
			}
		}

	case sessionMsg:
		a.snap = msg.snap
		return a, tea.Batch(a.waitSession(), a.route())

	case navigatedMsg:
		return a, tea.Batch(a.waitNavigation(), a.route())

	case initialisedMsg:
		if msg.err != nil {
			log.Debug().Err(msg.err).Msg("no session restored")
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	if a.active == nil || a.decision.State != guard.Allowed {
		return a, nil
	}
	return a, a.active.Update(msg)
}

func (a *App) logout() tea.Cmd {
	ctx, svc := a.env.ctx, a.env.auth
	return func() tea.Msg {
		if err := svc.Logout(ctx); err != nil {
			log.Err(err).Msg("logout")
		}
		return nil
	}
}

// route evaluates the guard table for the router location and activates the
// screen of an allowed route
func (a *App) route() tea.Cmd {
	loc := a.env.router.Current()
	a.loc = loc
	a.decision = a.guard.Check(a.snap, loc)
	if a.decision.State != guard.Allowed {
		a.active, a.activeKey = nil, ""
		return nil
	}

	key := loc.String()
	if key == a.activeKey && a.active != nil {
		if home, ok := a.active.(*homeScreen); ok {
			home.snap = a.snap
		}
		return nil
	}

	scr, ok := a.screens[loc.Path]
	if !ok {
		// unknown routes and the dashboard root land on the dashboard home
		a.active, a.activeKey = nil, ""
		a.env.router.Navigate(navigation.Location{Path: config.PathDashboardHome}, navigation.Replace)
		return nil
	}
	a.active, a.activeKey = scr, key
	return scr.Enter(loc, a.snap)
}

// Location is the location the app currently displays
func (a *App) Location() navigation.Location {
	return a.loc
}

// Decision is the guard outcome for Location
func (a *App) Decision() guard.Decision {
	return a.decision
}

func (a *App) View() string {
	if a.active == nil {
		label := "Loading…"
		if a.decision.State == guard.Loading {
			label = "Restoring session…"
		}
		return frameStyle.Render(a.spinner.View() + " " + label)
	}
	return frameStyle.Render(a.active.View())
}
