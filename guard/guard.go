package guard

import (
	"context"

	"github.com/jrsteele09/boutik-admin/internal/config"
	"github.com/jrsteele09/boutik-admin/navigation"
	"github.com/jrsteele09/boutik-admin/session"
	"github.com/rs/zerolog/log"
)

// Guard evaluates a table and performs the redirect of a denied decision
type Guard struct {
	table *Table
	paths config.PathsConfig
	nav   navigation.Navigator
}

func New(table *Table, paths config.PathsConfig, nav navigation.Navigator) *Guard {
	return &Guard{table: table, paths: paths, nav: nav}
}

func (g *Guard) Table() *Table {
	return g.table
}

// Check evaluates loc and, when denied, replaces the current location with the redirect
func (g *Guard) Check(snap session.Snapshot, loc navigation.Location) Decision {
	d := g.table.Evaluate(snap, loc, g.paths)
	if d.State == Denied {
		log.Debug().Str("from", loc.String()).Str("to", d.Redirect.String()).Msg("navigation denied")
		g.nav.Navigate(d.Redirect, navigation.Replace)
	}
	return d
}

// Run re-checks the current location on every session change until ctx is done.
// current is read at each change so navigation in between is honoured.
func (g *Guard) Run(ctx context.Context, sess *session.Session, current func() navigation.Location, onDecision func(Decision)) error {
	for snap := range sess.Watch(ctx) {
		d := g.Check(snap, current())
		if onDecision != nil {
			onDecision(d)
		}
	}
	return ctx.Err()
}
