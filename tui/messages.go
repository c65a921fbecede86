package tui

import (
	"github.com/jrsteele09/boutik-admin/resources"
	"github.com/jrsteele09/boutik-admin/session"
	"github.com/jrsteele09/boutik-admin/units"
)

// navigatedMsg reports that the router location changed
type navigatedMsg struct{}

// sessionMsg carries the latest session snapshot
type sessionMsg struct {
	snap session.Snapshot
}

// initialisedMsg reports the end of the startup session resolution
type initialisedMsg struct {
	err error
}

type loginResultMsg struct {
	err error
}

type ownersLoadedMsg struct {
	seq  int
	page resources.OwnersPage
	err  error
}

type posLoadedMsg struct {
	ownerID int
	page    resources.Page[units.PointOfSale]
	err     error
}

// settleMsg fires when the owners filter debounce window may have elapsed
type settleMsg struct{}
