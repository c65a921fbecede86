// Package guard decides whether a location may be shown for the current session.
package guard

import (
	"github.com/jrsteele09/boutik-admin/internal/config"
	"github.com/jrsteele09/boutik-admin/navigation"
	"github.com/jrsteele09/boutik-admin/session"
)

// Policy is the access rule attached to a route subtree
type Policy int

const (
	Public Policy = iota
	AuthenticatedOnly
	GuestOnly
	AdminOnly
)

func (p Policy) String() string {
	switch p {
	case Public:
		return "public"
	case AuthenticatedOnly:
		return "authenticated"
	case GuestOnly:
		return "guest"
	case AdminOnly:
		return "admin"
	}
	return "unknown"
}

type State int

const (
	Loading State = iota
	Allowed
	Denied
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Allowed:
		return "allowed"
	case Denied:
		return "denied"
	}
	return "unknown"
}

// Decision is the outcome of evaluating a policy. Redirect is set only when Denied.
type Decision struct {
	State    State
	Redirect navigation.Location
}

func allow() Decision { return Decision{State: Allowed} }

func deny(to navigation.Location) Decision {
	return Decision{State: Denied, Redirect: to}
}

// Evaluate applies policy to the session snapshot for the location being shown.
// It has no side effects.
func Evaluate(policy Policy, snap session.Snapshot, loc navigation.Location, paths config.PathsConfig) Decision {
	if !snap.IsInitialized {
		return Decision{State: Loading}
	}

	switch policy {
	case AuthenticatedOnly:
		if snap.IsAuthenticated {
			return allow()
		}
		return deny(LoginRedirect(loc, paths))

	case GuestOnly:
		if !snap.IsAuthenticated {
			return allow()
		}
		return deny(ReturnLocation(loc, paths))

	case AdminOnly:
		if !snap.IsAuthenticated {
			return deny(LoginRedirect(loc, paths))
		}
		if !snap.IsSuperuser() {
			return deny(navigation.Location{Path: paths.GetDashboardHome()})
		}
		return allow()
	}
	return allow()
}
