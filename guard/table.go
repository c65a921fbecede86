package guard

import (
	"sort"
	"strings"

	"github.com/jrsteele09/boutik-admin/internal/config"
	"github.com/jrsteele09/boutik-admin/navigation"
	"github.com/jrsteele09/boutik-admin/session"
)

// Route attaches a policy to every path under Prefix
type Route struct {
	Prefix string
	Policy Policy
}

func (r Route) matches(path string) bool {
	if r.Prefix == "/" || r.Prefix == "" {
		return true
	}
	prefix := strings.TrimRight(r.Prefix, "/")
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// Table holds nested guarded subtrees, ordered outermost first
type Table struct {
	routes []Route
}

func NewTable(routes ...Route) *Table {
	sorted := append([]Route(nil), routes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(strings.TrimRight(sorted[i].Prefix, "/")) < len(strings.TrimRight(sorted[j].Prefix, "/"))
	})
	return &Table{routes: sorted}
}

// For guards every path with a single policy
func For(policy Policy) *Table {
	return NewTable(Route{Prefix: "/", Policy: policy})
}

// DefaultTable is the dashboard's layout: /auth for guests, /dashboard for signed in
// users and /dashboard/admin for administrators.
func DefaultTable() *Table {
	return NewTable(
		Route{Prefix: "/auth", Policy: GuestOnly},
		Route{Prefix: config.PathDashboardRoot, Policy: AuthenticatedOnly},
		Route{Prefix: config.PathDashboardRoot + "/admin", Policy: AdminOnly},
	)
}

// Policies lists the policies guarding path, outermost first
func (t *Table) Policies(path string) []Policy {
	var policies []Policy
	for _, r := range t.routes {
		if r.matches(path) {
			policies = append(policies, r.Policy)
		}
	}
	return policies
}

// Evaluate applies every guard matching loc from outermost to innermost; the first
// decision that is not Allowed wins. Unguarded paths are Public.
func (t *Table) Evaluate(snap session.Snapshot, loc navigation.Location, paths config.PathsConfig) Decision {
	policies := t.Policies(loc.Path)
	if len(policies) == 0 {
		return Evaluate(Public, snap, loc, paths)
	}
	for _, p := range policies {
		if d := Evaluate(p, snap, loc, paths); d.State != Allowed {
			return d
		}
	}
	return allow()
}
