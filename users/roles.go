package users

import (
	"slices"
	"sort"

	"github.com/jrsteele09/boutik-admin/internal/config"
)

type RoleName string

const (
	RoleAdmin       RoleName = "admin"
	RoleOwner       RoleName = "owner"
	RoleManager     RoleName = "manager"
	RoleStockKeeper RoleName = "stock_keeper"
	RoleSaler       RoleName = "saler"
	RoleBackOffice  RoleName = "back_office"
)

// RoleInfo describes how the dashboard treats a role
type RoleInfo struct {
	Label         string
	DashboardPath string
	Permissions   []string
}

var roleCatalogue = map[RoleName]RoleInfo{
	RoleAdmin: {
		Label:         "Administrator",
		DashboardPath: "/dashboard/admin",
		Permissions:   []string{"manage_users", "manage_roles", "view_reports"},
	},
	RoleOwner: {
		Label:         "Owner",
		DashboardPath: "/dashboard/owner",
		Permissions:   []string{"manage_pos", "view_sales"},
	},
	RoleManager: {
		Label:         "Manager",
		DashboardPath: "/dashboard/manager",
		Permissions:   []string{"view_team", "manage_orders"},
	},
	RoleStockKeeper: {
		Label:         "Stock Keeper",
		DashboardPath: "/dashboard/stock-keeper",
		Permissions:   []string{"manage_inventory"},
	},
	RoleSaler: {
		Label:         "Saler",
		DashboardPath: "/dashboard/saler",
		Permissions:   []string{"process_sales"},
	},
	RoleBackOffice: {
		Label:         "Back Office",
		DashboardPath: "/dashboard/back-office",
		Permissions:   []string{"manage_finance"},
	},
}

func LookupRole(name RoleName) (RoleInfo, bool) {
	info, ok := roleCatalogue[name]
	return info, ok
}

// DashboardPathForRole falls back to the dashboard home for unknown roles
func DashboardPathForRole(name RoleName) string {
	if info, ok := roleCatalogue[name]; ok {
		return info.DashboardPath
	}
	return config.PathDashboardHome
}

func RoleHasPermission(name RoleName, permission string) bool {
	info, ok := roleCatalogue[name]
	return ok && slices.Contains(info.Permissions, permission)
}

// AllPermissions lists every permission of the catalogue once, sorted
func AllPermissions() []string {
	seen := make(map[string]struct{})
	for _, info := range roleCatalogue {
		for _, p := range info.Permissions {
			seen[p] = struct{}{}
		}
	}
	perms := make([]string, 0, len(seen))
	for p := range seen {
		perms = append(perms, p)
	}
	sort.Strings(perms)
	return perms
}
