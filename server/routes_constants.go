package server

// Route path constants
// All backend routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteAuthToken   = "/auth/token"
	RouteAuthRefresh = "/auth/refresh"

	// User Routes
	RouteUsersMe = "/users/me"

	// Unit Routes - Owners
	RouteOwnersList = "/unit/owners-list"
	RouteOwners     = "/unit/owners"
	RouteOwner      = "/unit/owners/{id}"
	RouteOwnerPOS   = "/unit/owners/{id}/pos"

	// Unit Routes - Points of sale
	RouteUnits = "/unit/{$}"
	RouteUnit  = "/unit/{id}"

	// Operational
	RouteMetrics = "/metrics"
)
