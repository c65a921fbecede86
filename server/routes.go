package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initRoutes() {
	// AUTH
	s.RegisterRouteHandler("POST "+RouteAuthToken, ChainMiddleware(s.TokenHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthRefresh, ChainMiddleware(s.RefreshHandler(), s.APIMiddleware()...))

	// USERS
	s.RegisterRouteHandler("GET "+RouteUsersMe, ChainMiddleware(s.MeHandler(), s.APIMiddleware(s.RequireAuth())...))

	// OWNERS (superuser only, except an owner reading its own points of sale)
	s.RegisterRouteHandler("GET "+RouteOwnersList, ChainMiddleware(s.ListOwnersHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireSuperuser())...))
	s.RegisterRouteHandler("POST "+RouteOwners, ChainMiddleware(s.CreateOwnerHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireSuperuser())...))
	s.RegisterRouteHandler("PUT "+RouteOwner, ChainMiddleware(s.UpdateOwnerHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireSuperuser())...))
	s.RegisterRouteHandler("GET "+RouteOwnerPOS, ChainMiddleware(s.ListOwnerPOSHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireSelfOrSuperuser("id"))...))

	// POINTS OF SALE
	s.RegisterRouteHandler("POST "+RouteUnits, ChainMiddleware(s.CreateUnitHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireSuperuser())...))
	s.RegisterRouteHandler("PUT "+RouteUnit, ChainMiddleware(s.UpdateUnitHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireSuperuser())...))
	s.RegisterRouteHandler("DELETE "+RouteUnit, ChainMiddleware(s.DeleteUnitHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireSuperuser())...))

	// CORS preflight for every route
	s.RegisterRouteHandler("OPTIONS /", ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, s.APIMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
}
