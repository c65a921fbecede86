package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/boutik-admin/internal/config"
	"github.com/jrsteele09/boutik-admin/token"
	"github.com/jrsteele09/boutik-admin/token/jwt"
	"github.com/jrsteele09/boutik-admin/token/refresh"
	"github.com/jrsteele09/boutik-admin/units"
	"github.com/jrsteele09/boutik-admin/users"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// Repos holds the stores the backend serves from
type Repos struct {
	Users   users.UserRepo
	Units   units.Repo
	Refresh refresh.Repo
}

// Server is an in-memory stand-in for the boutik REST backend. It speaks the same
// contract as the production API: password grant login, refresh rotation, the
// current user and the owners / points of sale endpoints.
type Server struct {
	env       string // Environment (e.g., "DEV", "PROD")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	repos     Repos
	creator   *jwt.Creator
	inspector *jwt.Inspector
	refresh   *refresh.Manager
	registry  *prometheus.Registry
	metrics   *metrics
}

func New(config config.Config, repos Repos) (*Server, error) {
	signer := token.NewHMACSigner(config.GetJWTSecret())
	registry := prometheus.NewRegistry()

	s := &Server{
		env:       config.GetEnv(),
		mux:       http.NewServeMux(),
		config:    config,
		repos:     repos,
		creator:   jwt.NewCreator(signer, config.GetAccessTokenExpiry()),
		inspector: jwt.NewInspector(signer),
		refresh:   refresh.NewManager(repos.Refresh, config),
		registry:  registry,
		metrics:   newMetrics(registry),
	}

	if err := s.InitialiseSystem(); err != nil {
		return nil, fmt.Errorf("[Server New] Failed to initialise the system: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	color, ok := methodColors[method]
	if !ok {
		color = Gray
	}
	log.Debug().Msgf("[%s] %s", color+paddedMethod+ResetColor, path)
}
