package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/jrsteele09/boutik-admin/users"
	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyUser stores the authenticated *users.User
	ContextKeyUser ContextKey = "user"
)

const (
	detailNotAuthenticated = "Not authenticated"
	detailInvalidToken     = "Could not validate credentials"
	detailInactiveUser     = "Inactive user"
	detailNotPrivileged    = "The user doesn't have enough privileges"
)

// CurrentUser returns the user injected by RequireAuth
func CurrentUser(ctx context.Context) (*users.User, bool) {
	u, ok := ctx.Value(ContextKeyUser).(*users.User)
	return u, ok && u != nil
}

// RequireAuth is middleware that validates a Bearer access token
// and loads the user it was issued to
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeUnauthorized(w, detailNotAuthenticated)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
				writeUnauthorized(w, detailNotAuthenticated)
				return
			}

			info, err := s.inspector.Introspect(parts[1])
			if err != nil || !info.Active {
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("rejected access token")
				writeUnauthorized(w, detailInvalidToken)
				return
			}

			user, err := s.repos.Users.GetByID(info.UserID)
			if err != nil {
				writeUnauthorized(w, detailInvalidToken)
				return
			}
			if !user.IsActive {
				writeDetail(w, http.StatusBadRequest, detailInactiveUser)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireSuperuser is middleware that validates superuser status
// Should be chained after RequireAuth to ensure the user is present
func (s *Server) RequireSuperuser() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user, ok := CurrentUser(r.Context())
			if !ok || !user.IsSuperuser {
				writeDetail(w, http.StatusForbidden, detailNotPrivileged)
				return
			}
			next(w, r)
		}
	}
}

// RequireSelfOrSuperuser lets a user through when the path value named param is its
// own id, and superusers through for any id
func (s *Server) RequireSelfOrSuperuser(param string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user, ok := CurrentUser(r.Context())
			if !ok {
				writeUnauthorized(w, detailNotAuthenticated)
				return
			}
			id, err := strconv.Atoi(r.PathValue(param))
			if !user.IsSuperuser && (err != nil || id != user.ID) {
				writeDetail(w, http.StatusForbidden, detailNotPrivileged)
				return
			}
			next(w, r)
		}
	}
}

func writeUnauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeDetail(w, http.StatusUnauthorized, detail)
}
