package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/jrsteele09/boutik-admin/internal/errors"
	"github.com/jrsteele09/boutik-admin/oauthmodel"
	"github.com/jrsteele09/boutik-admin/resources"
	"github.com/jrsteele09/boutik-admin/units"
	"github.com/jrsteele09/boutik-admin/users"
	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json"

const (
	defaultListLimit = 100

	detailBadCredentials = "Incorrect email or password"
	detailRefreshInvalid = "Invalid refresh token"
	detailEmailTaken     = "The user with this email already exists in the system"
	detailOwnerNotFound  = "Owner not found"
	detailUnitNotFound   = "Point of sale not found"
)

// TokenHandler implements the OAuth2 password grant against the users store
func (s *Server) TokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			writeDetail(w, http.StatusBadRequest, "invalid form body")
			return
		}
		req, err := oauthmodel.ParseTokenRequest(r.PostForm)
		switch {
		case errors.Is(err, oauthmodel.ErrUnsupportedGrantType):
			writeDetail(w, http.StatusBadRequest, err.Error())
			return
		case err != nil:
			field := "username"
			if req.Username != "" {
				field = "password"
			}
			writeValidation(w, "body", &errors.ValidationError{Field: field, Reason: "Field required"})
			return
		}

		user, err := s.repos.Users.GetByEmail(req.Username)
		if err != nil || !user.CheckPassword(req.Password) {
			s.metrics.logins.WithLabelValues("rejected").Inc()
			writeUnauthorized(w, detailBadCredentials)
			return
		}
		if !user.IsActive {
			s.metrics.logins.WithLabelValues("inactive").Inc()
			writeDetail(w, http.StatusBadRequest, detailInactiveUser)
			return
		}

		refreshToken, err := s.refresh.Create(user.ID)
		if err != nil {
			log.Err(err).Int("user_id", user.ID).Msg("[Server TokenHandler] refresh token")
			writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		s.metrics.logins.WithLabelValues("accepted").Inc()
		s.writeTokens(w, user, refreshToken)
	}
}

// RefreshHandler rotates a refresh token. The presented token cannot be used again.
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req oauthmodel.RefreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeValidation(w, "body", &errors.ValidationError{Field: "refresh_token", Reason: "invalid JSON body"})
			return
		}
		if req.RefreshToken == "" {
			writeValidation(w, "body", &errors.ValidationError{Field: "refresh_token", Reason: "Field required", Err: oauthmodel.ErrMissingRefreshToken})
			return
		}

		userID, next, err := s.refresh.Rotate(req.RefreshToken)
		if err != nil {
			s.metrics.refresh.WithLabelValues("rejected").Inc()
			writeUnauthorized(w, detailRefreshInvalid)
			return
		}
		user, err := s.repos.Users.GetByID(userID)
		if err != nil || !user.IsActive {
			s.metrics.refresh.WithLabelValues("rejected").Inc()
			_ = s.refresh.Revoke(userID)
			writeUnauthorized(w, detailRefreshInvalid)
			return
		}

		s.metrics.refresh.WithLabelValues("rotated").Inc()
		s.writeTokens(w, user, next)
	}
}

func (s *Server) writeTokens(w http.ResponseWriter, user *users.User, refreshToken string) {
	access, _, err := s.creator.CreateAccessToken(user)
	if err != nil {
		log.Err(err).Int("user_id", user.ID).Msg("[Server writeTokens] access token")
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, oauthmodel.TokenResponse{
		AccessToken:  access,
		RefreshToken: refreshToken,
		TokenType:    oauthmodel.BearerTokenType,
		ExpiresIn:    int(s.config.GetAccessTokenExpiry().Seconds()),
	})
}

// MeHandler returns the signed in user with the points of sale it owns
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := CurrentUser(r.Context())
		writeJSON(w, http.StatusOK, s.withOwnedAreas(user))
	}
}

// ListOwnersHandler serves one page of owners. Query parameters: sort_by (id,
// last_name, created_at), order (asc, desc), skip, limit, is_active and q.
func (s *Server) ListOwnersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, verr := parseOwnerQuery(r)
		if verr != nil {
			writeValidation(w, "query", verr)
			return
		}

		list, err := s.repos.Users.ListOwners(q)
		if err != nil {
			log.Err(err).Msg("[Server ListOwnersHandler] list owners")
			writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		page := resources.OwnersPage{
			Page:        resources.Page[*users.User]{Data: make([]*users.User, 0, len(list.Owners)), Total: list.Total},
			TotalActive: list.TotalActive,
		}
		for _, owner := range list.Owners {
			withAreas := s.withOwnedAreas(owner)
			page.Data = append(page.Data, withAreas)
			page.TotalPOS += len(withAreas.OwnedAreas)
		}
		writeJSON(w, http.StatusOK, page)
	}
}

func parseOwnerQuery(r *http.Request) (users.OwnerQuery, *errors.ValidationError) {
	values := r.URL.Query()
	q := users.OwnerQuery{SortBy: users.SortByID, Limit: defaultListLimit, Search: values.Get("q")}

	if v := values.Get("sort_by"); v != "" {
		q.SortBy = users.SortField(v)
		if !q.SortBy.Valid() {
			return q, &errors.ValidationError{Field: "sort_by", Reason: "Input should be 'id', 'last_name' or 'created_at'"}
		}
	}
	switch values.Get("order") {
	case "", "asc":
	case "desc":
		q.Descending = true
	default:
		return q, &errors.ValidationError{Field: "order", Reason: "Input should be 'asc' or 'desc'"}
	}

	var ok bool
	if q.Skip, ok = nonNegative(values.Get("skip"), 0); !ok {
		return q, &errors.ValidationError{Field: "skip", Reason: "Input should be a valid non-negative integer"}
	}
	if q.Limit, ok = nonNegative(values.Get("limit"), defaultListLimit); !ok {
		return q, &errors.ValidationError{Field: "limit", Reason: "Input should be a valid non-negative integer"}
	}
	if v := values.Get("is_active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			return q, &errors.ValidationError{Field: "is_active", Reason: "Input should be a valid boolean"}
		}
		q.Active = &active
	}
	return q, nil
}

func nonNegative(raw string, def int) (int, bool) {
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// CreateOwnerHandler registers an owner. The new account is never a superuser.
func (s *Server) CreateOwnerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in resources.OwnerCreate
		if !decodeBody(w, r, &in) {
			return
		}
		if err := in.Validate(); err != nil {
			writeError(w, "body", err)
			return
		}
		if _, err := s.repos.Users.GetByEmail(in.Email); err == nil {
			writeDetail(w, http.StatusBadRequest, detailEmailTaken)
			return
		}

		hash, err := users.HashPassword(in.Password)
		if err != nil {
			log.Err(err).Msg("[Server CreateOwnerHandler] hash password")
			writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		now := time.Now().UTC()
		owner := &users.User{
			Email:        in.Email,
			Name:         in.Name,
			LastName:     in.LastName,
			Phone:        in.Phone,
			IsActive:     in.IsActive,
			IsOwner:      true,
			CreatedAt:    &now,
			PasswordHash: hash,
		}
		if err := s.repos.Users.Upsert(owner); err != nil {
			writeError(w, "body", err)
			return
		}
		log.Info().Int("owner_id", owner.ID).Str("email", owner.Email).Msg("owner created")
		writeJSON(w, http.StatusOK, s.withOwnedAreas(owner))
	}
}

func (s *Server) UpdateOwnerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := s.ownerFromPath(w, r)
		if !ok {
			return
		}
		var in resources.OwnerUpdate
		if !decodeBody(w, r, &in) {
			return
		}
		if err := in.Validate(); err != nil {
			writeError(w, "body", err)
			return
		}
		if in.Email != nil {
			if other, err := s.repos.Users.GetByEmail(*in.Email); err == nil && other.ID != owner.ID {
				writeDetail(w, http.StatusBadRequest, detailEmailTaken)
				return
			}
		}

		updated := *owner
		in.Apply(&updated)
		if in.Password != nil {
			hash, err := users.HashPassword(*in.Password)
			if err != nil {
				log.Err(err).Msg("[Server UpdateOwnerHandler] hash password")
				writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
				return
			}
			updated.PasswordHash = hash
		}
		if err := s.repos.Users.Upsert(&updated); err != nil {
			writeError(w, "body", err)
			return
		}
		writeJSON(w, http.StatusOK, s.withOwnedAreas(&updated))
	}
}

// ListOwnerPOSHandler answers a bare array of the owner's points of sale
func (s *Server) ListOwnerPOSHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := s.ownerFromPath(w, r)
		if !ok {
			return
		}
		list, err := s.repos.Units.ListByOwner(owner.ID)
		if err != nil {
			log.Err(err).Int("owner_id", owner.ID).Msg("[Server ListOwnerPOSHandler] list units")
			writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		if list == nil {
			list = []*units.PointOfSale{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) CreateUnitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in units.Create
		if !decodeBody(w, r, &in) {
			return
		}
		if err := in.Validate(); err != nil {
			writeError(w, "body", err)
			return
		}
		if in.OwnerID != nil {
			if owner, err := s.repos.Users.GetByID(*in.OwnerID); err != nil || !owner.IsOwner {
				writeDetail(w, http.StatusNotFound, detailOwnerNotFound)
				return
			}
		}

		now := time.Now().UTC()
		pos := &units.PointOfSale{Name: in.Name, Location: in.Location, OwnerID: in.OwnerID, CreatedAt: &now}
		if err := s.repos.Units.Create(pos); err != nil {
			writeError(w, "body", err)
			return
		}
		writeJSON(w, http.StatusOK, pos)
	}
}

func (s *Server) UpdateUnitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pos, ok := s.unitFromPath(w, r)
		if !ok {
			return
		}
		var in units.Update
		if !decodeBody(w, r, &in) {
			return
		}
		if err := in.Validate(); err != nil {
			writeError(w, "body", err)
			return
		}
		in.Apply(pos)
		if err := s.repos.Units.Update(pos); err != nil {
			writeError(w, "body", err)
			return
		}
		writeJSON(w, http.StatusOK, pos)
	}
}

func (s *Server) DeleteUnitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pos, ok := s.unitFromPath(w, r)
		if !ok {
			return
		}
		if err := s.repos.Units.Delete(pos.ID); err != nil {
			writeError(w, "path", err)
			return
		}
		writeJSON(w, http.StatusOK, pos)
	}
}

func (s *Server) ownerFromPath(w http.ResponseWriter, r *http.Request) (*users.User, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeValidation(w, "path", &errors.ValidationError{Field: "id", Reason: "Input should be a valid integer"})
		return nil, false
	}
	owner, err := s.repos.Users.GetByID(id)
	if err != nil || !owner.IsOwner {
		writeDetail(w, http.StatusNotFound, detailOwnerNotFound)
		return nil, false
	}
	return owner, true
}

func (s *Server) unitFromPath(w http.ResponseWriter, r *http.Request) (*units.PointOfSale, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeValidation(w, "path", &errors.ValidationError{Field: "id", Reason: "Input should be a valid integer"})
		return nil, false
	}
	pos, err := s.repos.Units.Get(id)
	if err != nil {
		writeDetail(w, http.StatusNotFound, detailUnitNotFound)
		return nil, false
	}
	return pos, true
}

// withOwnedAreas returns a copy of user carrying the points of sale it owns
func (s *Server) withOwnedAreas(user *users.User) *users.User {
	out := *user
	out.OwnedAreas = nil
	list, err := s.repos.Units.ListByOwner(user.ID)
	if err != nil {
		log.Err(err).Int("user_id", user.ID).Msg("[Server withOwnedAreas] list units")
		return &out
	}
	for _, pos := range list {
		out.OwnedAreas = append(out.OwnedAreas, *pos)
	}
	return &out
}
