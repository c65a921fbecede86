package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/jrsteele09/boutik-admin/internal/errors"
	"github.com/jrsteele09/boutik-admin/navigation"
	"github.com/jrsteele09/boutik-admin/oauthmodel"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	RefreshPath = "/auth/refresh"

	// ReasonParam carries why the user was sent to the login screen
	ReasonParam          = "reason"
	ReasonSessionExpired = "session_expired"
)

// refresh joins the in-flight refresh or starts one. The shared refresh is detached
// from the caller's cancellation; ctx only bounds how long this caller waits.
// staleToken is the access token that was rejected: a flight that finds a different
// token already stored has nothing to do.
func (c *Client) refresh(ctx context.Context, staleToken string) error {
	ch := c.refreshFlight.DoChan("refresh", func() (any, error) {
		if current := c.creds.AccessToken(); current != "" && current != staleToken {
			return nil, nil
		}
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return nil, c.runRefresh(flightCtx)
	})

	select {
	case res := <-ch:
		if res.Shared {
			c.metrics.coalesced.Inc()
		}
		return res.Err
	case <-ctx.Done():
		return &errors.NetworkError{Op: http.MethodPost, URL: RefreshPath, Err: ctx.Err()}
	}
}

func (c *Client) runRefresh(ctx context.Context) error {
	refreshToken := c.creds.RefreshToken()
	if refreshToken == "" {
		return c.refreshFailed(&errors.RefreshFailure{Cause: errors.CauseNoRefreshToken})
	}

	body, err := json.Marshal(oauthmodel.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return c.refreshFailed(&errors.RefreshFailure{Cause: errors.CauseBackendRejected, Err: err})
	}

	// Sent without a bearer token and outside the 401 retry path
	resp, err := c.send(ctx, Request{Method: http.MethodPost, URL: RefreshPath}, body, "")
	if err != nil {
		return c.refreshFailed(&errors.RefreshFailure{Cause: errors.CauseBackendRejected, Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return c.refreshFailed(&errors.RefreshFailure{
			Cause: errors.CauseBackendRejected,
			Err:   ErrorFromResponse(resp.StatusCode, raw),
		})
	}

	var tok oauthmodel.TokenResponse
	if err := decode(resp, &tok); err != nil {
		return c.refreshFailed(&errors.RefreshFailure{Cause: errors.CauseBackendRejected, Err: err})
	}
	if tok.AccessToken == "" {
		return c.refreshFailed(&errors.RefreshFailure{
			Cause: errors.CauseBackendRejected,
			Err:   &errors.ValidationError{Field: "access_token", Reason: "missing from refresh response"},
		})
	}

	err = c.creds.Save(&oauth2.Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
	})
	if err != nil {
		return c.refreshFailed(&errors.RefreshFailure{Cause: errors.CauseBackendRejected, Err: err})
	}
	c.metrics.refreshes.WithLabelValues(refreshOutcomeSuccess).Inc()
	log.Debug().Bool("rotated", tok.RefreshToken != "").Msg("access token refreshed")
	return nil
}

// refreshFailed ends the session: both tokens are cleared, the session is signed out
// and the user is sent to the login screen.
func (c *Client) refreshFailed(fail *errors.RefreshFailure) error {
	c.metrics.refreshes.WithLabelValues(string(fail.Cause)).Inc()
	log.Warn().Err(fail).Msg("token refresh failed, signing out")

	if err := c.creds.Clear(); err != nil {
		log.Err(err).Msg("clearing credentials after failed refresh")
	}
	if c.session != nil {
		c.session.SignOut()
	}
	if c.nav != nil {
		to := navigation.Location{Path: c.loginPath}.With(ReasonParam, ReasonSessionExpired)
		c.nav.Navigate(to, navigation.Replace)
	}
	return fail
}
