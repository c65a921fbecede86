package credentials

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/boutik-admin/internal/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
)

// Credentials exposes the access/refresh token pair held in a Repo.
type Credentials struct {
	repo Repo
}

func New(repo Repo) *Credentials {
	return &Credentials{repo: repo}
}

// AccessToken returns the stored access token, "" when there is none
func (c *Credentials) AccessToken() string {
	return c.get(KeyAccessToken)
}

// RefreshToken returns the stored refresh token, "" when there is none
func (c *Credentials) RefreshToken() string {
	return c.get(KeyRefreshToken)
}

// Token returns the stored pair as an oauth2 token, nil when no access token is stored
func (c *Credentials) Token() *oauth2.Token {
	access := c.AccessToken()
	if access == "" {
		return nil
	}
	tok := &oauth2.Token{
		AccessToken:  access,
		TokenType:    "Bearer",
		RefreshToken: c.RefreshToken(),
	}
	if exp, ok := c.AccessTokenExpiry(); ok {
		tok.Expiry = exp
	}
	return tok
}

// Save persists the access token, and the refresh token only when the backend issued one.
func (c *Credentials) Save(tok *oauth2.Token) error {
	if tok == nil || tok.AccessToken == "" {
		return errors.Wrapf(errors.ErrInvalidToken, "[Credentials Save] empty access token")
	}
	if err := c.repo.Upsert(KeyAccessToken, tok.AccessToken); err != nil {
		return errors.Wrapf(err, "[Credentials Save] access token")
	}
	if tok.RefreshToken == "" {
		return nil
	}
	if err := c.repo.Upsert(KeyRefreshToken, tok.RefreshToken); err != nil {
		return errors.Wrapf(err, "[Credentials Save] refresh token")
	}
	return nil
}

// Clear removes both tokens. Missing keys are not an error, and a failed delete
// does not stop the other one from being attempted.
func (c *Credentials) Clear() error {
	var errs []error
	for _, key := range []string{KeyAccessToken, KeyRefreshToken} {
		if err := c.repo.Delete(key); err != nil && !errors.Is(err, errors.ErrNotFound) {
			errs = append(errs, errors.Wrapf(err, "[Credentials Clear] %s", key))
		}
	}
	return errors.Join(errs...)
}

// AccessTokenExpiry reads the exp claim of the stored access token without verifying it.
// The client never trusts it; it is only used for diagnostics.
func (c *Credentials) AccessTokenExpiry() (time.Time, bool) {
	access := c.AccessToken()
	if access == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(access, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (c *Credentials) get(key string) string {
	v, err := c.repo.Get(key)
	if err != nil {
		if !errors.Is(err, errors.ErrNotFound) {
			log.Err(err).Str("key", key).Msg("reading credential")
		}
		return ""
	}
	return v
}
