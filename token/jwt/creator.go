package jwt

import (
	"fmt"
	"strconv"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/boutik-admin/token"
	"github.com/jrsteele09/boutik-admin/users"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Creator issues access tokens for signed in users
type Creator struct {
	signer token.Signer
	expiry time.Duration
}

func NewCreator(signer token.Signer, expiry time.Duration) *Creator {
	return &Creator{
		signer: signer,
		expiry: expiry,
	}
}

// CreateAccessToken signs a bearer token for user, returning it with its expiry
func (c *Creator) CreateAccessToken(user *users.User) (string, time.Time, error) {
	now := NowTimeFunc()
	exp := now.Add(c.expiry)
	claims := jwtlib.MapClaims{
		"sub":          strconv.Itoa(user.ID), // Backend user id
		"email":        user.Email,
		"is_superuser": user.IsSuperuser,
		"iat":          now.Unix(),
		"exp":          exp.Unix(),
		"jti":          uuid.New().String(), // Unique token id
	}

	signed, err := c.signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, exp, nil
}
