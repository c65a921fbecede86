package jwt

import (
	"errors"
	"strconv"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/boutik-admin/token"
)

var ErrInactiveToken = errors.New("token is not active")

// TokenIntrospection is what a verified access token says about its bearer.
// When Active is false the other fields may not be populated.
type TokenIntrospection struct {
	Active    bool
	UserID    int
	Email     string
	Superuser bool
	JTI       string
	Exp       time.Time
}

// Inspector verifies access tokens issued by a Creator
type Inspector struct {
	signer token.Signer
}

func NewInspector(signer token.Signer) *Inspector {
	return &Inspector{signer: signer}
}

// Introspect verifies the signature and expiry of rawToken
func (i *Inspector) Introspect(rawToken string) (*TokenIntrospection, error) {
	if strings.TrimSpace(rawToken) == "" {
		return &TokenIntrospection{Active: false}, ErrInactiveToken
	}

	parsed, err := jwtlib.ParseWithClaims(rawToken, jwtlib.MapClaims{}, i.signer.GetVerificationKey,
		jwtlib.WithValidMethods([]string{i.signer.GetSigningMethod().Alg()}),
		jwtlib.WithTimeFunc(NowTimeFunc),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return &TokenIntrospection{Active: false}, errors.Join(ErrInactiveToken, err)
	}

	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return &TokenIntrospection{Active: false}, errors.New("error extracting claims from token")
	}

	sub, _ := claims["sub"].(string)
	userID, err := strconv.Atoi(sub)
	if err != nil {
		return &TokenIntrospection{Active: false}, errors.Join(ErrInactiveToken, err)
	}
	email, _ := claims["email"].(string)
	superuser, _ := claims["is_superuser"].(bool)
	jti, _ := claims["jti"].(string)

	var exp time.Time
	if e, err := claims.GetExpirationTime(); err == nil && e != nil {
		exp = e.Time
	}

	return &TokenIntrospection{
		Active:    true,
		UserID:    userID,
		Email:     email,
		Superuser: superuser,
		JTI:       jti,
		Exp:       exp,
	}, nil
}
