package oauthmodel

import (
	"net/url"
	"strings"
)

// TokenRequest is the form body of the password grant sent to the token endpoint.
type TokenRequest struct {
	// GrantType defaults to password when left empty
	GrantType GrantType
	// Username carries the email address
	Username string
	Password string
	Scope    string
}

// ParseTokenRequest reads a password grant from a submitted form
func ParseTokenRequest(form url.Values) (TokenRequest, error) {
	req := TokenRequest{
		GrantType: GrantType(strings.TrimSpace(form.Get("grant_type"))),
		Username:  strings.TrimSpace(form.Get("username")),
		Password:  form.Get("password"),
		Scope:     form.Get("scope"),
	}
	if req.GrantType == "" {
		req.GrantType = PasswordGrant
	}
	if req.GrantType != PasswordGrant {
		return req, ErrUnsupportedGrantType
	}
	if req.Username == "" || req.Password == "" {
		return req, ErrMissingCredentials
	}
	return req, nil
}

// RefreshRequest is the JSON body of the refresh endpoint.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
