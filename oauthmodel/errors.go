package oauthmodel

import "errors"

var (
	ErrUnsupportedGrantType = errors.New("unsupported grant_type")
	ErrMissingCredentials   = errors.New("username and password are required")
	ErrMissingRefreshToken  = errors.New("refresh_token is required")
)
