// Package oauthmodel holds the wire types of the token and refresh endpoints shared by
// the dashboard client and the mock backend.
package oauthmodel

// GrantType is the OAuth 2.0 grant used at the token endpoint.
type GrantType string

const (
	// PasswordGrant exchanges an email and password for tokens
	PasswordGrant GrantType = "password"

	// RefreshTokenGrant is accepted by the refresh endpoint only, as a JSON body
	RefreshTokenGrant GrantType = "refresh_token"
)
