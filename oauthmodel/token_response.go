package oauthmodel

// BearerTokenType is the only token type the backend issues
const BearerTokenType = "bearer"

// TokenResponse is returned by both the password grant and the refresh endpoint.
// The refresh endpoint rotates the refresh token, so a client must store both values.
type TokenResponse struct {
	AccessToken string `json:"access_token"`

	// RefreshToken is omitted by backends that do not rotate
	RefreshToken string `json:"refresh_token,omitempty"`

	TokenType string `json:"token_type,omitempty"`

	// ExpiresIn is the access token lifetime in seconds. The exp claim is authoritative.
	ExpiresIn int `json:"expires_in,omitempty"`
}
