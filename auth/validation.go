package auth

import (
	"strings"

	"github.com/jrsteele09/boutik-admin/internal/errors"
	"github.com/jrsteele09/boutik-admin/users"
)

const MinLoginPasswordLength = 6

// LoginRequest is what the login form submits
type LoginRequest struct {
	Username string
	Password string
}

// Validate checks the login form before anything is sent
func (r LoginRequest) Validate() error {
	if err := users.ValidateEmail("username", strings.TrimSpace(r.Username)); err != nil {
		return err
	}
	if r.Password == "" {
		return &errors.ValidationError{Field: "password", Reason: "password is required"}
	}
	if len(r.Password) < MinLoginPasswordLength {
		return &errors.ValidationError{Field: "password", Reason: "password must be at least 6 characters"}
	}
	return nil
}
