package users

import (
	"regexp"
	"strings"

	"github.com/jrsteele09/boutik-admin/internal/errors"
)

const MinPasswordLength = 8

var (
	emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)
	namePattern  = regexp.MustCompile(`^[A-Za-z\s\x{00C0}-\x{017F}]{1,30}$`)
)

func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func IsName(s string) bool {
	return namePattern.MatchString(s)
}

func ValidateEmail(field, email string) error {
	if strings.TrimSpace(email) == "" {
		return &errors.ValidationError{Field: field, Reason: "email is required"}
	}
	if !IsEmail(email) {
		return &errors.ValidationError{Field: field, Reason: "invalid email address"}
	}
	return nil
}

func ValidateName(field, name string) error {
	if !IsName(name) {
		return &errors.ValidationError{Field: field, Reason: "invalid name"}
	}
	return nil
}

// ValidatePasswordStrength checks a password chosen for a new or updated account
func ValidatePasswordStrength(password string) error {
	if len(password) < MinPasswordLength {
		return &errors.ValidationError{Field: "password", Reason: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateConfirmation checks that a confirmation field repeats the password
func ValidateConfirmation(password, confirmation string) error {
	if confirmation == "" {
		return &errors.ValidationError{Field: "confirm_password", Reason: "password confirmation is required"}
	}
	if password != confirmation {
		return &errors.ValidationError{Field: "confirm_password", Reason: "the passwords do not match"}
	}
	return nil
}
