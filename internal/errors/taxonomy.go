package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies every error surfaced by the API client
type Kind string

const (
	KindNetwork    Kind = "network"
	KindAuth       Kind = "auth"
	KindRefresh    Kind = "refresh"
	KindValidation Kind = "validation"
	KindUnknown    Kind = "unknown"
)

// Error is the single inspectable shape callers receive from the API client.
type Error interface {
	error
	Kind() Kind
	// StatusCode is the HTTP status that produced the error, 0 when none did
	StatusCode() int
}

var (
	_ Error = (*NetworkError)(nil)
	_ Error = (*AuthError)(nil)
	_ Error = (*RefreshFailure)(nil)
	_ Error = (*ValidationError)(nil)
	_ Error = (*UnknownError)(nil)
)

// NetworkError is a transport failure: no response was received.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error   { return e.Err }
func (e *NetworkError) Kind() Kind      { return KindNetwork }
func (e *NetworkError) StatusCode() int { return 0 }

// AuthError is a 401 or 403 from the backend.
type AuthError struct {
	Status int
	Detail string
}

func (e *AuthError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("auth error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("auth error: %d %s", e.Status, e.Detail)
}

func (e *AuthError) Unwrap() error {
	if e.Status == http.StatusForbidden {
		return ErrForbidden
	}
	return ErrNotAuthenticated
}

func (e *AuthError) Kind() Kind      { return KindAuth }
func (e *AuthError) StatusCode() int { return e.Status }

// RefreshCause says why a token refresh failed
type RefreshCause string

const (
	CauseNoRefreshToken  RefreshCause = "no_refresh_token"
	CauseBackendRejected RefreshCause = "backend_rejected"
)

// RefreshFailure replaces a 401 when the refresh protocol could not renew the session.
type RefreshFailure struct {
	Cause RefreshCause
	Err   error
}

func (e *RefreshFailure) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("refresh failure: %s", e.Cause)
	}
	return fmt.Sprintf("refresh failure: %s: %v", e.Cause, e.Err)
}

// Unwrap exposes both the cause sentinel and the underlying error
func (e *RefreshFailure) Unwrap() []error {
	sentinel := ErrRefreshRejected
	if e.Cause == CauseNoRefreshToken {
		sentinel = ErrNoRefreshToken
	}
	if e.Err == nil {
		return []error{sentinel, ErrSessionExpired}
	}
	return []error{sentinel, ErrSessionExpired, e.Err}
}

func (e *RefreshFailure) Kind() Kind { return KindRefresh }

func (e *RefreshFailure) StatusCode() int {
	var se Error
	if e.Err != nil && errors.As(e.Err, &se) {
		return se.StatusCode()
	}
	return 0
}

// ValidationError reports a payload that does not have the expected shape,
// either a response body or input rejected before or by the backend.
type ValidationError struct {
	Field  string
	Reason string
	Status int
	Err    error
}

func (e *ValidationError) Error() string {
	msg := "validation error"
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

func (e *ValidationError) Kind() Kind      { return KindValidation }
func (e *ValidationError) StatusCode() int { return e.Status }

// UnknownError is any other failure, typically an unexpected HTTP status.
type UnknownError struct {
	Status int
	Detail string
	Err    error
}

func (e *UnknownError) Error() string {
	switch {
	case e.Status != 0 && e.Detail != "":
		return fmt.Sprintf("unexpected error: %d %s", e.Status, e.Detail)
	case e.Status != 0:
		return fmt.Sprintf("unexpected error: %d %s", e.Status, http.StatusText(e.Status))
	case e.Err != nil:
		return fmt.Sprintf("unexpected error: %v", e.Err)
	}
	return "unexpected error"
}

func (e *UnknownError) Unwrap() error   { return e.Err }
func (e *UnknownError) Kind() Kind      { return KindUnknown }
func (e *UnknownError) StatusCode() int { return e.Status }

// FromStatus builds the normalized error for a non-2xx response.
func FromStatus(status int, detail string) Error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthError{Status: status, Detail: detail}
	case http.StatusUnprocessableEntity, http.StatusBadRequest:
		return &ValidationError{Status: status, Reason: detail}
	}
	return &UnknownError{Status: status, Detail: detail}
}

// Normalize maps any error onto the taxonomy. Errors that already belong to it
// are returned unchanged; nil stays nil.
func Normalize(err error) Error {
	if err == nil {
		return nil
	}
	var e Error
	if errors.As(err, &e) {
		return e
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &NetworkError{Op: "request", Err: err}
	}
	return &UnknownError{Err: err}
}

// KindOf returns the kind of err after normalization
func KindOf(err error) Kind {
	if e := Normalize(err); e != nil {
		return e.Kind()
	}
	return ""
}
