package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/jrsteele09/boutik-admin/internal/errors"
)

// Request describes one API call. Body, when set, is sent as JSON.
type Request struct {
	Method string
	URL    string // backend path such as "/users/me", or an absolute URL
	Query  url.Values
	Body   any
	Header http.Header
}

func (r Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return r.Method
}

// encodeBody marshals the body once so a resend carries the same bytes
func (r Request) encodeBody() ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	b, err := json.Marshal(r.Body)
	if err != nil {
		return nil, &errors.ValidationError{Field: "body", Reason: "cannot encode request body", Err: err}
	}
	return b, nil
}

type retryBudgetKey struct{}

// WithRetryBudget returns a context allowing n more 401-triggered retries
func WithRetryBudget(ctx context.Context, n int) context.Context {
	if n < 0 {
		n = 0
	}
	return context.WithValue(ctx, retryBudgetKey{}, n)
}

// RetryBudget reads the remaining budget, def when the context carries none
func RetryBudget(ctx context.Context, def int) int {
	if n, ok := ctx.Value(retryBudgetKey{}).(int); ok {
		return n
	}
	return def
}
