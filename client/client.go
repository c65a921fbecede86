// Package client is the dashboard's authenticated HTTP client. It attaches the stored
// bearer token, refreshes it once on a 401 and normalizes every failure.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/boutik-admin/credentials"
	"github.com/jrsteele09/boutik-admin/internal/config"
	"github.com/jrsteele09/boutik-admin/internal/errors"
	"github.com/jrsteele09/boutik-admin/navigation"
	"github.com/jrsteele09/boutik-admin/session"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const maxErrorBody = 64 << 10

type Client struct {
	baseURL       string
	httpClient    *http.Client
	creds         *credentials.Credentials
	session       *session.Session
	nav           navigation.Navigator
	loginPath     string
	retryBudget   int
	timeout       time.Duration
	limiter       *rate.Limiter
	metrics       *Metrics
	refreshFlight singleflight.Group
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Its transport is wrapped so
// every request still carries a request id.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithLoginPath overrides where a failed refresh sends the user
func WithLoginPath(path string) Option {
	return func(c *Client) {
		c.loginPath = path
	}
}

func New(cfg config.APIConfig, creds *credentials.Credentials, sess *session.Session, nav navigation.Navigator, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(cfg.GetAPIBaseURL(), "/"),
		creds:       creds,
		session:     sess,
		nav:         nav,
		loginPath:   config.PathLogin,
		retryBudget: cfg.GetRetryBudget(),
		timeout:     cfg.GetRequestTimeout(),
	}
	if rps := cfg.GetRequestsPerSecond(); rps > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(rps), cfg.GetRequestBurst())
	}
	if c.timeout <= 0 {
		c.timeout = 30 * time.Second
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	c.httpClient = withRequestID(c.httpClient)
	if c.metrics == nil {
		c.metrics = NewMetrics(nil)
	}
	return c
}

// HTTPClient is the unauthenticated client used for token exchanges
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// URL resolves a backend path against the base URL
func (c *Client) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) Credentials() *credentials.Credentials {
	return c.creds
}

// Do sends req, decoding a 2xx JSON body into out when out is not nil.
// A 401 is answered by one refresh and resend while the context's retry budget lasts.
// Every returned error implements errors.Error.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	body, err := req.encodeBody()
	if err != nil {
		return err
	}
	return c.do(ctx, req, body, out)
}

func (c *Client) do(ctx context.Context, req Request, body []byte, out any) error {
	sentToken := c.creds.AccessToken()
	resp, err := c.send(ctx, req, body, sentToken)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if budget := RetryBudget(ctx, c.retryBudget); budget > 0 {
			drain(resp.Body)
			retryCtx := WithRetryBudget(ctx, budget-1)

			current := c.creds.AccessToken()
			if current == "" || current == sentToken {
				if err := c.refresh(retryCtx, sentToken); err != nil {
					return err
				}
			} else {
				log.Debug().Str("url", req.URL).Msg("access token changed while in flight, resending")
			}
			c.metrics.resends.Inc()
			return c.do(retryCtx, req, body, out)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return ErrorFromResponse(resp.StatusCode, raw)
	}
	return decode(resp, out)
}

// send performs one HTTP exchange. Only transport failures are returned as errors.
func (c *Client) send(ctx context.Context, req Request, body []byte, token string) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &errors.NetworkError{Op: req.method(), URL: req.URL, Err: err}
		}
	}

	target := c.URL(req.URL)
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method(), target, reader)
	if err != nil {
		return nil, &errors.UnknownError{Err: errors.Wrapf(err, "[Client send] build request")}
	}
	for k, v := range req.Header {
		httpReq.Header[k] = v
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := httpReq.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
		httpReq.Header.Set(RequestIDHeader, requestID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.observe(req.method(), 0)
		log.Debug().Err(err).Str("method", req.method()).Str("url", target).Str("request_id", requestID).Msg("api request failed")
		return nil, &errors.NetworkError{Op: req.method(), URL: target, Err: err}
	}
	c.metrics.observe(req.method(), resp.StatusCode)
	log.Debug().
		Str("method", req.method()).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Str("request_id", requestID).
		Msg("api request")
	return resp, nil
}

func decode(resp *http.Response, out any) error {
	if out == nil || resp.StatusCode == http.StatusNoContent {
		drain(resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return &errors.ValidationError{Status: resp.StatusCode, Reason: "empty response body", Err: errors.ErrMalformedResponse}
		}
		return &errors.ValidationError{
			Status: resp.StatusCode,
			Reason: err.Error(),
			Err:    errors.ErrMalformedResponse,
		}
	}
	return validate(out)
}

func drain(r io.Reader) {
	_, _ = io.Copy(io.Discard, io.LimitReader(r, maxErrorBody))
}

// Call is Do with the response decoded into a value of type T
func Call[T any](ctx context.Context, c *Client, req Request) (T, error) {
	var out T
	err := c.Do(ctx, req, &out)
	return out, err
}

// Get is a convenience for a GET with query parameters
func Get[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	return Call[T](ctx, c, Request{Method: http.MethodGet, URL: path, Query: query})
}
