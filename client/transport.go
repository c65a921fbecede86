package client

import (
	"net/http"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// requestIDTransport stamps requests that did not go through Client.send, such as
// the token exchange run by x/oauth2 on this client's http.Client
type requestIDTransport struct {
	base http.RoundTripper
}

func (t requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(RequestIDHeader) == "" {
		req = req.Clone(req.Context())
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}
	return t.base.RoundTrip(req)
}

// withRequestID returns a copy of hc whose transport stamps a request id
func withRequestID(hc *http.Client) *http.Client {
	if _, ok := hc.Transport.(requestIDTransport); ok {
		return hc
	}
	base := hc.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	wrapped := *hc
	wrapped.Transport = requestIDTransport{base: base}
	return &wrapped
}
