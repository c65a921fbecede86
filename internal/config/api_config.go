package config

import (
	"strings"
	"time"
)

type APIConfig interface {
	GetAPIBaseURL() string
	GetRequestTimeout() time.Duration
	GetRetryBudget() int
	GetRequestsPerSecond() float64
	GetRequestBurst() int
}

type API struct {
	file *File
}

var _ APIConfig = API{}

// GetAPIBaseURL returns the backend base URL without a trailing slash
func (a API) GetAPIBaseURL() string {
	return strings.TrimRight(GetEnv("API_BASE_URL", orDefault(a.file.API.BaseURL, "http://localhost:8000")), "/")
}

func (a API) GetRequestTimeout() time.Duration {
	def := time.Duration(orDefault(a.file.API.TimeoutSecs, 30)) * time.Second
	return GetEnvDuration("API_TIMEOUT", def)
}

// GetRetryBudget is the number of resends a request may make after a 401
func (a API) GetRetryBudget() int {
	return GetEnvInt("API_RETRY_BUDGET", orDefault(a.file.API.RetryBudget, 1))
}

// GetRequestsPerSecond returns 0 when outbound requests are not rate limited
func (a API) GetRequestsPerSecond() float64 {
	return GetEnvFloat("API_REQUESTS_PER_SECOND", a.file.API.RequestsPerSecond)
}

func (a API) GetRequestBurst() int {
	return GetEnvInt("API_REQUEST_BURST", orDefault(a.file.API.RequestBurst, 10))
}
