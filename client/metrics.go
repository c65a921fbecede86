package client

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const refreshOutcomeSuccess = "success"

// Metrics counts client traffic. Register it with a prometheus.Registerer to export it.
type Metrics struct {
	requests  *prometheus.CounterVec
	refreshes *prometheus.CounterVec
	coalesced prometheus.Counter
	resends   prometheus.Counter
}

// NewMetrics builds the client counters and registers them with reg when reg is not nil
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "boutik",
			Subsystem: "api_client",
			Name:      "requests_total",
			Help:      "API requests sent, by method and status class.",
		}, []string{"method", "class"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "boutik",
			Subsystem: "api_client",
			Name:      "token_refreshes_total",
			Help:      "Token refresh attempts, by outcome.",
		}, []string{"outcome"}),
		coalesced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "boutik",
			Subsystem: "api_client",
			Name:      "refresh_waiters_coalesced_total",
			Help:      "Callers that shared a refresh already in flight.",
		}),
		resends: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "boutik",
			Subsystem: "api_client",
			Name:      "resends_total",
			Help:      "Requests resent after a 401.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.refreshes, m.coalesced, m.resends)
	}
	return m
}

// Requests returns the counter for a method and status class ("2xx", "4xx", "error")
func (m *Metrics) Requests(method, class string) prometheus.Counter {
	return m.requests.WithLabelValues(method, class)
}

// Refreshes returns the refresh counter for an outcome: "success" or a refresh failure cause
func (m *Metrics) Refreshes(outcome string) prometheus.Counter {
	return m.refreshes.WithLabelValues(outcome)
}

func (m *Metrics) Coalesced() prometheus.Counter { return m.coalesced }
func (m *Metrics) Resends() prometheus.Counter   { return m.resends }

func (m *Metrics) observe(method string, status int) {
	class := "error"
	if status > 0 {
		class = strconv.Itoa(status/100) + "xx"
	}
	m.requests.WithLabelValues(method, class).Inc()
}
