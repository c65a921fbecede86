package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	requests *prometheus.CounterVec
	logins   *prometheus.CounterVec
	refresh  *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "boutik",
			Subsystem: "mockapi",
			Name:      "http_requests_total",
			Help:      "Requests served, by method, route pattern and status code.",
		}, []string{"method", "route", "code"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "boutik",
			Subsystem: "mockapi",
			Name:      "logins_total",
			Help:      "Password grant attempts by outcome.",
		}, []string{"outcome"}),
		refresh: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "boutik",
			Subsystem: "mockapi",
			Name:      "token_refreshes_total",
			Help:      "Refresh token rotations by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.requests, m.logins, m.refresh)
	return m
}
