package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics aggregates the service counters. A single instance is wired in
// main and shared by the auth handler and the token middleware.
type Metrics struct {
	LoginAttempts    *prometheus.CounterVec
	TokenRejections  prometheus.Counter
	RefreshRequests  *prometheus.CounterVec
	RequestsInFlight prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LoginAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_login_attempts_total",
			Help: "Login attempts by outcome (success, failure).",
		}, []string{"outcome"}),
		TokenRejections: factory.NewCounter(prometheus.CounterOpts{
			Name: "auth_token_rejections_total",
			Help: "Bearer tokens rejected by the verification gate.",
		}),
		RefreshRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_refresh_requests_total",
			Help: "Refresh token exchanges by outcome (success, not_found, expired).",
		}, []string{"outcome"}),
		RequestsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Requests currently being handled.",
		}),
	}
}
