package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks request latency per route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// RegistrationCount counts registration attempts by outcome.
	RegistrationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registration_count",
			Help: "Total number of registration attempts",
		},
		[]string{"outcome"}, // outcome: success, duplicate, mismatch, error
	)

	// LoginCount counts login attempts by outcome.
	LoginCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_count",
			Help: "Total number of login attempts",
		},
		[]string{"outcome"}, // outcome: success, unknown_user, wrong_password, error
	)
)

// RecordHTTPRequestDuration records the latency of a handled request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementRegistration increments the registration counter.
func IncrementRegistration(outcome string) {
	RegistrationCount.WithLabelValues(outcome).Inc()
}

// IncrementLogin increments the login counter.
func IncrementLogin(outcome string) {
	LoginCount.WithLabelValues(outcome).Inc()
}
