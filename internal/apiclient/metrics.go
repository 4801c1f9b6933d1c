package apiclient

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "insadmin_api_request_duration_seconds",
			Help:    "Remote API call duration by endpoint and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op", "status"},
	)

	breakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "insadmin_api_breaker_state",
			Help: "Remote API circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
	)
)
