package fetch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insadmin_fetch_requests_total",
			Help: "List fetches by collection, mode and outcome",
		},
		[]string{"collection", "mode", "outcome"},
	)

	chunksFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insadmin_fetch_chunks_total",
			Help: "Chunks fetched by show-all walks",
		},
		[]string{"collection"},
	)
)

func observe(collection, mode, outcome string) {
	fetchRequests.WithLabelValues(collection, mode, outcome).Inc()
}
