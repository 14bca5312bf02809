package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeOK      = "ok"
	OutcomeStatus  = "status_error"
	OutcomeShape   = "shape_error"
	OutcomeNetwork = "network_error"
)

var (
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of upstream lookups by service and outcome",
		},
		[]string{"service", "outcome"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of upstream lookups in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service"},
	)

	RenderCycles = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "render_cycles_total",
			Help: "Total number of page render cycles",
		},
	)

	Generations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generations_total",
			Help: "Total number of text generation requests by outcome",
		},
		[]string{"outcome"},
	)
)

// ObserveUpstream records one upstream call.
func ObserveUpstream(service, outcome string, started time.Time) {
	UpstreamRequests.WithLabelValues(service, outcome).Inc()
	UpstreamDuration.WithLabelValues(service).Observe(time.Since(started).Seconds())
}
