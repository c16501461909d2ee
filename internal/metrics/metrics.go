// Package metrics holds Prometheus collectors for the signals service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealsignals_http_requests_total",
			Help: "Total HTTP requests, by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dealsignals_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	EventsIngestedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealsignals_events_ingested_total",
			Help: "Total events appended to the event log, by kind",
		},
		[]string{"kind"},
	)

	SignalsRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealsignals_signals_requests_total",
			Help: "Total signals report requests, by tier and status",
		},
		[]string{"tier", "status"},
	)

	SignalsBuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dealsignals_signals_build_duration_seconds",
			Help:    "Duration of signals report builds",
			Buckets: prometheus.DefBuckets,
		},
	)

	GovernanceDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealsignals_governance_decisions_total",
			Help: "Governance enforcement decisions on partner API calls, by action",
		},
		[]string{"action"},
	)

	RateLimitRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealsignals_rate_limit_rejections_total",
			Help: "Requests rejected by a rate limiter, by scope",
		},
		[]string{"scope"},
	)
)

// Register registers all collectors with the default registry. Call once at
// startup.
func Register() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		EventsIngestedTotal,
		SignalsRequestsTotal,
		SignalsBuildDuration,
		GovernanceDecisionsTotal,
		RateLimitRejectionsTotal,
	)
}
