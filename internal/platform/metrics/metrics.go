package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tco_operation_duration_seconds",
			Help:    "Duration of timed operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op", "outcome"},
	)

	RouteAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tco_route_attempts_total",
			Help: "Route provider queries by retry tier and outcome status",
		},
		[]string{"tier", "status"},
	)

	CandidateEvaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tco_candidate_evaluations_total",
			Help: "Candidate evaluations by outcome code",
		},
		[]string{"outcome"},
	)

	RouteCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tco_route_cache_lookups_total",
			Help: "Route cache lookups by result",
		},
		[]string{"result"},
	)

	GeocodeCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tco_geocode_cache_lookups_total",
			Help: "Geocode cache lookups by tier and result",
		},
		[]string{"tier", "result"},
	)
)
