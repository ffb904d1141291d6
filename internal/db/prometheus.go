package db

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// queryDuration tracks storage operation latency by operation name.
	queryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tripguides_query_duration_seconds",
			Help:    "Duration of storage operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation"},
	)

	// queryFailures counts failed storage operations by operation name.
	queryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripguides_query_failures_total",
			Help: "Total number of failed storage operations",
		},
		[]string{"operation"},
	)

	// slowQueries counts operations that exceeded the slow-query threshold.
	slowQueries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tripguides_slow_queries_total",
			Help: "Total number of storage operations slower than the configured threshold",
		},
	)

	// healthGauge is 1 while the most recent database probe succeeded.
	healthGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tripguides_database_healthy",
			Help: "Whether the most recent database liveness probe succeeded",
		},
	)
)
