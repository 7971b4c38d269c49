// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Calculation outcome labels.
const (
	StatusSuccess = "success"
	StatusInvalid = "invalid"
	StatusError   = "error"
)

var (
	// Calculations counts calculation requests by source and outcome.
	Calculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loan_calculations_total",
			Help: "Number of loan calculations by source and status",
		},
		[]string{"source", "status"},
	)

	// CalculationDuration observes how long the calculation pipeline takes.
	CalculationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "loan_calculation_duration_seconds",
			Help:    "Duration of the loan calculation pipeline",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)

	// APRIterations observes the bisection steps used per APR solve.
	APRIterations = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "loan_apr_iterations",
			Help:    "Bisection iterations used to solve the APR",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		},
	)

	// HistoryErrors counts failed history store operations.
	HistoryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loan_history_errors_total",
			Help: "Failed history store operations",
		},
		[]string{"operation"},
	)
)
