// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "thumb_studio"

// Generation outcomes.
const (
	OutcomeSuccess      = "success"
	OutcomeFailure      = "failure"
	OutcomeFault        = "fault"
	OutcomeInsufficient = "insufficient_tokens"
	OutcomeBusy         = "in_progress"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "editor",
			Name:      "generations_total",
			Help:      "Generation attempts by outcome",
		},
		[]string{"outcome"},
	)

	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "editor",
			Name:      "generation_duration_seconds",
			Help:      "Time spent waiting on the generation client",
			Buckets:   []float64{.1, .5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	TokensSpent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "editor",
			Name:      "tokens_spent_total",
			Help:      "Tokens deducted by reason",
		},
		[]string{"reason"},
	)

	PersistErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "persist",
			Name:      "errors_total",
			Help:      "Failed persistence operations",
		},
		[]string{"op"},
	)

	LiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "live",
			Help:      "Editor sessions currently held in memory",
		},
	)
)
