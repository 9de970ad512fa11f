// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProviderCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raw2ready_provider_calls_total",
			Help: "Total number of outbound provider calls by outcome",
		},
		[]string{"provider", "outcome"},
	)

	ProviderCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "raw2ready_provider_call_duration_seconds",
			Help:    "Duration of provider generations, including polling",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"provider"},
	)

	TaskPolls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raw2ready_task_polls_total",
			Help: "Total number of async task status queries",
		},
		[]string{"provider", "status"},
	)
)

// Outcome labels for ProviderCalls.
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
)
