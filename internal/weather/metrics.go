package weather

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	gobreaker "github.com/sony/gobreaker/v2"
)

var (
	// RequestsTotal counts lookups by outcome: success, failure, rejected.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bnin_weather_requests_total",
			Help: "Weather lookups by outcome",
		},
		[]string{"outcome"},
	)

	RequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bnin_weather_request_duration_seconds",
			Help:    "Weather lookup latency including retries",
			Buckets: prometheus.DefBuckets,
		},
	)

	// CircuitBreakerState is 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bnin_weather_circuit_breaker_state",
			Help: "Weather API circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bnin_weather_circuit_breaker_transitions_total",
			Help: "Weather API circuit breaker state transitions",
		},
		[]string{"from", "to"},
	)
)

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
