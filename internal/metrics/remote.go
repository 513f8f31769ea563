package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes recorded for remote spreadsheet calls.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeCanceled = "canceled"
	OutcomeRejected = "rejected"
)

var (
	remoteCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sheets",
			Name:      "calls_total",
			Help:      "Remote spreadsheet API calls by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)

	remoteCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sheets",
			Name:      "call_duration_seconds",
			Help:      "Remote spreadsheet API call latency.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2, 5, 10},
		},
		[]string{"op"},
	)

	breakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0 closed, 1 open, 2 half-open).",
		},
		[]string{"breaker"},
	)

	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Change notifications delivered to subscribers by outcome.",
		},
		[]string{"topic", "outcome"},
	)
)

// ObserveRemoteCall records one remote spreadsheet call. rejected marks calls
// short-circuited by an open breaker; they are counted but not timed.
func ObserveRemoteCall(op string, err error, rejected bool, d time.Duration) {
	outcome := OutcomeOK
	switch {
	case rejected:
		outcome = OutcomeRejected
	case errors.Is(err, context.Canceled):
		outcome = OutcomeCanceled
	case err != nil:
		outcome = OutcomeError
	}
	remoteCallsTotal.WithLabelValues(op, outcome).Inc()
	if !rejected {
		remoteCallDuration.WithLabelValues(op).Observe(d.Seconds())
	}
}

// SetBreakerState publishes a breaker's numeric state.
func SetBreakerState(name string, state int) {
	breakerState.WithLabelValues(name).Set(float64(state))
}

// ObserveNotification records a change notification delivery.
func ObserveNotification(topic string, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	notificationsTotal.WithLabelValues(topic, outcome).Inc()
}
