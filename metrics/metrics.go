// Package metrics exposes prometheus collectors for the session and
// registry packages, grounded on adnanabbasy-ComX-Bridge's pkg/metrics
// (promauto-registered package-level collectors, label-taking increment
// helpers).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CommandLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "soundcore_command_duration_seconds",
		Help:    "Time from issuing a device command to observing its acknowledgement.",
		Buckets: prometheus.DefBuckets,
	}, []string{"model", "command", "outcome"})

	CommandTimeouts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "soundcore_command_timeouts_total",
		Help: "The total number of commands that exhausted their retries without an ack.",
	}, []string{"model", "command"})

	Reconnects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "soundcore_reconnects_total",
		Help: "The total number of times the registry opened a fresh session for a MAC whose previous session had torn down.",
	}, []string{"model"})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "soundcore_active_sessions",
		Help: "The number of sessions currently cached live by the registry.",
	})
)

// Outcome label values for CommandLatency.
const (
	OutcomeSuccess = "success"
	OutcomeTimeout = "timeout"
	OutcomeError   = "error"
)

// ObserveCommand records how long a command took to settle and its outcome.
func ObserveCommand(model, command, outcome string, seconds float64) {
	CommandLatency.WithLabelValues(model, command, outcome).Observe(seconds)
	if outcome == OutcomeTimeout {
		CommandTimeouts.WithLabelValues(model, command).Inc()
	}
}

// IncReconnect records the registry opening a new session for a MAC whose
// cached session had torn down.
func IncReconnect(model string) {
	Reconnects.WithLabelValues(model).Inc()
}
