// Package metrics exposes the agent's prometheus instruments, served from
// the health listener at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ActiveCalls = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "reception_active_calls",
		Help: "Number of calls currently registered.",
	})

	CallsHandled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reception_calls_handled_total",
		Help: "Completed call sessions by outcome.",
	}, []string{"outcome"}) // ok | error

	TranscriptTurns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reception_transcript_turns_total",
		Help: "Transcript turns drained to the log file by role.",
	}, []string{"role"})

	PublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reception_publish_failures_total",
		Help: "Best-effort event publish failures by destination.",
	}, []string{"destination"}) // redis | kafka | archive | gcs
)
