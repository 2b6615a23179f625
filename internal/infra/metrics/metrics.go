// Package metrics provides Prometheus metrics for Quench: counters and
// histograms for the journal and the gamification engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Journal ────────────────────────────────────────────────────────────────

// ActivityLogged counts logged activity records.
var ActivityLogged = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "quench",
	Name:      "activity_logged_total",
	Help:      "Total activity records logged.",
})

// ─── Scoring Engine ─────────────────────────────────────────────────────────

// Recomputes counts successful gamification recomputes.
var Recomputes = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "quench",
	Name:      "recomputes_total",
	Help:      "Total successful gamification recomputes.",
})

// RecomputeFailures counts aborted recomputes.
var RecomputeFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "quench",
	Name:      "recompute_failures_total",
	Help:      "Total recomputes aborted by an error.",
})

// RecomputeDuration tracks recompute latency in seconds.
var RecomputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "quench",
	Name:      "recompute_duration_seconds",
	Help:      "Full recompute duration in seconds.",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
})

// LevelUps counts levels gained across all users.
var LevelUps = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "quench",
	Name:      "level_ups_total",
	Help:      "Total levels gained.",
})

// BadgesAwarded counts badge awards by badge type.
var BadgesAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "quench",
	Name:      "badges_awarded_total",
	Help:      "Total badges awarded.",
}, []string{"type"})
