package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts counts login attempts by outcome.
	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scribe_auth_attempts_total",
		Help: "Total number of login attempts by outcome",
	}, []string{"outcome"})

	// TokenVerifications counts bearer token checks by outcome.
	TokenVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scribe_token_verifications_total",
		Help: "Total number of bearer token verifications by outcome",
	}, []string{"outcome"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scribe_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// PostsWritten counts post mutations by kind.
	PostsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scribe_posts_written_total",
		Help: "Total number of post mutations by kind",
	}, []string{"kind"})
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
