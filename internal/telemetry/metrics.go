package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pollquiz"

var (
	APIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Messaging platform calls by method and outcome, one per attempt.",
	}, []string{"method", "outcome"})

	APIRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_retries_total",
		Help:      "Messaging platform retries by method and reason.",
	}, []string{"method", "reason"})

	Answers = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "answers_total",
		Help:      "Resolved poll expectations by outcome.",
	}, []string{"outcome"})

	PollCycleSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "poll_cycle_seconds",
		Help:      "Time from arming a question cycle until it resolves.",
		Buckets:   []float64{1, 5, 10, 20, 30, 60, 120, 200},
	})
)

// RecordRetry counts a platform retry. It matches the retry package's OnRetry hook.
func RecordRetry(method, reason string, _ error) {
	APIRetries.WithLabelValues(method, reason).Inc()
}
