package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/niksmo/storefront/pkg/retry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess   = "success"
	OutcomeRetry     = "retry"
	OutcomeAborted   = "aborted"
	OutcomeExhausted = "exhausted"
)

var (
	// DBRetryAttempts counts database attempts by repository op and outcome.
	DBRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_db_retry_attempts_total",
			Help: "Database call attempts made through the retry wrapper",
		},
		[]string{"op", "outcome"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "pattern", "code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "pattern"},
	)
)

// RetryObserver records retry wrapper activity into DBRetryAttempts.
type RetryObserver struct{}

func (RetryObserver) ObserveRetry(op string) {
	DBRetryAttempts.WithLabelValues(op, OutcomeRetry).Inc()
}

func (RetryObserver) ObserveResult(op string, err error) {
	DBRetryAttempts.WithLabelValues(op, Outcome(err)).Inc()
}

// Outcome classifies the final error of a wrapped call.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, retry.ErrRetriesExhausted):
		return OutcomeExhausted
	default:
		return OutcomeAborted
	}
}

func ObserveHTTP(method, pattern string, code int, elapsed time.Duration) {
	if pattern == "" {
		pattern = "unmatched"
	}
	HTTPRequests.WithLabelValues(method, pattern, strconv.Itoa(code)).Inc()
	HTTPRequestDuration.WithLabelValues(method, pattern).Observe(elapsed.Seconds())
}

func Handler() http.Handler {
	return promhttp.Handler()
}
