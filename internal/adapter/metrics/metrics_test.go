package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/niksmo/storefront/pkg/retry"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeSuccess, Outcome(nil))
	assert.Equal(t, OutcomeAborted, Outcome(errors.New("boom")))

	exhausted := fmt.Errorf("op: %w",
		&retry.ExhaustedError{Attempts: 3, Err: errors.New("boom")})
	assert.Equal(t, OutcomeExhausted, Outcome(exhausted))
}

func TestRetryObserver(t *testing.T) {
	const op = "test.RetryObserver"
	var o RetryObserver

	o.ObserveRetry(op)
	o.ObserveRetry(op)
	o.ObserveResult(op, nil)

	assert.Equal(t, 2.0,
		testutil.ToFloat64(DBRetryAttempts.WithLabelValues(op, OutcomeRetry)))
	assert.Equal(t, 1.0,
		testutil.ToFloat64(DBRetryAttempts.WithLabelValues(op, OutcomeSuccess)))
}

func TestHandler(t *testing.T) {
	ObserveHTTP(http.MethodGet, "GET /v1/test", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_http_requests_total")
}
