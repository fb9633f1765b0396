package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio-backend/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m := metrics.New()

	m.ObserveSubmission(metrics.ResultSent)
	m.ObserveSubmission(metrics.ResultSent)
	m.ObserveSubmission(metrics.ResultInvalid)
	m.ObserveRateLimited()
	m.ObserveGateway("relay", false)
	m.ObserveDelivery(300 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Submissions.WithLabelValues(metrics.ResultSent)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues(metrics.ResultInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimited))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GatewaySubmits.WithLabelValues("relay", "failure")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveSubmission(metrics.ResultSent)
		m.ObserveDelivery(time.Second)
		m.ObserveRateLimited()
		m.ObserveGateway("direct", true)
	})
}

func TestHandler(t *testing.T) {
	m := metrics.New()
	m.ObserveSubmission(metrics.ResultFailed)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `contact_submissions_total{result="failed"} 1`)
}
