package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/auth/login", http.MethodPost, http.StatusOK, 20*time.Millisecond)
	m.RecordRequest("/auth/login", http.MethodPost, http.StatusOK, 30*time.Millisecond)
	m.RecordError("/auth/login", http.MethodPost, "UNAUTHENTICATED")
	m.RecordLogin(LoginFailed)
	m.RecordLogin(LoginSucceeded)
	m.RecordLogin(LoginSucceeded)
	m.RecordRegistration()
	m.RecordApplicant()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requestsTotal.WithLabelValues("/auth/login", http.MethodPost, "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.errorsTotal.WithLabelValues("/auth/login", http.MethodPost, "UNAUTHENTICATED")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.loginsTotal.WithLabelValues(LoginSucceeded)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.loginsTotal.WithLabelValues(LoginFailed)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.registrations))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.applicants))
	assert.Equal(t, 1, testutil.CollectAndCount(m.requestDuration))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", http.MethodGet, http.StatusOK, time.Millisecond)
		m.RecordError("/", http.MethodGet, "INTERNAL_ERROR")
		m.RecordLogin(LoginThrottled)
		m.RecordRegistration()
		m.RecordApplicant()
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.RecordLogin(LoginThrottled)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `admission_auth_logins_total{outcome="throttled"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
