package metrics

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

func TestObserve_CountsByLabels(t *testing.T) {
	m := New("petreg")

	m.Observe("/pets/{petID}", http.MethodGet, 200, 10*time.Millisecond)
	m.Observe("/pets/{petID}", http.MethodGet, 200, 20*time.Millisecond)
	m.Observe("/pets/{petID}", http.MethodGet, 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/pets/{petID}", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/pets/{petID}", "GET", "404")))
}

func TestHandler_Exposes(t *testing.T) {
	m := New("petreg")
	m.Observe("/health", http.MethodGet, 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "petreg_http_requests_total")
}
