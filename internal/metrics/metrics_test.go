package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveRequest("articles", "ok", 200, 10*time.Millisecond)
	c.ObserveRequest("articles", "ok", 200, 20*time.Millisecond)
	c.ObserveRequest("articles", "network", 0, time.Second)

	require.Equal(t, 2.0, testutil.ToFloat64(c.requests.WithLabelValues("articles", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("articles", "network")))
	require.Equal(t, 2.0, testutil.ToFloat64(c.statuses.WithLabelValues("200")))
	require.Equal(t, 1, testutil.CollectAndCount(c.statuses))
	require.Equal(t, 1, testutil.CollectAndCount(c.latency))
}

func TestRecordSkipped(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordSkipped("keyword_trends")

	require.Equal(t, 1.0, testutil.ToFloat64(c.skipped.WithLabelValues("keyword_trends")))
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.ObserveRequest("analytics", "server", 500, time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, req)

	resp := w.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	require.True(t, strings.Contains(string(body), `newsdesk_api_requests_total{endpoint="analytics",outcome="server"} 1`))
}

func TestNopAcceptsCalls(t *testing.T) {
	r := Nop()
	r.ObserveRequest("x", "ok", 200, 0)
	r.RecordSkipped("x")
}
