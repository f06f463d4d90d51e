package monitoring

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndependentRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.RecordVFSMutation("write", "success")

	assert.Equal(t, 1.0, testutil.ToFloat64(a.VFSMutations.WithLabelValues("write", "success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.VFSMutations.WithLabelValues("write", "success")))
}

func TestSnapshot(t *testing.T) {
	m := NewMetrics()

	m.RecordHTTPRequest("GET", "/health", "200", 10*time.Millisecond, 12)
	m.RecordHTTPRequest("POST", "/services/execute", "500", 30*time.Millisecond, 40)
	m.RecordCommand("ls", "success")
	m.RecordVFSMutation("mkdir", "success")
	m.RecordVFSMutation("mkdir", "error")
	m.SetSessionsActive(3)
	m.IncWSConnections()
	m.IncWSConnections()
	m.DecWSConnections()

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.TotalRequests)
	assert.Equal(t, int64(1), snap.TotalErrors)
	assert.InDelta(t, 0.02, snap.AvgLatencySeconds, 1e-9)
	assert.Equal(t, int64(1), snap.CommandsExecuted)
	assert.Equal(t, int64(1), snap.FilesystemChanges)
	assert.Equal(t, int64(3), snap.ActiveSessions)
	assert.Equal(t, int64(1), snap.ActiveConnections)
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/files/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/files/"+id, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/files/:id", "200")))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "webdesk_http_requests_total"))
	assert.True(t, strings.Contains(body, "webdesk_uptime_seconds"))
}
