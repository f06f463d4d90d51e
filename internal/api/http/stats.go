package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/monitoring"
)

// MetricsSnapshot combines request metrics and registry statistics
type MetricsSnapshot struct {
	Timestamp time.Time              `json:"timestamp"`
	Backend   monitoring.Snapshot    `json:"backend"`
	Services  map[string]interface{} `json:"services"`
	Summary   MetricsSummary         `json:"summary"`
}

// MetricsSummary provides high-level metrics
type MetricsSummary struct {
	TotalRequests     int64   `json:"total_requests"`
	AverageLatencyMs  float64 `json:"average_latency_ms"`
	ErrorRate         float64 `json:"error_rate"`
	ActiveConnections int64   `json:"active_connections"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
}

// Stats returns the JSON metrics snapshot
func (h *Handlers) Stats(c *gin.Context) {
	snapshot := MetricsSnapshot{
		Timestamp: time.Now(),
		Services:  h.registry.Stats(),
	}
	if h.metrics != nil && h.metrics.metrics != nil {
		snapshot.Backend = h.metrics.metrics.Snapshot()
		snapshot.Summary = summarize(snapshot.Backend)
	}
	c.JSON(http.StatusOK, snapshot)
}

func summarize(s monitoring.Snapshot) MetricsSummary {
	summary := MetricsSummary{
		TotalRequests:     s.TotalRequests,
		AverageLatencyMs:  s.AvgLatencySeconds * 1000,
		ActiveConnections: s.ActiveConnections,
		UptimeSeconds:     s.UptimeSeconds,
	}
	if s.TotalRequests > 0 {
		summary.ErrorRate = float64(s.TotalErrors) / float64(s.TotalRequests)
	}
	return summary
}
