package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/monitoring"
)

// HandlerMetrics records registry operations issued over HTTP.
type HandlerMetrics struct {
	metrics *monitoring.Metrics
}

// NewHandlerMetrics creates a metrics wrapper
func NewHandlerMetrics(metrics *monitoring.Metrics) *HandlerMetrics {
	return &HandlerMetrics{metrics: metrics}
}

// Track starts timing an operation. The returned func records it with an
// outcome derived from the response status. A nil receiver tracks nothing.
func (hm *HandlerMetrics) Track(c *gin.Context, operation string) func() {
	if hm == nil || hm.metrics == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		hm.metrics.RecordServiceCall("http", operation, outcome(c.Writer.Status()), time.Since(start))
	}
}

func outcome(status int) string {
	switch {
	case status >= http.StatusInternalServerError:
		return "error"
	case status >= http.StatusBadRequest:
		return "failure"
	default:
		return "success"
	}
}
