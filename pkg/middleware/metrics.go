package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/palletflow/dispatch-service/pkg/metrics"
)

// MetricsMiddleware creates middleware that records HTTP metrics
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip metrics endpoint to avoid recursion
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		start := time.Now()

		c.Next()

		duration := time.Since(start)
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method
		path := c.FullPath() // route pattern, not actual path
		if path == "" {
			path = c.Request.URL.Path
		}

		m.ObserveHTTPRequest(method, path, status, duration)
	}
}

// BusinessMetrics provides helpers for recording business-specific metrics
type BusinessMetrics struct {
	metrics *metrics.Metrics
}

// NewBusinessMetrics creates a new BusinessMetrics helper
func NewBusinessMetrics(m *metrics.Metrics) *BusinessMetrics {
	return &BusinessMetrics{metrics: m}
}

// RecordTaskCreated records a task creation event
func (b *BusinessMetrics) RecordTaskCreated(taskType string) {
	b.metrics.TasksCreatedTotal.WithLabelValues(taskType).Inc()
}

// RecordTaskCompleted records a task completion event
func (b *BusinessMetrics) RecordTaskCompleted() {
	b.metrics.TasksCompletedTotal.Inc()
}

// RecordTaskDeleted records a task deletion event
func (b *BusinessMetrics) RecordTaskDeleted() {
	b.metrics.TasksDeletedTotal.Inc()
}

// RecordPalletsReserved records pallets reserved on a truck
func (b *BusinessMetrics) RecordPalletsReserved(count int) {
	b.metrics.PalletsReservedTotal.Add(float64(count))
}

// RecordBatchesReleased records batches released from a truck
func (b *BusinessMetrics) RecordBatchesReleased(count int) {
	b.metrics.BatchesReleasedTotal.Add(float64(count))
}
