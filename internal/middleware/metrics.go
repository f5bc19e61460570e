package middleware

import (
	"strconv"
	"time"

	"shopstack-products/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records HTTP request counts and latencies. Cache hit and
// miss counters are incremented by the services, not here.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
	}
}
