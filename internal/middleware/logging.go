package middleware

import (
	"time"

	"shopstack-products/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LoggingMiddleware tags every request with an id and logs one line on the
// way out, including the cache flags the services set.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		source := "-"
		if v, exists := c.Get("data_source"); exists {
			source = v.(string)
		}
		if hit, exists := c.Get("cache_hit"); exists && hit.(bool) {
			source = "REDIS"
		}
		logger.GlobalLogger.Printf("%s %s %d %v request_id=%s source=%s", method, path, status, latency, requestID, source)
	}
}
