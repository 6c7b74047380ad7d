package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"mongo-keeper/services"
)

/**
 * HTTP request accounting middleware
 * @description
 * - Counts requests handled by the daemon API, by route and status code
 * - Records request handling time
 */
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		services.RecordHTTPRequest(path, c.Writer.Status(), time.Since(start).Seconds())
	}
}
