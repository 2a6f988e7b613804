package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rsydfhmy03/SEA-Catering/internal/metrics"
)

// unmatchedRoute labels requests that hit no route, keeping raw paths out of label values.
const unmatchedRoute = "unmatched"

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = unmatchedRoute
		}

		metrics.RecordHTTPRequest(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}
