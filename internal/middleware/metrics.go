package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fire_tracker/internal/observability"
)

// Metrics records request counts and latency keyed by the matched route
// pattern, so ids in paths do not explode label cardinality.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
