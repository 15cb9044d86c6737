package middleware

import (
	"context"
	"strconv"
	"time"

	"analytics-srv/internal/observability"
	"analytics-srv/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const headerRequestID = "X-Request-ID"

// RequestLog tags the request with an id and records method, path, status and latency.
func (m Middleware) RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(headerRequestID, id)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), log.RequestIDKey, id))

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		latency := time.Since(start)

		observability.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		observability.HTTPLatency.WithLabelValues(route).Observe(latency.Seconds())
		m.l.Infof(c.Request.Context(), "%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, latency)
	}
}
