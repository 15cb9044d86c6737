package httpserver

import (
	"net/http"

	"analytics-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// Health response constants (single source for version and service identity).
const (
	HealthMessage = "Social media analytics API"
	HealthVersion = "1.0.0"
	ServiceName   = "analytics-srv"
)

// healthCheck handles health check requests
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "healthy",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// readyCheck handles readiness check requests (Elasticsearch + Redis).
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	ctx := c.Request.Context()
	if err := srv.esClient.Ping(ctx); err != nil {
		srv.l.Warnf(ctx, "httpserver.readyCheck: elasticsearch: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "not ready",
			"message": "Elasticsearch connection failed",
		})
		return
	}
	if err := srv.redisClient.Ping(ctx); err != nil {
		srv.l.Warnf(ctx, "httpserver.readyCheck: redis: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "not ready",
			"message": "Redis connection failed",
		})
		return
	}
	response.OK(c, gin.H{
		"status":        "ready",
		"message":       HealthMessage,
		"version":       HealthVersion,
		"service":       ServiceName,
		"elasticsearch": "connected",
		"redis":         "connected",
	})
}

// liveCheck handles liveness check requests
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}
