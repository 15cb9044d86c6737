package http

import (
	"analytics-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	api := r.Group("/api/v1")
	api.Use(mw.InternalAuth())
	{
		api.GET("/moskal-ai", h.Ask)
		api.POST("/ai-feedback", h.Feedback)
	}
}
