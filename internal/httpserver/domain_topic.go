package httpserver

import (
	"context"

	"analytics-srv/internal/middleware"
	topicHTTP "analytics-srv/internal/topic/delivery/http"

	"github.com/gin-gonic/gin"
)

func (srv *HTTPServer) setupTopicDomain(ctx context.Context, r *gin.RouterGroup, mw middleware.Middleware) error {
	handler := topicHTTP.New(srv.l, srv.topicUC, srv.discord)
	handler.RegisterRoutes(r, mw)

	srv.l.Infof(ctx, "Topic domain registered (absorb mode %s)", srv.config.Topics.AbsorbMode)
	return nil
}
