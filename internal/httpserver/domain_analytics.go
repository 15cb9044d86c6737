package httpserver

import (
	"context"

	analyticsHTTP "analytics-srv/internal/analytics/delivery/http"
	analyticsUsecase "analytics-srv/internal/analytics/usecase"
	"analytics-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (srv *HTTPServer) setupAnalyticsDomain(ctx context.Context, r *gin.RouterGroup, mw middleware.Middleware) error {
	uc := analyticsUsecase.New(srv.l, srv.postUC, srv.cacheUC, srv.compiler, analyticsUsecase.Config{
		DefaultTTL: srv.config.Cache.DefaultTTL,
		ShortTTL:   srv.config.Cache.ShortTTL,
		Location:   srv.config.Location(),
	})

	handler := analyticsHTTP.New(srv.l, uc, srv.discord)
	handler.RegisterRoutes(r, mw)

	srv.l.Infof(ctx, "Analytics domain registered")
	return nil
}
