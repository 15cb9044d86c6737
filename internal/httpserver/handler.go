package httpserver

import (
	"context"

	"analytics-srv/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (srv *HTTPServer) mapHandlers() error {
	ctx := context.Background()
	mw := middleware.New(srv.l, srv.config.InternalConfig.InternalKey, srv.config.InternalConfig.AllowedOrigins)

	srv.registerMiddlewares(mw)
	srv.registerSystemRoutes()

	if err := srv.setupCoreDomains(ctx); err != nil {
		return err
	}

	r := srv.gin.Group("")
	if err := srv.setupAnalyticsDomain(ctx, r, mw); err != nil {
		return err
	}
	if err := srv.setupTopicDomain(ctx, r, mw); err != nil {
		return err
	}
	if err := srv.setupKOLDomain(ctx, r, mw); err != nil {
		return err
	}
	if err := srv.setupAssistantDomain(ctx, r, mw); err != nil {
		return err
	}

	return nil
}

func (srv *HTTPServer) registerMiddlewares(mw middleware.Middleware) {
	srv.gin.Use(middleware.Recovery(srv.l, srv.discord))
	srv.gin.Use(mw.CORS())
	srv.gin.Use(mw.RequestLog())

	ctx := context.Background()
	if srv.config.InternalConfig.InternalKey == "" {
		srv.l.Warnf(ctx, "Internal key not configured: /api/v1 is open")
	}
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
	srv.gin.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
