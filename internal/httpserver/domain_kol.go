package httpserver

import (
	"context"

	kolHTTP "analytics-srv/internal/kol/delivery/http"
	kolUsecase "analytics-srv/internal/kol/usecase"
	"analytics-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (srv *HTTPServer) setupKOLDomain(ctx context.Context, r *gin.RouterGroup, mw middleware.Middleware) error {
	uc := kolUsecase.New(srv.l, srv.postUC, srv.topicUC, srv.cacheUC, srv.compiler, kolUsecase.Config{
		SampleSize: srv.config.Store.KOLSampleSize,
		TTL:        srv.config.Cache.DefaultTTL,
		Location:   srv.config.Location(),
	})

	handler := kolHTTP.New(srv.l, uc, srv.discord)
	handler.RegisterRoutes(r, mw)

	srv.l.Infof(ctx, "KOL domain registered")
	return nil
}
