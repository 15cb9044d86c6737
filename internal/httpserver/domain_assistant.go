package httpserver

import (
	"context"

	assistantHTTP "analytics-srv/internal/assistant/delivery/http"
	assistantES "analytics-srv/internal/assistant/repository/elasticsearch"
	assistantUsecase "analytics-srv/internal/assistant/usecase"
	"analytics-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (srv *HTTPServer) setupAssistantDomain(ctx context.Context, r *gin.RouterGroup, mw middleware.Middleware) error {
	repo := assistantES.New(srv.esClient, srv.l, srv.config.Assistant.FeedbackIndex)
	uc := assistantUsecase.New(
		srv.l,
		srv.postUC,
		srv.promptGenerator("assistant", assistantUsecase.ValidReply),
		repo,
		assistantUsecase.Config{
			MaxSize:    srv.config.Assistant.MaxSize,
			SampleHits: srv.config.Assistant.SampleHits,
			Location:   srv.config.Location(),
		},
	)

	handler := assistantHTTP.New(srv.l, uc, srv.discord)
	handler.RegisterRoutes(r, mw)

	srv.l.Infof(ctx, "Assistant domain registered")
	return nil
}
