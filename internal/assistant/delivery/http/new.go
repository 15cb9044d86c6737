package http

import (
	"analytics-srv/internal/assistant"
	"analytics-srv/internal/middleware"
	"analytics-srv/pkg/discord"
	"analytics-srv/pkg/log"

	"github.com/gin-gonic/gin"
)

// Handler registers the assistant stream and feedback endpoints.
type Handler interface {
	RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware)
}

type handler struct {
	l       log.Logger
	uc      assistant.UseCase
	discord discord.IDiscord
}

// New - Factory
func New(l log.Logger, uc assistant.UseCase, discord discord.IDiscord) Handler {
	return &handler{l: l, uc: uc, discord: discord}
}
