package http

import (
	"analytics-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	api := r.Group("/api/v1")
	api.Use(mw.InternalAuth())
	{
		api.POST("/keyword-trends", h.KeywordTrends)
		api.POST("/context-of-discussion", h.ContextOfDiscussion)
		api.POST("/list-of-mentions", h.ListOfMentions)
		api.POST("/analysis-overview", h.AnalysisOverview)
		api.POST("/mention-sentiment-breakdown", h.MentionSentimentBreakdown)
		api.POST("/presence-score", h.PresenceScore)
		api.POST("/most-share-of-voice", h.ShareOfVoice)
		api.POST("/most-followers", h.MostFollowers)
		api.POST("/trending-hashtags", h.TrendingHashtags)
		api.POST("/trending-links", h.TrendingLinks)
		api.POST("/popular-emojis", h.PopularEmojis)
		api.POST("/topics-cluster", h.TopicsCluster)
	}
}
