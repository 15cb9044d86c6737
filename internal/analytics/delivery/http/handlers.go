package http

import (
	"context"

	"analytics-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// serve runs one analytics endpoint: bind, convert, call, present.
func serve[Req any, In any, Out any, Resp any](
	h *handler,
	c *gin.Context,
	name string,
	toInput func(Req) In,
	call func(context.Context, In) (Out, error),
	present func(Out) Resp,
) {
	ctx := c.Request.Context()

	// 1. Process request
	req, err := bind[Req](c)
	if err != nil {
		h.l.Warnf(ctx, "analytics.delivery.http.%s: bind failed: %v", name, err)
		response.BadRequest(c, err)
		return
	}

	// 2. Convert to UseCase input
	input := toInput(req)

	// 3. Call UseCase
	output, err := call(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "analytics.delivery.http.%s: usecase failed: %v", name, err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	// 4. Return response
	response.OK(c, present(output))
}

// KeywordTrends - Daily mentions, reach and sentiment
// @Router /api/v1/keyword-trends [post]
func (h *handler) KeywordTrends(c *gin.Context) {
	serve(h, c, "KeywordTrends", filterReq.toInput, h.uc.KeywordTrends, h.newTrendsResp)
}

// ContextOfDiscussion - Significant words of the matching posts
// @Router /api/v1/context-of-discussion [post]
func (h *handler) ContextOfDiscussion(c *gin.Context) {
	serve(h, c, "ContextOfDiscussion", filterReq.toInput, h.uc.ContextOfDiscussion, h.newContextResp)
}

// ListOfMentions - Paginated matching posts
// @Router /api/v1/list-of-mentions [post]
func (h *handler) ListOfMentions(c *gin.Context) {
	serve(h, c, "ListOfMentions", mentionsReq.toInput, h.uc.ListOfMentions, h.newMentionsResp)
}

// AnalysisOverview - Headline metrics against the previous period
// @Router /api/v1/analysis-overview [post]
func (h *handler) AnalysisOverview(c *gin.Context) {
	serve(h, c, "AnalysisOverview", filterReq.toInput, h.uc.AnalysisOverview, h.newOverviewResp)
}

// MentionSentimentBreakdown - Sentiment per channel
// @Router /api/v1/mention-sentiment-breakdown [post]
func (h *handler) MentionSentimentBreakdown(c *gin.Context) {
	serve(h, c, "MentionSentimentBreakdown", filterReq.toInput, h.uc.MentionSentimentBreakdown, h.newBreakdownResp)
}

// PresenceScore - Mean influence over time
// @Router /api/v1/presence-score [post]
func (h *handler) PresenceScore(c *gin.Context) {
	serve(h, c, "PresenceScore", presenceReq.toInput, h.uc.PresenceScore, h.newPresenceResp)
}

// ShareOfVoice - Accounts ranked by mentions
// @Router /api/v1/most-share-of-voice [post]
func (h *handler) ShareOfVoice(c *gin.Context) {
	serve(h, c, "ShareOfVoice", usersReq.toInput, h.uc.ShareOfVoice, h.newUsersResp)
}

// MostFollowers - Accounts ranked by followers
// @Router /api/v1/most-followers [post]
func (h *handler) MostFollowers(c *gin.Context) {
	serve(h, c, "MostFollowers", usersReq.toInput, h.uc.MostFollowers, h.newUsersResp)
}

// TrendingHashtags - Hashtags with sentiment
// @Router /api/v1/trending-hashtags [post]
func (h *handler) TrendingHashtags(c *gin.Context) {
	serve(h, c, "TrendingHashtags", hashtagsReq.toInput, h.uc.TrendingHashtags, h.newHashtagsResp)
}

// TrendingLinks - Most shared links
// @Router /api/v1/trending-links [post]
func (h *handler) TrendingLinks(c *gin.Context) {
	serve(h, c, "TrendingLinks", filterReq.toInput, h.uc.TrendingLinks, h.newLinksResp)
}

// PopularEmojis - Most used emojis
// @Router /api/v1/popular-emojis [post]
func (h *handler) PopularEmojis(c *gin.Context) {
	serve(h, c, "PopularEmojis", filterReq.toInput, h.uc.PopularEmojis, h.newEmojisResp)
}

// TopicsCluster - Issue clusters with share of voice
// @Router /api/v1/topics-cluster [post]
func (h *handler) TopicsCluster(c *gin.Context) {
	serve(h, c, "TopicsCluster", clustersReq.toInput, h.uc.TopicsCluster, h.newClustersResp)
}
