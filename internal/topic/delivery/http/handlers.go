package http

import (
	"analytics-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// Topics - Topic clusters of a project with statistics
// @Summary Topic clusters
// @Description Groups the raw issues of the window into named topics, generating them on first use
// @Tags Topics
// @Accept json
// @Produce json
// @Param body body topicsReq true "Filter and project"
// @Success 200 {object} topicsResp
// @Failure 400 {object} response.Resp
// @Failure 503 {object} response.Resp
// @Router /api/v1/topics [post]
func (h *handler) Topics(c *gin.Context) {
	ctx := c.Request.Context()

	// 1. Process request
	req, err := h.processTopicsRequest(c)
	if err != nil {
		h.l.Warnf(ctx, "topic.delivery.http.Topics: processTopicsRequest failed: %v", err)
		response.BadRequest(c, err)
		return
	}

	// 2. Convert to UseCase input
	input := req.toInput()

	// 3. Call UseCase
	output, err := h.uc.Clusters(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "topic.delivery.http.Topics: usecase Clusters failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	// 4. Return response
	response.OK(c, h.newTopicsResp(output))
}
