package http

import (
	"analytics-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// Overview - Key opinion leaders of the filter
// @Summary KOL overview
// @Description Accounts grouped from recent posts: negative drivers and the most influential
// @Tags KOL
// @Accept json
// @Produce json
// @Param body body overviewReq true "Filter, owner and project"
// @Success 200 {object} overviewResp
// @Failure 400 {object} response.Resp
// @Failure 503 {object} response.Resp
// @Router /api/v1/kol-overview [post]
func (h *handler) Overview(c *gin.Context) {
	ctx := c.Request.Context()

	// 1. Process request
	req, err := h.processOverviewRequest(c)
	if err != nil {
		h.l.Warnf(ctx, "kol.delivery.http.Overview: processOverviewRequest failed: %v", err)
		response.BadRequest(c, err)
		return
	}

	// 2. Convert to UseCase input
	input := req.toInput()

	// 3. Call UseCase
	output, err := h.uc.Overview(ctx, input)
	if err != nil {
		h.l.Errorf(ctx, "kol.delivery.http.Overview: usecase Overview failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	// 4. Return response
	response.OK(c, h.newOverviewResp(output))
}
