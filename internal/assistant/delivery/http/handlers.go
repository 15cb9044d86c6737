package http

import (
	"io"

	"analytics-srv/internal/observability"
	"analytics-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// Ask - Stream the assistant's progress and answer as server-sent events
// @Router /api/v1/moskal-ai [get]
func (h *handler) Ask(c *gin.Context) {
	ctx := c.Request.Context()

	// 1. Process request
	req, err := h.processAskRequest(c)
	if err != nil {
		h.l.Warnf(ctx, "assistant.delivery.http.Ask: bind failed: %v", err)
		response.BadRequest(c, err)
		return
	}

	// 2. Call UseCase
	events, err := h.uc.Ask(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "assistant.delivery.http.Ask: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	// 3. Stream
	observability.SSEStreams.Inc()
	defer observability.SSEStreams.Dec()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		ev, ok := <-events
		if !ok {
			return false
		}
		c.SSEvent("message", ev)
		return true
	})
}

// Feedback - Store a user's rating of an answer
// @Router /api/v1/ai-feedback [post]
func (h *handler) Feedback(c *gin.Context) {
	ctx := c.Request.Context()

	// 1. Process request
	req, err := h.processFeedbackRequest(c)
	if err != nil {
		h.l.Warnf(ctx, "assistant.delivery.http.Feedback: bind failed: %v", err)
		response.BadRequest(c, err)
		return
	}

	// 2. Call UseCase
	output, err := h.uc.SaveFeedback(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "assistant.delivery.http.Feedback: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	// 3. Response
	response.OK(c, h.newFeedbackResp(output))
}
