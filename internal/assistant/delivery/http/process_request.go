package http

import "github.com/gin-gonic/gin"

func (h *handler) processAskRequest(c *gin.Context) (askReq, error) {
	var req askReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	return req, nil
}

func (h *handler) processFeedbackRequest(c *gin.Context) (feedbackReq, error) {
	var req feedbackReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}
