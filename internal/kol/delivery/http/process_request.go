package http

import "github.com/gin-gonic/gin"

func (h *handler) processOverviewRequest(c *gin.Context) (overviewReq, error) {
	var req overviewReq
	if c.Request.ContentLength == 0 {
		return req, nil
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}
