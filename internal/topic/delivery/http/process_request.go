package http

import "github.com/gin-gonic/gin"

func (h *handler) processTopicsRequest(c *gin.Context) (topicsReq, error) {
	var req topicsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}
