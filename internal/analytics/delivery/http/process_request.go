package http

import (
	"io"

	"github.com/gin-gonic/gin"
)

// bind decodes the JSON body into req. An empty body means "all defaults".
func bind[T any](c *gin.Context) (T, error) {
	var req T
	if c.Request.ContentLength == 0 {
		return req, nil
	}
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		return req, err
	}
	return req, nil
}
