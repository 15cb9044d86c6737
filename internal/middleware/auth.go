package middleware

import (
	"crypto/subtle"
	"strings"

	"analytics-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// InternalAuth checks the shared key in the Authorization header ("Bearer <key>"
// or the bare key). It is a no-op when no key is configured.
func (m Middleware) InternalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.internalKey == "" {
			c.Next()
			return
		}

		key := strings.TrimSpace(c.GetHeader("Authorization"))
		key = strings.TrimSpace(strings.TrimPrefix(key, "Bearer "))
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(m.internalKey)) != 1 {
			m.l.Warnf(c.Request.Context(), "middleware.InternalAuth: rejected %s %s", c.Request.Method, c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
