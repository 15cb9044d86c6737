package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"analytics-srv/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newEngine(mw Middleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(log.NewNop(), nil), mw.CORS(), mw.RequestLog())
	g := r.Group("/api", mw.InternalAuth())
	g.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	g.GET("/boom", func(*gin.Context) { panic("boom") })
	return r
}

func TestInternalAuth(t *testing.T) {
	r := newEngine(New(log.NewNop(), "secret", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ok", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/ok", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(headerRequestID))
}

func TestInternalAuthDisabledWithoutKey(t *testing.T) {
	r := newEngine(New(log.NewNop(), "", nil))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecoveryHidesPanic(t *testing.T) {
	r := newEngine(New(log.NewNop(), "", nil))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestCORS(t *testing.T) {
	r := newEngine(New(log.NewNop(), "", []string{"https://app.example.com"}))

	req := httptest.NewRequest(http.MethodOptions, "/api/ok", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/ok", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
