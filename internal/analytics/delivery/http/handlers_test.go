package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"analytics-srv/internal/analytics"
	"analytics-srv/internal/middleware"
	"analytics-srv/internal/model"
	"analytics-srv/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type fakeUseCase struct {
	analytics.UseCase
	trendsIn analytics.FilterInput
	err      error
}

func (f *fakeUseCase) KeywordTrends(_ context.Context, in analytics.FilterInput) (analytics.TrendsOutput, error) {
	f.trendsIn = in
	if f.err != nil {
		return analytics.TrendsOutput{}, f.err
	}
	return analytics.TrendsOutput{
		Series:        []analytics.TrendPoint{{Date: "2024-01-01", Mentions: 3, Reach: 4.5}},
		TotalMentions: 3,
		TotalReach:    4.5,
	}, nil
}

func newRouter(uc analytics.UseCase, key string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	l := log.NewNop()
	r := gin.New()
	New(l, uc, nil).RegisterRoutes(r.Group(""), middleware.New(l, key, nil))
	return r
}

func do(r *gin.Engine, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestKeywordTrends(t *testing.T) {
	uc := &fakeUseCase{}
	r := newRouter(uc, "")

	w := do(r, "/api/v1/keyword-trends", `{"keywords":"prabowo","channels":["tiktok"]}`, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"prabowo"}, []string(uc.trendsIn.Filter.Keywords))
	assert.Equal(t, []string{"tiktok"}, []string(uc.trendsIn.Filter.Channels))
	body := gjson.Parse(w.Body.String())
	assert.Equal(t, int64(3), body.Get("data.total_mentions").Int())
	assert.Equal(t, "2024-01-01", body.Get("data.series.0.date").String())
}

func TestEmptyBodyUsesDefaults(t *testing.T) {
	uc := &fakeUseCase{}
	r := newRouter(uc, "")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/keyword-trends", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMalformedBody(t *testing.T) {
	r := newRouter(&fakeUseCase{}, "")
	w := do(r, "/api/v1/keyword-trends", `{"keywords":`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorMapping(t *testing.T) {
	tcs := map[string]struct {
		err    error
		status int
		msg    string
	}{
		"invalid filter": {
			err:    fmt.Errorf("%w: %w", analytics.ErrInvalidFilter, &model.FilterError{Field: "sentiment", Reason: "unknown value"}),
			status: http.StatusBadRequest,
			msg:    "sentiment",
		},
		"store down": {
			err:    analytics.ErrStoreUnavailable,
			status: http.StatusServiceUnavailable,
		},
		"query failed": {
			err:    analytics.ErrQueryFailed,
			status: http.StatusBadGateway,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			r := newRouter(&fakeUseCase{err: tc.err}, "")
			w := do(r, "/api/v1/keyword-trends", `{}`, nil)
			assert.Equal(t, tc.status, w.Code)
			if tc.msg != "" {
				assert.Contains(t, gjson.Get(w.Body.String(), "message").String(), tc.msg)
			}
		})
	}
}

func TestInternalAuth(t *testing.T) {
	r := newRouter(&fakeUseCase{}, "secret")

	w := do(r, "/api/v1/keyword-trends", `{}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "/api/v1/keyword-trends", `{}`, map[string]string{"Authorization": "Bearer secret"})
	assert.Equal(t, http.StatusOK, w.Code)
}
