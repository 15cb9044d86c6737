package http

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"analytics-srv/internal/assistant"
	"analytics-srv/internal/middleware"
	"analytics-srv/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type fakeUseCase struct {
	askIn assistant.AskInput
	fbIn  assistant.FeedbackInput
	fbErr error
}

func (f *fakeUseCase) Ask(_ context.Context, in assistant.AskInput) (<-chan assistant.Event, error) {
	if strings.TrimSpace(in.Query) == "" {
		return nil, assistant.ErrQueryRequired
	}
	f.askIn = in
	ch := make(chan assistant.Event, 2)
	ch <- assistant.Event{Step: assistant.StepInit, Message: "Starting analysis"}
	ch <- assistant.Event{Step: assistant.StepCompleted, Progress: 100, Data: map[string]any{
		"final_response": map[string]any{"data_source": assistant.DataSource},
	}}
	close(ch)
	return ch, nil
}

func (f *fakeUseCase) SaveFeedback(_ context.Context, in assistant.FeedbackInput) (assistant.FeedbackOutput, error) {
	f.fbIn = in
	if f.fbErr != nil {
		return assistant.FeedbackOutput{}, f.fbErr
	}
	return assistant.FeedbackOutput{ID: "fb-1", Timestamp: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)}, nil
}

func newRouter(uc assistant.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	l := log.NewNop()
	r := gin.New()
	New(l, uc, nil).RegisterRoutes(r.Group(""), middleware.New(l, "", nil))
	return r
}

func TestAskStreamsEvents(t *testing.T) {
	uc := &fakeUseCase{}
	srv := httptest.NewServer(newRouter(uc))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/moskal-ai?query=how+is+it&keywords=a&keywords=b")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/event-stream"))
	assert.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))

	var data []string
	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		if line, ok := strings.CutPrefix(sc.Text(), "data:"); ok {
			data = append(data, line)
		}
	}
	require.Len(t, data, 2)
	assert.Equal(t, "init", gjson.Get(data[0], "step").String())
	assert.Equal(t, "completed", gjson.Get(data[1], "step").String())
	assert.Equal(t, assistant.DataSource, gjson.Get(data[1], "data.final_response.data_source").String())
	assert.Equal(t, "how is it", uc.askIn.Query)
	assert.Equal(t, []string{"a", "b"}, uc.askIn.Keywords)
}

func TestAskRequiresQuery(t *testing.T) {
	r := newRouter(&fakeUseCase{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/moskal-ai", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int64(100003), gjson.Get(w.Body.String(), "error_code").Int())
}

func TestFeedback(t *testing.T) {
	uc := &fakeUseCase{}
	r := newRouter(uc)

	body := `{"query_user":"q","feedback_user":"good","user_name":"ana","project_name":"acme","response_ai":{"x":1}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ai-feedback", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fb-1", gjson.Get(w.Body.String(), "data.id").String())
	assert.Equal(t, "acme", uc.fbIn.ProjectName)
	assert.Equal(t, float64(1), uc.fbIn.ResponseAI["x"])

	uc.fbErr = assistant.ErrFeedbackUnavailable
	req = httptest.NewRequest(http.MethodPost, "/api/v1/ai-feedback", strings.NewReader(body))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, int64(400002), gjson.Get(w.Body.String(), "error_code").Int())
}
