package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"analytics-srv/config"
	pkgES "analytics-srv/pkg/elasticsearch"
	"analytics-srv/pkg/log"
	pkgRedis "analytics-srv/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeES struct {
	pkgES.IElasticsearch
	err error
}

func (f fakeES) Ping(context.Context) error { return f.err }

type fakeRedis struct {
	pkgRedis.IRedis
	err error
}

func (f fakeRedis) Ping(context.Context) error { return f.err }

type fakeGen struct{}

func (fakeGen) Generate(context.Context, string) (string, error) { return "", nil }

func newTestServer(t *testing.T, esErr, redisErr error) *HTTPServer {
	t.Helper()
	srv, err := New(log.NewNop(), Config{
		Logger:      log.NewNop(),
		Port:        8080,
		Mode:        gin.TestMode,
		Config:      &config.Config{Topics: config.TopicsConfig{AbsorbMode: config.AbsorbModeInProcess}},
		ESClient:    fakeES{err: esErr},
		RedisClient: fakeRedis{err: redisErr},
		Generator:   fakeGen{},
	})
	require.NoError(t, err)
	require.NoError(t, srv.mapHandlers())
	return srv
}

func TestSystemRoutes(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		esErr    error
		redisErr error
		want     int
	}{
		{name: "health", path: "/health", want: http.StatusOK},
		{name: "live", path: "/live", want: http.StatusOK},
		{name: "ready", path: "/ready", want: http.StatusOK},
		{name: "ready without store", path: "/ready", esErr: errors.New("down"), want: http.StatusServiceUnavailable},
		{name: "ready without cache", path: "/ready", redisErr: errors.New("down"), want: http.StatusServiceUnavailable},
		{name: "metrics", path: "/metrics", want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.esErr, tt.redisErr)
			w := httptest.NewRecorder()
			srv.gin.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestNewRequiresProducerInKafkaMode(t *testing.T) {
	_, err := New(log.NewNop(), Config{
		Logger:      log.NewNop(),
		Port:        8080,
		Mode:        gin.TestMode,
		Config:      &config.Config{Topics: config.TopicsConfig{AbsorbMode: config.AbsorbModeKafka}},
		ESClient:    fakeES{},
		RedisClient: fakeRedis{},
		Generator:   fakeGen{},
	})
	assert.Error(t, err)
}
