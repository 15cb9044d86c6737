package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRetriesGatewayErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"a":1}`, string(b))
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`ok`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{Timeout: time.Second, Retries: 2, RetryWait: time.Millisecond})
	body, status, err := c.Post(context.Background(), srv.URL, map[string]int{"a": 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", string(body))
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{Timeout: time.Second, Retries: 2, RetryWait: time.Millisecond})
	_, status, err := c.Get(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(syscall.ECONNRESET))
	assert.True(t, IsTransient(io.ErrUnexpectedEOF))
	assert.False(t, IsTransient(context.Canceled))
	assert.False(t, IsTransient(nil))
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(ClientConfig{Retries: -1}).(*clientImpl)
	assert.Equal(t, DefaultTimeout, c.config.Timeout)
	assert.Equal(t, 0, c.config.Retries)
	assert.Equal(t, DefaultRetryWait, c.config.RetryWait)
	assert.Equal(t, DefaultMaxRetryWait, c.config.MaxRetryWait)
	assert.Equal(t, DefaultTimeout, c.client.Timeout)
}

func TestRetryWaitIsCapped(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`ok`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{Timeout: time.Second, Retries: 2, RetryWait: time.Minute, MaxRetryWait: 5 * time.Millisecond})
	start := time.Now()
	_, status, err := c.Get(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Less(t, time.Since(start), 5*time.Second)
}
