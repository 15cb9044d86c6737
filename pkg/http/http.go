package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/sethvargo/go-retry"
)

func defaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Get performs a GET request.
func (c *clientImpl) Get(ctx context.Context, url string, headers map[string]string) ([]byte, int, error) {
	return c.do(ctx, http.MethodGet, url, nil, headers)
}

// Post performs a POST request with JSON body.
func (c *clientImpl) Post(ctx context.Context, url string, body any, headers map[string]string) ([]byte, int, error) {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal body: %w", err)
		}
		payload = b
	}
	h := map[string]string{"Content-Type": "application/json"}
	for k, v := range headers {
		h[k] = v
	}
	return c.do(ctx, http.MethodPost, url, payload, h)
}

// do sends the request, retrying transient transport failures and gateway errors
// with exponential backoff and jitter. The request is rebuilt on every attempt.
func (c *clientImpl) do(ctx context.Context, method, url string, payload []byte, headers map[string]string) ([]byte, int, error) {
	var (
		respBody []byte
		status   int
	)

	backoff := retry.NewExponential(c.config.RetryWait)
	backoff = retry.WithJitterPercent(DefaultJitterPercent, backoff)
	backoff = retry.WithCappedDuration(c.config.MaxRetryWait, backoff)
	backoff = retry.WithMaxRetries(uint64(c.config.Retries), backoff)

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		respBody, status = nil, 0
		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			if IsTransient(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		defer resp.Body.Close()

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("failed to read response body: %w", err))
		}
		respBody, status = b, resp.StatusCode

		switch resp.StatusCode {
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return retry.RetryableError(fmt.Errorf("upstream status %d", resp.StatusCode))
		}
		return nil
	})
	if err != nil && status == 0 {
		return nil, 0, fmt.Errorf("request failed after %d retries: %w", c.config.Retries, err)
	}
	return respBody, status, nil
}

// IsTransient reports whether err is a connection-level failure worth retrying.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}
