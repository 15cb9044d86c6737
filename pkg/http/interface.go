package http

import (
	"context"
	"net/http"
	"time"
)

// ClientConfig holds configuration for the HTTP client.
type ClientConfig struct {
	Timeout time.Duration
	// Retries is the number of attempts after the first one.
	Retries   int
	RetryWait time.Duration
	// MaxRetryWait caps a single backoff step. Zero means DefaultMaxRetryWait.
	MaxRetryWait time.Duration
}

type clientImpl struct {
	client *http.Client
	config ClientConfig
}

// IClient defines the interface for HTTP client with retry and timeout.
// Implementations are safe for concurrent use.
type IClient interface {
	Get(ctx context.Context, url string, headers map[string]string) ([]byte, int, error)
	Post(ctx context.Context, url string, body any, headers map[string]string) ([]byte, int, error)
}

// NewClient creates a new HTTP client. Returns the interface.
func NewClient(cfg ClientConfig) IClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if cfg.RetryWait <= 0 {
		cfg.RetryWait = DefaultRetryWait
	}
	if cfg.MaxRetryWait <= 0 {
		cfg.MaxRetryWait = DefaultMaxRetryWait
	}
	return &clientImpl{
		client: defaultHTTPClient(cfg.Timeout),
		config: cfg,
	}
}
