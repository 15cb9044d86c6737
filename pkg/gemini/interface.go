package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	pkghttp "analytics-srv/pkg/http"

	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
)

var (
	// ErrNoCredentials is returned when neither an API key nor service-account credentials are configured.
	ErrNoCredentials = errors.New("gemini: api key or project id with credentials file is required")
	// ErrEmptyResponse is returned when the model produced no text.
	ErrEmptyResponse = errors.New("gemini: no content generated")
)

// IGemini defines the interface for Google Gemini text generation.
// Implementations are safe for concurrent use.
type IGemini interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewGemini creates a new Gemini client. Model defaults to DefaultModel if empty.
func NewGemini(ctx context.Context, cfg GeminiConfig) (IGemini, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Location == "" {
		cfg.Location = DefaultLocation
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retries <= 0 {
		cfg.Retries = DefaultRetries
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = DefaultRequestsPerMinute
	}

	impl := &geminiImpl{
		apiKey:      cfg.APIKey,
		projectID:   cfg.ProjectID,
		location:    cfg.Location,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		httpClient: pkghttp.NewClient(pkghttp.ClientConfig{
			Timeout:   cfg.Timeout,
			Retries:   cfg.Retries,
			RetryWait: time.Second,
		}),
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), rateLimiterBurst),
	}

	switch {
	case cfg.APIKey != "":
	case cfg.ProjectID != "" && cfg.CredentialsFile != "":
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("gemini: read credentials: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, cloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("gemini: parse credentials: %w", err)
		}
		impl.tokens = creds.TokenSource
	default:
		return nil, ErrNoCredentials
	}

	return impl, nil
}
