package http

import "time"

const (
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
	// DefaultRetries is the default number of retries after the first attempt.
	DefaultRetries = 2
	// DefaultRetryWait is the base wait of the exponential backoff.
	DefaultRetryWait = 500 * time.Millisecond
	// DefaultMaxRetryWait caps one backoff step.
	DefaultMaxRetryWait = 5 * time.Second
	// DefaultJitterPercent is the jitter applied to every backoff step.
	DefaultJitterPercent = 20
)

// DefaultConfig returns default ClientConfig.
func DefaultConfig() ClientConfig {
	return ClientConfig{
		Timeout:      DefaultTimeout,
		Retries:      DefaultRetries,
		RetryWait:    DefaultRetryWait,
		MaxRetryWait: DefaultMaxRetryWait,
	}
}
