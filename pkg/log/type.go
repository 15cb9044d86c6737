package log

import "go.uber.org/zap"

// ZapConfig holds the logger configuration.
type ZapConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type ctxKey string

const (
	// RequestIDKey is the context key carrying the request id.
	RequestIDKey ctxKey = "request_id"

	modeProduction = "production"
	encodingJSON   = "json"
)

type zapLogger struct {
	sugar *zap.SugaredLogger
}
