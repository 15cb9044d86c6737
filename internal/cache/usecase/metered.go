package usecase

import (
	"context"
	"time"

	"analytics-srv/internal/cache"
	"analytics-srv/internal/observability"
)

type meteredGenerator struct {
	next    cache.Generator
	purpose string
}

// Metered records latency and failures of next under the given purpose label.
func Metered(next cache.Generator, purpose string) cache.Generator {
	return &meteredGenerator{next: next, purpose: purpose}
}

func (g *meteredGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := g.next.Generate(ctx, prompt)
	observability.TextGenLatency.WithLabelValues(g.purpose).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.TextGenErrors.WithLabelValues(g.purpose).Inc()
	}
	return text, err
}
