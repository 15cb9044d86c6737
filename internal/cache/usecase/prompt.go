package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"analytics-srv/internal/cache"
	"analytics-srv/internal/cache/repository"
	"analytics-srv/internal/observability"
	"analytics-srv/pkg/log"
)

const promptPrefix = "prompt:"

type cachedGenerator struct {
	next   cache.Generator
	repo   repository.Repository
	l      log.Logger
	ttl    time.Duration
	accept cache.Accept
}

// NewCachedGenerator memoizes next by prompt hash. A nil repo disables caching.
// Replies rejected by accept are returned but never stored, so the next call
// with the same prompt reaches the model again. A nil accept keeps every
// non-empty reply.
func NewCachedGenerator(next cache.Generator, repo repository.Repository, l log.Logger, ttl time.Duration, accept cache.Accept) cache.Generator {
	if ttl <= 0 {
		ttl = cache.PromptTTL
	}
	return &cachedGenerator{next: next, repo: repo, l: l, ttl: ttl, accept: accept}
}

func (g *cachedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	sum := sha256.Sum256([]byte(prompt))
	key := promptPrefix + hex.EncodeToString(sum[:])

	// 1. Check cache
	if g.repo != nil {
		data, err := g.repo.Get(ctx, repository.GetOptions{Key: key})
		switch {
		case err == nil && len(data) > 0:
			observability.PromptCache.WithLabelValues("hit").Inc()
			return string(data), nil
		case err != nil && !errors.Is(err, repository.ErrMiss):
			g.l.Warnf(ctx, "cache.usecase.Generate: prompt cache unavailable: %v", err)
		}
		observability.PromptCache.WithLabelValues("miss").Inc()
	}

	// 2. Call the model
	text, err := g.next.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	// 3. Save cache
	if g.repo == nil || text == "" {
		return text, nil
	}
	if g.accept != nil && !g.accept(text) {
		observability.PromptCache.WithLabelValues("rejected").Inc()
		return text, nil
	}
	if err := g.repo.Save(context.WithoutCancel(ctx), repository.SaveOptions{Key: key, Value: []byte(text), TTL: g.ttl}); err != nil {
		g.l.Warnf(ctx, "cache.usecase.Generate: prompt cache save failed: %v", err)
	}
	return text, nil
}
