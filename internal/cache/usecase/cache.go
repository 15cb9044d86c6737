package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"analytics-srv/internal/cache/repository"
	"analytics-srv/internal/observability"
)

func (uc *implUseCase) Lookup(ctx context.Context, key string, dest any) bool {
	if uc.repo == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, uc.opTimeout)
	defer cancel()

	endpoint := endpointOf(key)
	data, err := uc.repo.Get(ctx, repository.GetOptions{Key: key})
	if err != nil {
		if errors.Is(err, repository.ErrMiss) {
			observability.CacheLookups.WithLabelValues(endpoint, "miss").Inc()
			return false
		}
		observability.CacheLookups.WithLabelValues(endpoint, "error").Inc()
		uc.l.Warnf(ctx, "cache.usecase.Lookup: cache unavailable, treating as miss: %v", err)
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		observability.CacheLookups.WithLabelValues(endpoint, "error").Inc()
		uc.l.Warnf(ctx, "cache.usecase.Lookup: discarding undecodable entry %s: %v", key, err)
		return false
	}
	observability.CacheLookups.WithLabelValues(endpoint, "hit").Inc()
	return true
}

func (uc *implUseCase) Store(ctx context.Context, key string, value any, ttl time.Duration) {
	if uc.repo == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		uc.l.Warnf(ctx, "cache.usecase.Store: failed to encode %s: %v", key, err)
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.opTimeout)
	defer cancel()

	if err := uc.repo.Save(ctx, repository.SaveOptions{Key: key, Value: data, TTL: ttl}); err != nil {
		uc.l.Warnf(ctx, "cache.usecase.Store: cache unavailable, skipping: %v", err)
	}
}

func endpointOf(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
