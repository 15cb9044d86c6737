package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Default TTLs of cached endpoint responses.
const (
	DefaultTTL = 600 * time.Second
	ShortTTL   = 100 * time.Second
	PromptTTL  = 24 * time.Hour
)

// BuildKey derives the cache key of an endpoint call from every parameter.
// Parameters are sorted by name; values are quoted so no separator inside a
// value can merge two parameters.
func BuildKey(endpoint string, params ...map[string]string) string {
	parts := make([]string, 0, 32)
	for _, p := range params {
		for k, v := range p {
			parts = append(parts, k+":"+strconv.Quote(v))
		}
	}
	sort.Strings(parts)
	sum := sha256.Sum256([]byte(strings.Join(parts, "_")))
	return endpoint + ":" + hex.EncodeToString(sum[:])
}

// Through returns the cached value of key, or computes, stores and returns it.
// Errors from compute are returned as-is and nothing is stored.
func Through[T any](ctx context.Context, uc UseCase, key string, ttl time.Duration, compute func(context.Context) (T, error)) (T, error) {
	var cached T
	if uc != nil && uc.Lookup(ctx, key, &cached) {
		return cached, nil
	}
	v, err := compute(ctx)
	if err != nil {
		return v, err
	}
	if uc != nil {
		uc.Store(ctx, key, v, ttl)
	}
	return v, nil
}
