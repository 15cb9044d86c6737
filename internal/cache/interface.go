package cache

import (
	"context"
	"time"
)

// UseCase is the best-effort response cache. Backend failures never surface:
// a failed lookup is a miss and a failed store is a no-op.
//
//go:generate mockery --name UseCase
type UseCase interface {
	Lookup(ctx context.Context, key string, dest any) bool
	Store(ctx context.Context, key string, value any, ttl time.Duration)
}

// Accept reports whether a model reply is usable by its caller.
// Only accepted replies are kept by the prompt cache.
type Accept func(reply string) bool

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
