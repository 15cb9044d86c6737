package usecase

import (
	"time"

	"analytics-srv/internal/assistant"
	"analytics-srv/internal/assistant/repository"
	"analytics-srv/internal/cache"
	"analytics-srv/internal/post"
	"analytics-srv/pkg/log"
)

type Config struct {
	// MaxSize caps the hit count of a generated query.
	MaxSize int
	// SampleHits is the number of hits handed to response generation.
	SampleHits int
	// MaxContext bounds the processed data embedded in the response prompt, in bytes.
	MaxContext int
	Location   *time.Location
}

func DefaultConfig() Config {
	return Config{
		MaxSize:    100,
		SampleHits: 20,
		MaxContext: 24000,
		Location:   time.UTC,
	}
}

type implUseCase struct {
	l     log.Logger
	posts post.UseCase
	gen   cache.Generator
	repo  repository.Repository
	cfg   Config
	now   func() time.Time
}

func New(l log.Logger, posts post.UseCase, gen cache.Generator, repo repository.Repository, cfg Config) assistant.UseCase {
	def := DefaultConfig()
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = def.MaxSize
	}
	if cfg.SampleHits <= 0 {
		cfg.SampleHits = def.SampleHits
	}
	if cfg.MaxContext <= 0 {
		cfg.MaxContext = def.MaxContext
	}
	if cfg.Location == nil {
		cfg.Location = def.Location
	}
	return &implUseCase{
		l:     l,
		posts: posts,
		gen:   gen,
		repo:  repo,
		cfg:   cfg,
		now:   time.Now,
	}
}
