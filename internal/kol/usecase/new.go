package usecase

import (
	"time"

	"analytics-srv/internal/cache"
	"analytics-srv/internal/kol"
	"analytics-srv/internal/post"
	"analytics-srv/internal/query"
	"analytics-srv/internal/topic"
	"analytics-srv/pkg/log"
)

type Config struct {
	// SampleSize bounds the recent posts the table is built from.
	SampleSize int
	Limit      int
	TTL        time.Duration
	Location   *time.Location
	// LabelBatch is the number of issues per topic lookup.
	LabelBatch int
}

func DefaultConfig() Config {
	return Config{
		SampleSize: 1000,
		Limit:      10,
		TTL:        cache.DefaultTTL,
		Location:   time.UTC,
		LabelBatch: 500,
	}
}

type implUseCase struct {
	l        log.Logger
	posts    post.UseCase
	topics   topic.UseCase
	cache    cache.UseCase
	compiler *query.Compiler
	cfg      Config
}

func New(l log.Logger, posts post.UseCase, topics topic.UseCase, cacheUC cache.UseCase, compiler *query.Compiler, cfg Config) kol.UseCase {
	def := DefaultConfig()
	if cfg.SampleSize <= 0 {
		cfg.SampleSize = def.SampleSize
	}
	if cfg.Limit <= 0 {
		cfg.Limit = def.Limit
	}
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.Location == nil {
		cfg.Location = def.Location
	}
	if cfg.LabelBatch <= 0 {
		cfg.LabelBatch = def.LabelBatch
	}
	return &implUseCase{
		l:        l,
		posts:    posts,
		topics:   topics,
		cache:    cacheUC,
		compiler: compiler,
		cfg:      cfg,
	}
}
