package usecase

import (
	"time"

	"analytics-srv/internal/analytics"
	"analytics-srv/internal/cache"
	"analytics-srv/internal/post"
	"analytics-srv/internal/query"
	"analytics-srv/pkg/log"
)

// Config tunes the analytics endpoints.
type Config struct {
	DefaultTTL  time.Duration
	ShortTTL    time.Duration
	Location    *time.Location
	UsersLimit  int
	LinkSample  int
	LinksLimit  int
	EmojiSample int
	EmojiLimit  int
	WordsLimit  int
}

// DefaultConfig returns the stock endpoint settings.
func DefaultConfig() Config {
	return Config{
		DefaultTTL:  cache.DefaultTTL,
		ShortTTL:    cache.ShortTTL,
		Location:    time.UTC,
		UsersLimit:  100,
		LinkSample:  1000,
		LinksLimit:  20,
		EmojiSample: 1000,
		EmojiLimit:  20,
		WordsLimit:  50,
	}
}

type implUseCase struct {
	posts    post.UseCase
	cache    cache.UseCase
	compiler *query.Compiler
	l        log.Logger
	cfg      Config
}

func New(l log.Logger, posts post.UseCase, cacheUC cache.UseCase, compiler *query.Compiler, cfg Config) analytics.UseCase {
	def := DefaultConfig()
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = def.DefaultTTL
	}
	if cfg.ShortTTL <= 0 {
		cfg.ShortTTL = def.ShortTTL
	}
	if cfg.Location == nil {
		cfg.Location = def.Location
	}
	if cfg.UsersLimit <= 0 {
		cfg.UsersLimit = def.UsersLimit
	}
	if cfg.LinkSample <= 0 {
		cfg.LinkSample = def.LinkSample
	}
	if cfg.LinksLimit <= 0 {
		cfg.LinksLimit = def.LinksLimit
	}
	if cfg.EmojiSample <= 0 {
		cfg.EmojiSample = def.EmojiSample
	}
	if cfg.EmojiLimit <= 0 {
		cfg.EmojiLimit = def.EmojiLimit
	}
	if cfg.WordsLimit <= 0 {
		cfg.WordsLimit = def.WordsLimit
	}
	return &implUseCase{
		posts:    posts,
		cache:    cacheUC,
		compiler: compiler,
		l:        l,
		cfg:      cfg,
	}
}
