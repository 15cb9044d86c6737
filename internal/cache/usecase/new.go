package usecase

import (
	"time"

	"analytics-srv/internal/cache"
	"analytics-srv/internal/cache/repository"
	"analytics-srv/pkg/log"
)

// DefaultOpTimeout bounds every cache round trip.
const DefaultOpTimeout = 2 * time.Second

type implUseCase struct {
	repo      repository.Repository
	l         log.Logger
	opTimeout time.Duration
}

func New(repo repository.Repository, l log.Logger) cache.UseCase {
	return &implUseCase{
		repo:      repo,
		l:         l,
		opTimeout: DefaultOpTimeout,
	}
}
