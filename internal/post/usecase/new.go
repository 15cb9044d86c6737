package usecase

import (
	"time"

	"analytics-srv/internal/post"
	"analytics-srv/internal/post/repository"
	"analytics-srv/pkg/log"
)

// DefaultTimeout is the request-scoped deadline of store calls.
const DefaultTimeout = 30 * time.Second

type implUseCase struct {
	repo    repository.ESRepository
	l       log.Logger
	timeout time.Duration
}

func New(repo repository.ESRepository, l log.Logger, timeout time.Duration) post.UseCase {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &implUseCase{
		repo:    repo,
		l:       l,
		timeout: timeout,
	}
}
