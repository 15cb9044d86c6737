package usecase

import (
	"context"
	"time"

	"analytics-srv/internal/cache"
	"analytics-srv/internal/model"
	"analytics-srv/internal/post"
	"analytics-srv/internal/query"
	"analytics-srv/internal/topic"
	"analytics-srv/internal/topic/repository"
	"analytics-srv/pkg/log"

	"github.com/google/uuid"
)

// Config tunes the topic manager.
type Config struct {
	// IssueLimit bounds the issues sent to the model on a cold start.
	IssueLimit int
	// FetchLimit bounds the issues read per request.
	FetchLimit int
	// SplitThreshold is the largest list_issue a single cluster document holds.
	SplitThreshold int
	Namespace      uuid.UUID
	AbsorbTimeout  time.Duration
}

func DefaultConfig() Config {
	return Config{
		IssueLimit:     50,
		FetchLimit:     500,
		SplitThreshold: 100,
		Namespace:      model.TopicNamespace,
		AbsorbTimeout:  5 * time.Minute,
	}
}

type implUseCase struct {
	l          log.Logger
	repo       repository.Repository
	posts      post.UseCase
	compiler   *query.Compiler
	gen        cache.Generator
	dispatcher topic.Dispatcher
	cfg        Config
}

// New builds the topic manager. A nil dispatcher absorbs in a background
// goroutine of this process.
func New(l log.Logger, repo repository.Repository, posts post.UseCase, compiler *query.Compiler, gen cache.Generator, dispatcher topic.Dispatcher, cfg Config) topic.UseCase {
	def := DefaultConfig()
	if cfg.IssueLimit <= 0 {
		cfg.IssueLimit = def.IssueLimit
	}
	if cfg.FetchLimit <= 0 {
		cfg.FetchLimit = def.FetchLimit
	}
	if cfg.SplitThreshold <= 0 {
		cfg.SplitThreshold = def.SplitThreshold
	}
	if cfg.Namespace == uuid.Nil {
		cfg.Namespace = def.Namespace
	}
	if cfg.AbsorbTimeout <= 0 {
		cfg.AbsorbTimeout = def.AbsorbTimeout
	}
	uc := &implUseCase{
		l:          l,
		repo:       repo,
		posts:      posts,
		compiler:   compiler,
		gen:        gen,
		dispatcher: dispatcher,
		cfg:        cfg,
	}
	if uc.dispatcher == nil {
		uc.dispatcher = NewInProcess(l, uc, cfg.AbsorbTimeout)
	}
	return uc
}

func (uc *implUseCase) Labels(ctx context.Context, project string, issues []string) (map[string]string, error) {
	labels := map[string]string{}
	if project == "" || len(issues) == 0 {
		return labels, nil
	}
	clusters, err := uc.repo.List(ctx, repository.ListOptions{ProjectName: project, Issues: issues})
	if err != nil {
		uc.l.Errorf(ctx, "topic.usecase.Labels: repo.List failed: %v", err)
		return labels, wrapStore(err)
	}
	for _, c := range clusters {
		for _, i := range c.ListIssue {
			if _, ok := labels[i]; !ok {
				labels[i] = c.UnifiedIssue
			}
		}
	}
	return labels, nil
}
