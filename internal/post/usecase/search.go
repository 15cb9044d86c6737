package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"analytics-srv/internal/observability"
	"analytics-srv/internal/post"
	"analytics-srv/internal/post/repository"
	pkgES "analytics-srv/pkg/elasticsearch"

	"github.com/tidwall/gjson"
)

func (uc *implUseCase) Search(ctx context.Context, input post.SearchInput) (post.SearchOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	start := time.Now()
	raw, err := uc.repo.Search(ctx, repository.SearchOptions{
		Indices: input.Indices,
		Body:    input.Body,
	})
	observability.StoreLatency.WithLabelValues(label(input.Operation)).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.StoreErrors.WithLabelValues(label(input.Operation)).Inc()
		return post.SearchOutput{}, classify(err)
	}
	return post.SearchOutput{Raw: gjson.ParseBytes(raw)}, nil
}

func (uc *implUseCase) Count(ctx context.Context, input post.CountInput) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	start := time.Now()
	n, err := uc.repo.Count(ctx, repository.CountOptions{
		Indices: input.Indices,
		Query:   input.Query,
	})
	observability.StoreLatency.WithLabelValues(label(input.Operation) + "_count").Observe(time.Since(start).Seconds())
	if err != nil {
		observability.StoreErrors.WithLabelValues(label(input.Operation) + "_count").Inc()
		return 0, classify(err)
	}
	return n, nil
}

// classify separates rejected queries (4xx) from an unreachable store.
func classify(err error) error {
	var re *pkgES.ResponseError
	if errors.As(err, &re) && re.Status >= 400 && re.Status < 500 {
		return fmt.Errorf("%w: %v", post.ErrBadQuery, err)
	}
	return fmt.Errorf("%w: %v", post.ErrStoreUnavailable, err)
}

func label(op string) string {
	if op == "" {
		return "search"
	}
	return op
}
