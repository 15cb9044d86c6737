package usecase

import (
	"context"
	"errors"
	"fmt"

	"analytics-srv/internal/analytics"
	"analytics-srv/internal/model"
	"analytics-srv/internal/post"
	"analytics-srv/internal/query"
)

// prepare normalizes and validates an incoming filter.
func prepare(f model.Filter) (model.Filter, error) {
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return f, fmt.Errorf("%w: %w", analytics.ErrInvalidFilter, err)
	}
	return f, nil
}

// search runs a compiled query and translates store failures into domain errors.
func (uc *implUseCase) search(ctx context.Context, op string, c query.Compiled) (post.SearchOutput, error) {
	out, err := uc.posts.Search(ctx, post.SearchInput{
		Operation: op,
		Indices:   c.Indices,
		Body:      c.Body,
	})
	if err != nil {
		uc.l.Errorf(ctx, "analytics.usecase.%s: search failed: %v", op, err)
		return post.SearchOutput{}, storeError(err)
	}
	return out, nil
}

func storeError(err error) error {
	if errors.Is(err, post.ErrBadQuery) {
		return fmt.Errorf("%w: %v", analytics.ErrQueryFailed, err)
	}
	return fmt.Errorf("%w: %v", analytics.ErrStoreUnavailable, err)
}

func intParam(v int) string { return fmt.Sprintf("%d", v) }
