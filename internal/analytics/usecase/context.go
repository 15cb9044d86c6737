package usecase

import (
	"context"

	"analytics-srv/internal/analytics"
	"analytics-srv/internal/cache"
	"analytics-srv/internal/query"
)

const (
	sampleAgg       = "sample"
	sampleShardSize = 500
)

func (uc *implUseCase) ContextOfDiscussion(ctx context.Context, input analytics.FilterInput) (analytics.ContextOutput, error) {
	f, err := prepare(input.Filter)
	if err != nil {
		return analytics.ContextOutput{}, err
	}
	key := cache.BuildKey(analytics.EndpointContextOfDiscussion, f.CacheParams())

	return cache.Through(ctx, uc.cache, key, uc.cfg.DefaultTTL, func(ctx context.Context) (analytics.ContextOutput, error) {
		aggs := query.M{sampleAgg: query.SampledSignificantWords(uc.cfg.WordsLimit, sampleShardSize)}
		out, err := uc.search(ctx, "ContextOfDiscussion", uc.compiler.Compile(f, query.Options{Aggs: aggs}))
		if err != nil {
			return analytics.ContextOutput{}, err
		}
		return analytics.ContextOutput{Words: decodeWords(out.Agg(sampleAgg + "." + query.AggWords))}, nil
	})
}
