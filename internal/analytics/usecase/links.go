package usecase

import (
	"context"

	"analytics-srv/internal/analytics"
	"analytics-srv/internal/cache"
	"analytics-srv/internal/query"
)

const linksAgg = "links"

func (uc *implUseCase) TrendingLinks(ctx context.Context, input analytics.FilterInput) (analytics.LinksOutput, error) {
	f, err := prepare(input.Filter)
	if err != nil {
		return analytics.LinksOutput{}, err
	}
	key := cache.BuildKey(analytics.EndpointTrendingLinks, f.CacheParams())

	return cache.Through(ctx, uc.cache, key, uc.cfg.DefaultTTL, func(ctx context.Context) (analytics.LinksOutput, error) {
		aggs := query.M{linksAgg: query.M{"terms": query.M{"field": query.FieldLinkPost, "size": uc.cfg.LinkSample}}}
		out, err := uc.search(ctx, "TrendingLinks", uc.compiler.Compile(f, query.Options{Aggs: aggs}))
		if err != nil {
			return analytics.LinksOutput{}, err
		}
		return analytics.LinksOutput{Links: decodeLinks(out.Agg(linksAgg), uc.cfg.LinksLimit)}, nil
	})
}
