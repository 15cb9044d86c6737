package usecase

import (
	"context"
	"sort"
	"strings"

	"analytics-srv/internal/analytics"
	"analytics-srv/internal/cache"
	"analytics-srv/internal/query"
)

func (uc *implUseCase) TrendingHashtags(ctx context.Context, input analytics.HashtagsInput) (analytics.HashtagsOutput, error) {
	f, err := prepare(input.Filter)
	if err != nil {
		return analytics.HashtagsOutput{}, err
	}
	sortBy := strings.ToLower(strings.TrimSpace(input.SortBy))
	switch sortBy {
	case "":
		sortBy = analytics.HashtagSortMentions
	case analytics.HashtagSortMentions, analytics.HashtagSortSentiment:
	default:
		return analytics.HashtagsOutput{}, analytics.ErrInvalidParams
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	key := cache.BuildKey(analytics.EndpointTrendingHashtags, f.CacheParams(), map[string]string{
		"sort_by": sortBy,
		"limit":   intParam(limit),
	})

	return cache.Through(ctx, uc.cache, key, uc.cfg.DefaultTTL, func(ctx context.Context) (analytics.HashtagsOutput, error) {
		// Over-fetch so blacklisted variants the store did not exclude leave enough rows.
		aggs := query.M{query.AggHashtags: query.HashtagTerms(limit+len(analytics.HashtagBlacklist), analytics.HashtagBlacklist)}
		out, err := uc.search(ctx, "TrendingHashtags", uc.compiler.Compile(f, query.Options{Aggs: aggs}))
		if err != nil {
			return analytics.HashtagsOutput{}, err
		}

		tags := decodeHashtags(out.Agg(query.AggHashtags))
		if sortBy == analytics.HashtagSortSentiment {
			sort.SliceStable(tags, func(i, j int) bool {
				if tags[i].SentimentPercentage != tags[j].SentimentPercentage {
					return tags[i].SentimentPercentage > tags[j].SentimentPercentage
				}
				return tags[i].Mentions > tags[j].Mentions
			})
		}
		if len(tags) > limit {
			tags = tags[:limit]
		}
		return analytics.HashtagsOutput{Hashtags: tags}, nil
	})
}
