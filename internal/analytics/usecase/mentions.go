package usecase

import (
	"context"
	"strings"

	"analytics-srv/internal/analytics"
	"analytics-srv/internal/cache"
	"analytics-srv/internal/model"
	"analytics-srv/internal/post"
	"analytics-srv/internal/query"
	"analytics-srv/pkg/paginator"
)

func normalizeSort(sortType, order string) (string, string, bool) {
	sortType = strings.ToLower(strings.TrimSpace(sortType))
	switch sortType {
	case "":
		sortType = query.SortRecent
	case query.SortPopular, query.SortRecent, query.SortRelevant, query.SortTopProfile:
	default:
		return "", "", false
	}
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "asc":
		order = "asc"
	case "", "desc":
		order = "desc"
	default:
		return "", "", false
	}
	return sortType, order, true
}

func (uc *implUseCase) ListOfMentions(ctx context.Context, input analytics.MentionsInput) (analytics.MentionsOutput, error) {
	f, err := prepare(input.Filter)
	if err != nil {
		return analytics.MentionsOutput{}, err
	}
	sortType, order, ok := normalizeSort(input.SortType, input.SortOrder)
	if !ok {
		return analytics.MentionsOutput{}, analytics.ErrInvalidParams
	}
	page := input.Paginate
	page.Adjust()

	key := cache.BuildKey(analytics.EndpointListOfMentions, f.CacheParams(), map[string]string{
		"sort_type":  sortType,
		"sort_order": order,
		"page":       intParam(page.Page),
		"page_size":  intParam(int(page.Limit)),
	})

	return cache.Through(ctx, uc.cache, key, uc.cfg.ShortTTL, func(ctx context.Context) (analytics.MentionsOutput, error) {
		compiled := uc.compiler.Compile(f, query.Options{
			Shape: query.ResultShape{
				Size:  int(page.Limit),
				From:  int(page.Offset()),
				Sort:  sortType,
				Order: order,
			},
		})
		out, err := uc.search(ctx, "ListOfMentions", compiled)
		if err != nil {
			return analytics.MentionsOutput{}, err
		}

		hits := out.Hits()
		posts := make([]model.Post, 0, len(hits))
		for _, h := range hits {
			posts = append(posts, post.DecodeHit(h, uc.compiler.Engine(), uc.cfg.Location))
		}
		return analytics.MentionsOutput{
			Posts:     posts,
			Paginator: paginator.New(page, out.Total(), len(posts)),
		}, nil
	})
}
