package usecase

import (
	"context"
	"sort"

	"analytics-srv/internal/analytics"
	"analytics-srv/internal/cache"
	"analytics-srv/internal/model"
	"analytics-srv/internal/query"
	"analytics-srv/pkg/paginator"
)

type userOrder int

const (
	byMentions userOrder = iota
	byFollowers
)

func (uc *implUseCase) ShareOfVoice(ctx context.Context, input analytics.UsersInput) (analytics.UsersOutput, error) {
	return uc.users(ctx, analytics.EndpointShareOfVoice, input, byMentions)
}

func (uc *implUseCase) MostFollowers(ctx context.Context, input analytics.UsersInput) (analytics.UsersOutput, error) {
	return uc.users(ctx, analytics.EndpointMostFollowers, input, byFollowers)
}

// users ranks authors of the matched posts. News is excluded: publishers are
// not voices. Share of voice is relative to every non-news mention.
func (uc *implUseCase) users(ctx context.Context, endpoint string, input analytics.UsersInput, order userOrder) (analytics.UsersOutput, error) {
	f, err := prepare(input.Filter)
	if err != nil {
		return analytics.UsersOutput{}, err
	}
	limit := input.Limit
	if limit <= 0 || limit > uc.cfg.UsersLimit {
		limit = uc.cfg.UsersLimit
	}
	page := input.Paginate
	page.Adjust()

	key := cache.BuildKey(endpoint, f.CacheParams(), map[string]string{
		"limit":     intParam(limit),
		"page":      intParam(page.Page),
		"page_size": intParam(int(page.Limit)),
	})

	return cache.Through(ctx, uc.cache, key, uc.cfg.DefaultTTL, func(ctx context.Context) (analytics.UsersOutput, error) {
		termsOrder := query.TermsOrder{By: "_count"}
		if order == byFollowers {
			termsOrder = query.TermsOrder{By: query.AggFollowers}
		}
		compiled := uc.compiler.Compile(f, query.Options{
			ExcludeNews: true,
			Aggs:        query.M{query.AggChannels: uc.compiler.TopUsers(limit, termsOrder)},
		})
		out, err := uc.search(ctx, endpoint, compiled)
		if err != nil {
			return analytics.UsersOutput{}, err
		}

		total := out.Total()
		users := decodeUsers(out.Agg(query.AggChannels), total)
		users = withoutNews(users)
		sortUsers(users, order)
		if len(users) > limit {
			users = users[:limit]
		}

		from, to := page.Bounds(len(users))
		pageUsers := users[from:to]
		return analytics.UsersOutput{
			Users:         pageUsers,
			TotalMentions: total,
			Paginator:     paginator.New(page, int64(len(users)), len(pageUsers)),
		}, nil
	})
}

func withoutNews(users []analytics.UserStat) []analytics.UserStat {
	out := users[:0]
	for _, u := range users {
		if u.Channel != model.ChannelNews {
			out = append(out, u)
		}
	}
	return out
}

func sortUsers(users []analytics.UserStat, order userOrder) {
	sort.SliceStable(users, func(i, j int) bool {
		a, b := users[i], users[j]
		if order == byFollowers && a.Followers != b.Followers {
			return a.Followers > b.Followers
		}
		if a.Mentions != b.Mentions {
			return a.Mentions > b.Mentions
		}
		return a.LinkUser < b.LinkUser
	})
}
