package usecase

import (
	"context"
	"strconv"
	"strings"

	"analytics-srv/internal/analytics"
	"analytics-srv/internal/cache"
	"analytics-srv/internal/query"
	"analytics-srv/internal/scoring"
	"analytics-srv/pkg/util"
)

func (uc *implUseCase) KeywordTrends(ctx context.Context, input analytics.FilterInput) (analytics.TrendsOutput, error) {
	f, err := prepare(input.Filter)
	if err != nil {
		return analytics.TrendsOutput{}, err
	}
	key := cache.BuildKey(analytics.EndpointKeywordTrends, f.CacheParams())

	return cache.Through(ctx, uc.cache, key, uc.cfg.DefaultTTL, func(ctx context.Context) (analytics.TrendsOutput, error) {
		rng := uc.compiler.Clock().Resolve(f)
		compiled := uc.compiler.Compile(f, query.Options{
			Aggs: query.M{query.AggSeries: query.TimeSeries(query.FieldCreatedAt, analytics.IntervalDay, rng, nil)},
		})
		out, err := uc.search(ctx, "KeywordTrends", compiled)
		if err != nil {
			return analytics.TrendsOutput{}, err
		}
		return decodeTrends(out.Agg(query.AggSeries)), nil
	})
}

func normalizeInterval(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "day", "daily", "1d":
		return analytics.IntervalDay, true
	case "week", "weekly", "1w":
		return analytics.IntervalWeek, true
	case "month", "monthly", "1m":
		return analytics.IntervalMonth, true
	}
	return "", false
}

// topicsAgg is the per-issue presence breakdown used when comparing topics.
const topicsAgg = "topics"

func (uc *implUseCase) PresenceScore(ctx context.Context, input analytics.PresenceInput) (analytics.PresenceOutput, error) {
	f, err := prepare(input.Filter)
	if err != nil {
		return analytics.PresenceOutput{}, err
	}
	interval, ok := normalizeInterval(input.Interval)
	if !ok {
		return analytics.PresenceOutput{}, analytics.ErrInvalidParams
	}
	numTopics := input.NumTopicsToCompare
	if numTopics <= 0 {
		numTopics = 5
	}
	if !input.CompareWithTopics {
		numTopics = 0
	}
	key := cache.BuildKey(analytics.EndpointPresenceScore, f.CacheParams(), map[string]string{
		"interval":              interval,
		"compare_with_topics":   strconv.FormatBool(input.CompareWithTopics),
		"num_topics_to_compare": intParam(numTopics),
	})

	return cache.Through(ctx, uc.cache, key, uc.cfg.DefaultTTL, func(ctx context.Context) (analytics.PresenceOutput, error) {
		rng := uc.compiler.Clock().Resolve(f)
		influence := query.M{query.AggInfluence: uc.compiler.InfluenceAvg()}
		aggs := query.M{query.AggSeries: query.TimeSeries(query.FieldCreatedAt, interval, rng, influence)}
		if numTopics > 0 {
			aggs[topicsAgg] = query.M{
				"terms": query.M{"field": query.FieldIssue + ".keyword", "size": numTopics},
				"aggs": query.M{
					query.AggInfluence: uc.compiler.InfluenceAvg(),
					query.AggSeries:    query.TimeSeries(query.FieldCreatedAt, interval, rng, influence),
				},
			}
		}

		out, err := uc.search(ctx, "PresenceScore", uc.compiler.Compile(f, query.Options{Aggs: aggs}))
		if err != nil {
			return analytics.PresenceOutput{}, err
		}

		series := decodePresence(out.Agg(query.AggSeries))
		score := meanPresence(series)
		res := analytics.PresenceOutput{
			Interval: interval,
			Score:    score,
			Presence: util.Round2(scoring.ToUI(score)),
			Series:   series,
		}
		for _, b := range buckets(out.Agg(topicsAgg)) {
			ts := decodePresence(b.Get(query.AggSeries))
			s := value(b, query.AggInfluence)
			res.Topics = append(res.Topics, analytics.TopicPresence{
				Topic:    b.Get("key").String(),
				Mentions: b.Get("doc_count").Int(),
				Score:    s,
				Presence: util.Round2(scoring.ToUI(s)),
				Series:   ts,
			})
		}
		return res, nil
	})
}
