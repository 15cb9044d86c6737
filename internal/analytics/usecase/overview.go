package usecase

import (
	"context"

	"analytics-srv/internal/analytics"
	"analytics-srv/internal/cache"
	"analytics-srv/internal/model"
	"analytics-srv/internal/period"
	"analytics-srv/internal/query"
)

// snapshot holds the scalar metrics of one window.
type snapshot struct {
	Mentions     float64
	Reach        float64
	Interactions float64
	Authors      float64
	Sentiment    analytics.SentimentCounts
	Engagement   map[string]float64
	Channels     []analytics.ChannelStat
}

func (uc *implUseCase) overviewSnapshot(ctx context.Context, f model.Filter) (snapshot, error) {
	aggs := query.EngagementTotals()
	for k, v := range query.SentimentBreakdown() {
		aggs[k] = v
	}
	aggs[query.AggChannels] = query.ChannelBreakdown()
	aggs[query.AggDistinct] = query.Cardinality(query.FieldUsername)

	out, err := uc.search(ctx, "AnalysisOverview", uc.compiler.Compile(f, query.Options{Aggs: aggs}))
	if err != nil {
		return snapshot{}, err
	}
	root := out.Raw.Get("aggregations")
	s := snapshot{
		Mentions:     float64(out.Total()),
		Reach:        value(root, query.AggReach),
		Interactions: value(root, query.AggInteraction),
		Authors:      value(root, query.AggDistinct),
		Sentiment:    sentimentOf(root),
		Engagement:   make(map[string]float64, len(query.EngagementFields)),
		Channels:     decodeChannels(root.Get(query.AggChannels)),
	}
	for _, field := range query.EngagementFields {
		s.Engagement[field] = value(root, field)
	}
	return s, nil
}

func (uc *implUseCase) AnalysisOverview(ctx context.Context, input analytics.FilterInput) (analytics.OverviewOutput, error) {
	f, err := prepare(input.Filter)
	if err != nil {
		return analytics.OverviewOutput{}, err
	}
	key := cache.BuildKey(analytics.EndpointAnalysisOverview, f.CacheParams())

	return cache.Through(ctx, uc.cache, key, uc.cfg.DefaultTTL, func(ctx context.Context) (analytics.OverviewOutput, error) {
		clock := uc.compiler.Clock()
		_, _, curRange, prevRange := period.Windows(clock, f)
		cur, prev, err := period.Run(ctx, clock, f, uc.overviewSnapshot)
		if err != nil {
			return analytics.OverviewOutput{}, err
		}

		res := analytics.OverviewOutput{
			StartDate:     curRange.StartString(),
			EndDate:       curRange.EndString(),
			PrevStartDate: prevRange.StartString(),
			PrevEndDate:   prevRange.EndString(),
			Mentions:      period.Compare(cur.Mentions, prev.Mentions),
			Reach:         period.Compare(cur.Reach, prev.Reach),
			Interactions:  period.Compare(cur.Interactions, prev.Interactions),
			Authors:       period.Compare(cur.Authors, prev.Authors),
			Positive:      period.Compare(float64(cur.Sentiment.Positive), float64(prev.Sentiment.Positive)),
			Negative:      period.Compare(float64(cur.Sentiment.Negative), float64(prev.Sentiment.Negative)),
			Neutral:       period.Compare(float64(cur.Sentiment.Neutral), float64(prev.Sentiment.Neutral)),
			Engagement:    make(map[string]period.Metric, len(cur.Engagement)),
			Channels:      cur.Channels,
		}
		for field, v := range cur.Engagement {
			res.Engagement[field] = period.Compare(v, prev.Engagement[field])
		}
		return res, nil
	})
}

func (uc *implUseCase) MentionSentimentBreakdown(ctx context.Context, input analytics.FilterInput) (analytics.BreakdownOutput, error) {
	f, err := prepare(input.Filter)
	if err != nil {
		return analytics.BreakdownOutput{}, err
	}
	key := cache.BuildKey(analytics.EndpointSentimentBreakdown, f.CacheParams())

	return cache.Through(ctx, uc.cache, key, uc.cfg.DefaultTTL, func(ctx context.Context) (analytics.BreakdownOutput, error) {
		aggs := query.M{query.AggChannels: query.M{
			"terms": query.M{"field": query.FieldChannel, "size": len(model.AllChannels)},
			"aggs":  query.SentimentBreakdown(),
		}}
		for k, v := range query.SentimentBreakdown() {
			aggs[k] = v
		}

		out, err := uc.search(ctx, "MentionSentimentBreakdown", uc.compiler.Compile(f, query.Options{Aggs: aggs}))
		if err != nil {
			return analytics.BreakdownOutput{}, err
		}
		res := analytics.BreakdownOutput{
			Rows: make([]analytics.SentimentRow, 0),
			Total: analytics.SentimentRow{
				Category:  "all",
				Total:     out.Total(),
				Sentiment: sentimentOf(out.Raw.Get("aggregations")),
			},
		}
		for _, b := range buckets(out.Agg(query.AggChannels)) {
			res.Rows = append(res.Rows, analytics.SentimentRow{
				Category:  model.NormalizeChannel(b.Get("key").String()),
				Total:     b.Get("doc_count").Int(),
				Sentiment: sentimentOf(b),
			})
		}
		return res, nil
	})
}
