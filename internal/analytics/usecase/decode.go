package usecase

import (
	"sort"
	"strings"

	"analytics-srv/internal/analytics"
	"analytics-srv/internal/model"
	"analytics-srv/internal/query"
	"analytics-srv/internal/scoring"
	"analytics-srv/pkg/sanitize"
	"analytics-srv/pkg/util"

	"github.com/tidwall/gjson"
)

// Decoders read aggregation trees path-wise. Missing buckets and values
// decode as zero, so a sparse reply never fails the endpoint.

func buckets(r gjson.Result) []gjson.Result {
	return r.Get("buckets").Array()
}

func value(b gjson.Result, agg string) float64 {
	return sanitize.Finite(b.Get(agg + ".value").Float())
}

// sentimentOf reads the per-sentiment filter sub-aggregations of a bucket,
// falling back to the sentiment terms sub-aggregation.
func sentimentOf(b gjson.Result) analytics.SentimentCounts {
	if b.Get(query.AggPositive).Exists() || b.Get(query.AggNegative).Exists() || b.Get(query.AggNeutral).Exists() {
		return analytics.SentimentCounts{
			Positive: b.Get(query.AggPositive + ".doc_count").Int(),
			Negative: b.Get(query.AggNegative + ".doc_count").Int(),
			Neutral:  b.Get(query.AggNeutral + ".doc_count").Int(),
		}
	}
	return sentimentTerms(b.Get(query.AggSentiment))
}

func sentimentTerms(agg gjson.Result) analytics.SentimentCounts {
	var s analytics.SentimentCounts
	for _, b := range buckets(agg) {
		switch b.Get("key").String() {
		case model.SentimentPositive:
			s.Positive = b.Get("doc_count").Int()
		case model.SentimentNegative:
			s.Negative = b.Get("doc_count").Int()
		case model.SentimentNeutral:
			s.Neutral = b.Get("doc_count").Int()
		}
	}
	return s
}

func bucketDate(b gjson.Result) string {
	if s := b.Get("key_as_string").String(); s != "" {
		return s
	}
	return b.Get("key").String()
}

func decodeTrends(agg gjson.Result) analytics.TrendsOutput {
	var out analytics.TrendsOutput
	for _, b := range buckets(agg) {
		p := analytics.TrendPoint{
			Date:            bucketDate(b),
			Mentions:        b.Get("doc_count").Int(),
			Reach:           value(b, query.AggReach),
			SentimentCounts: sentimentTerms(b.Get(query.AggSentiment)),
		}
		out.TotalMentions += p.Mentions
		out.TotalReach += p.Reach
		out.Series = append(out.Series, p)
	}
	return out
}

func decodePresence(agg gjson.Result) []analytics.PresencePoint {
	series := make([]analytics.PresencePoint, 0)
	for _, b := range buckets(agg) {
		score := 0.0
		if b.Get("doc_count").Int() > 0 {
			score = value(b, query.AggInfluence)
		}
		series = append(series, analytics.PresencePoint{
			Date:     bucketDate(b),
			Mentions: b.Get("doc_count").Int(),
			Score:    score,
			Presence: util.Round2(scoring.ToUI(score)),
		})
	}
	return series
}

// meanPresence is the mention-weighted mean score of a series.
func meanPresence(series []analytics.PresencePoint) float64 {
	var total, weighted float64
	for _, p := range series {
		total += float64(p.Mentions)
		weighted += p.Score * float64(p.Mentions)
	}
	if total == 0 {
		return 0
	}
	return weighted / total
}

// decodeUsers flattens terms(channel) → terms(username) into user rows.
func decodeUsers(agg gjson.Result, total int64) []analytics.UserStat {
	users := make([]analytics.UserStat, 0)
	for _, ch := range buckets(agg) {
		channel := model.NormalizeChannel(ch.Get("key").String())
		for _, u := range buckets(ch.Get(query.AggUsers)) {
			name := u.Get("key").String()
			mentions := u.Get("doc_count").Int()
			users = append(users, analytics.UserStat{
				Username:     name,
				Channel:      channel,
				LinkUser:     model.UserURL(channel, name),
				ImageURL:     u.Get(query.AggImage + ".hits.hits.0._source." + query.FieldUserImage).String(),
				Mentions:     mentions,
				ShareOfVoice: util.Round2(util.Percent(float64(mentions), float64(total))),
				Reach:        value(u, query.AggReach),
				Followers:    value(u, query.AggFollowers),
				Subscribers:  value(u, query.AggSubscribers),
				Connections:  value(u, query.AggConnections),
				Influence:    util.Round2(scoring.ToUI(value(u, query.AggInfluence))),
			})
		}
	}
	return users
}

func decodeChannels(agg gjson.Result) []analytics.ChannelStat {
	out := make([]analytics.ChannelStat, 0)
	for _, b := range buckets(agg) {
		out = append(out, analytics.ChannelStat{
			Channel:  model.NormalizeChannel(b.Get("key").String()),
			Mentions: b.Get("doc_count").Int(),
			Reach:    value(b, query.AggReach),
		})
	}
	return out
}

func decodeHashtags(agg gjson.Result) []analytics.HashtagStat {
	out := make([]analytics.HashtagStat, 0)
	for _, b := range buckets(agg) {
		tag := b.Get("key").String()
		if blacklisted(tag) {
			continue
		}
		s := sentimentOf(b)
		mentions := b.Get("doc_count").Int()
		out = append(out, analytics.HashtagStat{
			Hashtag:             tag,
			Mentions:            mentions,
			Dominant:            s.Dominant(),
			SentimentPercentage: util.Round2(util.Percent(float64(s.Max()), float64(mentions))),
			Sentiment:           s,
		})
	}
	return out
}

func decodeWords(agg gjson.Result) []analytics.WordStat {
	out := make([]analytics.WordStat, 0)
	for _, b := range buckets(agg) {
		s := sentimentOf(b)
		out = append(out, analytics.WordStat{
			Word:      b.Get("key").String(),
			Count:     b.Get("doc_count").Int(),
			Score:     sanitize.Finite(b.Get("score").Float()),
			Dominant:  s.Dominant(),
			Sentiment: s,
		})
	}
	return out
}

func decodeClusters(agg gjson.Result, total int64) []analytics.ClusterStat {
	out := make([]analytics.ClusterStat, 0)
	for _, b := range buckets(agg) {
		s := sentimentOf(b)
		mentions := b.Get("doc_count").Int()
		out = append(out, analytics.ClusterStat{
			Cluster:      b.Get("key").String(),
			Mentions:     mentions,
			Reach:        value(b, query.AggReach),
			Viral:        value(b, query.AggViral),
			ShareOfVoice: util.Round2(util.Percent(float64(mentions), float64(total))),
			Dominant:     s.Dominant(),
			Sentiment:    s,
		})
	}
	return out
}

// decodeLinks normalizes every link bucket and sums counts per normalized link.
func decodeLinks(agg gjson.Result, limit int) []analytics.LinkStat {
	counts := map[string]int64{}
	for _, b := range buckets(agg) {
		link := model.NormalizeLink(b.Get("key").String())
		if link == "" {
			continue
		}
		counts[link] += b.Get("doc_count").Int()
	}
	out := make([]analytics.LinkStat, 0, len(counts))
	for link, n := range counts {
		out = append(out, analytics.LinkStat{Link: link, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Link < out[j].Link
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func blacklisted(tag string) bool {
	for _, b := range analytics.HashtagBlacklist {
		if strings.EqualFold(strings.TrimPrefix(tag, "#"), b) {
			return true
		}
	}
	return false
}
