package query

import "analytics-srv/internal/model"

// Aggregation names used by the catalog sub-trees and the decoders that read them.
const (
	AggSeries      = "series"
	AggReach       = "reach"
	AggViral       = "viral"
	AggSentiment   = "sentiment"
	AggPositive    = "positive"
	AggNegative    = "negative"
	AggNeutral     = "neutral"
	AggChannels    = "channels"
	AggUsers       = "users"
	AggFollowers   = "followers"
	AggSubscribers = "subscribers"
	AggConnections = "connections"
	AggInfluence   = "influence"
	AggImage       = "image"
	AggTopPosts    = "top_posts"
	AggInteraction = "interactions"
	AggHashtags    = "hashtags"
	AggIssues      = "issues"
	AggWords       = "words"
	AggDistinct    = "distinct"
	AggClusters    = "clusters"
)

// EngagementFields are summed by EngagementTotals.
var EngagementFields = []string{"likes", "comments", "shares", "retweets", "reposts", "replies", "favorites", "votes", "views"}

// interactionScript adds the counters that make up the unified interactions metric.
const interactionScript = `double t = 0;
for (String f : params.fields) {
  if (doc.containsKey(f) && doc[f].size() > 0) { t += (double) doc[f].value; }
}
return t;`

var interactionFields = []string{"likes", "comments", "shares", "retweets", "replies", "favorites", "votes"}

// TermsOrder orders a terms aggregation by key ("_count", "_key" or a sub-aggregation).
type TermsOrder struct {
	By  string
	Asc bool
}

func (o TermsOrder) node() M {
	if o.By == "" {
		return nil
	}
	dir := "desc"
	if o.Asc {
		dir = "asc"
	}
	return M{o.By: dir}
}

func terms(field string, size int, order TermsOrder) M {
	t := M{"field": field, "size": size}
	if n := order.node(); n != nil {
		t["order"] = n
	}
	return t
}

// SentimentBreakdown is terms(sentiment) plus one filter per sentiment value.
func SentimentBreakdown() M {
	return M{
		AggSentiment: M{"terms": M{"field": FieldSentiment, "size": len(model.AllSentiments)}},
		AggPositive:  sentimentFilter(model.SentimentPositive),
		AggNegative:  sentimentFilter(model.SentimentNegative),
		AggNeutral:   sentimentFilter(model.SentimentNeutral),
	}
}

func sentimentFilter(s string) M {
	return M{"filter": M{"term": M{FieldSentiment: s}}}
}

// TimeSeries is a calendar histogram with reach and sentiment per bucket.
// extra sub-aggregations are merged into every bucket.
func TimeSeries(field, interval string, rng DateRange, extra M) M {
	sub := M{
		AggReach:     M{"sum": M{"field": FieldReach}},
		AggSentiment: M{"terms": M{"field": FieldSentiment, "size": len(model.AllSentiments)}},
	}
	for k, v := range extra {
		sub[k] = v
	}
	return M{
		"date_histogram": M{
			"field":             field,
			"calendar_interval": interval,
			"format":            dateFmt,
			"min_doc_count":     0,
			"extended_bounds":   M{"min": rng.StartString(), "max": rng.EndString()},
		},
		"aggs": sub,
	}
}

// TopUsers is terms(channel) → terms(username) with profile and reach metrics.
func (c *Compiler) TopUsers(size int, order TermsOrder) M {
	return M{
		"terms": M{"field": FieldChannel, "size": len(model.AllChannels)},
		"aggs": M{
			AggUsers: M{
				"terms": terms(FieldUsername, size, order),
				"aggs": M{
					AggFollowers:   M{"max": M{"field": FieldFollowers}},
					AggSubscribers: M{"max": M{"field": FieldSubscriber}},
					AggConnections: M{"max": M{"field": FieldConnection}},
					AggInfluence:   M{"avg": M{"script": c.engine.SortScript()}},
					AggReach:       M{"sum": M{"field": FieldReach}},
					AggImage: M{"top_hits": M{
						"size":    1,
						"_source": M{"includes": []string{FieldUserImage}},
					}},
				},
			},
		},
	}
}

// ChannelBreakdown is terms(channel) with reach per bucket.
func ChannelBreakdown() M {
	return M{
		"terms": M{"field": FieldChannel, "size": len(model.AllChannels)},
		"aggs":  M{AggReach: M{"sum": M{"field": FieldReach}}},
	}
}

// EngagementTotals sums every engagement counter plus the interactions script.
func EngagementTotals() M {
	out := M{}
	for _, f := range EngagementFields {
		out[f] = M{"sum": M{"field": f}}
	}
	out[AggInteraction] = M{"sum": M{"script": M{
		"source": interactionScript,
		"lang":   "painless",
		"params": M{"fields": interactionFields},
	}}}
	out[AggReach] = M{"sum": M{"field": FieldReach}}
	return out
}

// HashtagTerms is terms(post_hashtags) with a sentiment breakdown per tag.
func HashtagTerms(size int, exclude []string) M {
	t := terms(FieldHashtags, size, TermsOrder{})
	if len(exclude) > 0 {
		t["exclude"] = exclude
	}
	return M{"terms": t, "aggs": SentimentBreakdown()}
}

// IssueRollup is terms(issue) with viral, reach, sentiment and two sample posts.
func IssueRollup(size int, order TermsOrder) M {
	sub := SentimentBreakdown()
	sub[AggViral] = M{"sum": M{"field": FieldViral}}
	sub[AggReach] = M{"sum": M{"field": FieldReach}}
	sub[AggTopPosts] = M{"top_hits": M{
		"size":    2,
		"_source": M{"includes": []string{FieldCaption, FieldLinkPost}},
	}}
	return M{"terms": terms(FieldIssue+rawSuffix, size, order), "aggs": sub}
}

// SignificantWords finds terms of the caption that stand out in the matched set.
func SignificantWords(size int) M {
	return M{
		"significant_text": M{
			"field":                 FieldCaption,
			"size":                  size,
			"filter_duplicate_text": true,
		},
		"aggs": SentimentBreakdown(),
	}
}

// SampledSignificantWords wraps SignificantWords in a sampler bounding the shard work.
func SampledSignificantWords(size, shardSize int) M {
	return M{
		"sampler": M{"shard_size": shardSize},
		"aggs":    M{AggWords: SignificantWords(size)},
	}
}

// Cardinality counts distinct values of field.
func Cardinality(field string) M {
	return M{"cardinality": M{"field": field}}
}

// ClusterTerms groups by the ingest-assigned cluster label.
func ClusterTerms(size int) M {
	sub := SentimentBreakdown()
	sub[AggReach] = M{"sum": M{"field": FieldReach}}
	sub[AggViral] = M{"sum": M{"field": FieldViral}}
	return M{"terms": terms(FieldCluster, size, TermsOrder{}), "aggs": sub}
}

// InfluenceAvg averages the computed influence score.
func (c *Compiler) InfluenceAvg() M {
	return M{"avg": M{"script": c.engine.SortScript()}}
}

// IssueTerms lists the most active issues with their stats, for topic clustering.
func IssueTerms(size int) M {
	sub := SentimentBreakdown()
	sub[AggReach] = M{"sum": M{"field": FieldReach}}
	return M{"terms": terms(FieldIssue+rawSuffix, size, TermsOrder{}), "aggs": sub}
}
