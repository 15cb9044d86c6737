package analytics

import (
	"analytics-srv/internal/model"
	"analytics-srv/internal/period"
	"analytics-srv/pkg/paginator"
)

// Endpoint ids, also the cache key prefixes.
const (
	EndpointKeywordTrends       = "keyword-trends"
	EndpointContextOfDiscussion = "context-of-discussion"
	EndpointListOfMentions      = "list-of-mentions"
	EndpointAnalysisOverview    = "analysis-overview"
	EndpointSentimentBreakdown  = "mention-sentiment-breakdown"
	EndpointPresenceScore       = "presence-score"
	EndpointShareOfVoice        = "most-share-of-voice"
	EndpointMostFollowers       = "most-followers"
	EndpointTrendingHashtags    = "trending-hashtags"
	EndpointTrendingLinks       = "trending-links"
	EndpointPopularEmojis       = "popular-emojis"
	EndpointTopicsCluster       = "topics-cluster"
)

// Hashtag sort keys.
const (
	HashtagSortMentions  = "mentions"
	HashtagSortSentiment = "sentiment_percentage"
)

// HashtagBlacklist lists tags that trend everywhere and carry no topic.
var HashtagBlacklist = []string{"fyp", "fypシ", "foryou", "foryoupage", "capcut", "viral"}

type FilterInput struct {
	Filter model.Filter
}

// SentimentCounts is the positive/negative/neutral pivot of a bucket.
type SentimentCounts struct {
	Positive int64 `json:"positive"`
	Negative int64 `json:"negative"`
	Neutral  int64 `json:"neutral"`
}

// Dominant returns the sentiment with the most posts; ties and empty pivots are neutral.
func (s SentimentCounts) Dominant() string {
	switch {
	case s.Positive > s.Negative && s.Positive > s.Neutral:
		return model.SentimentPositive
	case s.Negative > s.Positive && s.Negative > s.Neutral:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

// Max returns the count of the dominant sentiment.
func (s SentimentCounts) Max() int64 {
	return max(s.Positive, s.Negative, s.Neutral)
}

type TrendPoint struct {
	Date     string
	Mentions int64
	Reach    float64
	SentimentCounts
}

type TrendsOutput struct {
	Series        []TrendPoint
	TotalMentions int64
	TotalReach    float64
}

type WordStat struct {
	Word      string
	Count     int64
	Score     float64
	Dominant  string
	Sentiment SentimentCounts
}

type ContextOutput struct {
	Words []WordStat
}

type MentionsInput struct {
	Filter    model.Filter
	SortType  string
	SortOrder string
	Paginate  paginator.PaginateQuery
}

type MentionsOutput struct {
	Posts     []model.Post
	Paginator paginator.Paginator
}

type ChannelStat struct {
	Channel  string
	Mentions int64
	Reach    float64
}

type OverviewOutput struct {
	StartDate     string
	EndDate       string
	PrevStartDate string
	PrevEndDate   string
	Mentions      period.Metric
	Reach         period.Metric
	Interactions  period.Metric
	Authors       period.Metric
	Positive      period.Metric
	Negative      period.Metric
	Neutral       period.Metric
	Engagement    map[string]period.Metric
	Channels      []ChannelStat
}

type SentimentRow struct {
	Category  string
	Total     int64
	Sentiment SentimentCounts
}

type BreakdownOutput struct {
	Rows  []SentimentRow
	Total SentimentRow
}

// Presence intervals.
const (
	IntervalDay   = "day"
	IntervalWeek  = "week"
	IntervalMonth = "month"
)

type PresenceInput struct {
	Filter             model.Filter
	Interval           string
	CompareWithTopics  bool
	NumTopicsToCompare int
}

// PresencePoint carries the mean influence of a bucket on the native scale
// (Score) and the presentation scale (Presence).
type PresencePoint struct {
	Date     string
	Mentions int64
	Score    float64
	Presence float64
}

type TopicPresence struct {
	Topic    string
	Mentions int64
	Score    float64
	Presence float64
	Series   []PresencePoint
}

type PresenceOutput struct {
	Interval string
	Score    float64
	Presence float64
	Series   []PresencePoint
	Topics   []TopicPresence
}

type UsersInput struct {
	Filter   model.Filter
	Limit    int
	Paginate paginator.PaginateQuery
}

type UserStat struct {
	Username     string
	Channel      string
	LinkUser     string
	ImageURL     string
	Mentions     int64
	ShareOfVoice float64
	Reach        float64
	Followers    float64
	Subscribers  float64
	Connections  float64
	Influence    float64
}

type UsersOutput struct {
	Users         []UserStat
	TotalMentions int64
	Paginator     paginator.Paginator
}

type HashtagsInput struct {
	Filter model.Filter
	SortBy string
	Limit  int
}

type HashtagStat struct {
	Hashtag             string
	Mentions            int64
	Dominant            string
	SentimentPercentage float64
	Sentiment           SentimentCounts
}

type HashtagsOutput struct {
	Hashtags []HashtagStat
}

type LinkStat struct {
	Link  string
	Count int64
}

type LinksOutput struct {
	Links []LinkStat
}

type EmojiStat struct {
	Emoji     string
	Codepoint string
	Count     int64
}

type EmojisOutput struct {
	Emojis []EmojiStat
}

type ClustersInput struct {
	Filter      model.Filter
	ClusterSize int
}

type ClusterStat struct {
	Cluster      string
	Mentions     int64
	Reach        float64
	Viral        float64
	ShareOfVoice float64
	Dominant     string
	Sentiment    SentimentCounts
}

type ClustersOutput struct {
	Clusters      []ClusterStat
	TotalMentions int64
}
