package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"analytics-srv/internal/analytics"
	"analytics-srv/internal/model"
	"analytics-srv/internal/post"
	"analytics-srv/internal/query"
	"analytics-srv/internal/scoring"
	"analytics-srv/pkg/log"
	"analytics-srv/pkg/paginator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

var today = time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC)

// fakePosts answers searches through respond and records every request.
type fakePosts struct {
	mu       sync.Mutex
	requests []post.SearchInput
	respond  func(body gjson.Result, indices []string) string
	err      error
}

func (f *fakePosts) Search(_ context.Context, in post.SearchInput) (post.SearchOutput, error) {
	f.mu.Lock()
	f.requests = append(f.requests, in)
	f.mu.Unlock()
	if f.err != nil {
		return post.SearchOutput{}, f.err
	}
	raw, _ := json.Marshal(in.Body)
	return post.SearchOutput{Raw: gjson.Parse(f.respond(gjson.ParseBytes(raw), in.Indices))}, nil
}

func (f *fakePosts) Count(context.Context, post.CountInput) (int64, error) { return 0, nil }

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memCache) Lookup(_ context.Context, key string, dest any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	return ok && json.Unmarshal(b, dest) == nil
}

func (m *memCache) Store(_ context.Context, key string, value any, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, _ := json.Marshal(value)
	m.data[key] = b
}

func newUseCase(posts *fakePosts) analytics.UseCase {
	engine := scoring.New([]string{"detik.com"})
	compiler := query.NewCompiler(engine, query.Clock{Now: func() time.Time { return today }}, query.Config{ImportanceThreshold: 50})
	return New(log.NewNop(), posts, nil, compiler, DefaultConfig())
}

func TestShareOfVoiceExcludesNews(t *testing.T) {
	posts := &fakePosts{respond: func(_ gjson.Result, indices []string) string {
		return `{
			"hits": {"total": {"value": 15}},
			"aggregations": {"channels": {"buckets": [
				{"key": "twitter", "doc_count": 15, "users": {"buckets": [
					{"key": "a", "doc_count": 10, "followers": {"value": 300}, "reach": {"value": 12.5}, "influence": {"value": 4.2},
					 "image": {"hits": {"hits": [{"_source": {"user_image_url": "https://img/a"}}]}}},
					{"key": "b", "doc_count": 5, "followers": {"value": 900}, "reach": {"value": null}}
				]}}
			]}}
		}`
	}}
	uc := newUseCase(posts)

	out, err := uc.ShareOfVoice(context.Background(), analytics.UsersInput{Filter: model.Filter{DateFilter: model.DateLast7Days}})
	require.NoError(t, err)

	require.Len(t, posts.requests, 1)
	assert.NotContains(t, posts.requests[0].Indices, "news_data")
	assert.Len(t, posts.requests[0].Indices, 8)

	require.Len(t, out.Users, 2)
	assert.Equal(t, "a", out.Users[0].Username)
	assert.Equal(t, 66.67, out.Users[0].ShareOfVoice)
	assert.Equal(t, "https://x.com/a", out.Users[0].LinkUser)
	assert.Equal(t, "https://img/a", out.Users[0].ImageURL)
	assert.Equal(t, 42.0, out.Users[0].Influence)
	assert.Equal(t, "b", out.Users[1].Username)
	assert.Equal(t, 33.33, out.Users[1].ShareOfVoice)
	assert.Equal(t, 0.0, out.Users[1].Reach)

	sum := 0.0
	for _, u := range out.Users {
		sum += u.ShareOfVoice
	}
	assert.LessOrEqual(t, sum, 100.0+1e-9)

	followers, err := uc.MostFollowers(context.Background(), analytics.UsersInput{})
	require.NoError(t, err)
	assert.Equal(t, "b", followers.Users[0].Username)
}

func TestUsersPagination(t *testing.T) {
	posts := &fakePosts{respond: func(gjson.Result, []string) string {
		var b strings.Builder
		for i := 0; i < 5; i++ {
			if i > 0 {
				b.WriteString(",")
			}
			fmt.Fprintf(&b, `{"key": "u%d", "doc_count": %d}`, i, 10-i)
		}
		return `{"hits":{"total":{"value":40}},"aggregations":{"channels":{"buckets":[{"key":"tiktok","users":{"buckets":[` + b.String() + `]}}]}}}`
	}}
	out, err := newUseCase(posts).ShareOfVoice(context.Background(), analytics.UsersInput{
		Paginate: paginator.PaginateQuery{Page: 2, Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, out.Users, 2)
	assert.Equal(t, "u2", out.Users[0].Username)
	assert.Equal(t, int64(5), out.Paginator.Total)
}

func TestPresenceScoreTikTokSeries(t *testing.T) {
	engine := scoring.New(nil)
	likes := []float64{10, 100, 1000}
	posts := &fakePosts{respond: func(body gjson.Result, _ []string) string {
		var b strings.Builder
		for i, l := range likes {
			if i > 0 {
				b.WriteString(",")
			}
			score := engine.Score(scoring.MapDoc{"channel": "tiktok", "likes": l, "comments": 0.0, "shares": 0.0})
			fmt.Fprintf(&b, `{"key_as_string": "2025-04-1%d", "doc_count": 1, "influence": {"value": %v}}`, 4+i, score)
		}
		return `{"hits":{"total":{"value":3}},"aggregations":{"series":{"buckets":[` + b.String() + `]}}}`
	}}
	uc := newUseCase(posts)

	out, err := uc.PresenceScore(context.Background(), analytics.PresenceInput{
		Filter: model.Filter{DateFilter: model.DateLast7Days, Channels: model.StringList{"tiktok"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"tiktok_data"}, posts.requests[0].Indices)
	assert.Equal(t, "day", out.Interval)
	require.Len(t, out.Series, 3)
	for i, l := range likes {
		want := math.Min(10, math.Log(1+l)/math.Log(501)*0.4*0.7*10)
		assert.InDelta(t, want, out.Series[i].Score, 1e-9)
		assert.LessOrEqual(t, out.Series[i].Score, 10.0)
	}
}

func TestPresenceScoreRejectsUnknownInterval(t *testing.T) {
	_, err := newUseCase(&fakePosts{}).PresenceScore(context.Background(), analytics.PresenceInput{Interval: "fortnight"})
	assert.ErrorIs(t, err, analytics.ErrInvalidParams)
}

func TestAnalysisOverviewComparesWindows(t *testing.T) {
	posts := &fakePosts{respond: func(body gjson.Result, _ []string) string {
		gte := body.Get("query.bool.must.0.range.post_created_at.gte").String()
		total := map[string]int{"2025-04-01": 100, "2025-03-22": 50}[gte]
		return fmt.Sprintf(`{"hits":{"total":{"value":%d}},"aggregations":{"positive":{"doc_count":%d},"distinct":{"value":7}}}`, total, total/2)
	}}
	uc := newUseCase(posts)

	out, err := uc.AnalysisOverview(context.Background(), analytics.FilterInput{Filter: model.Filter{
		DateFilter: model.DateCustom, CustomStartDate: "2025-04-01", CustomEndDate: "2025-04-10",
	}})
	require.NoError(t, err)
	assert.Len(t, posts.requests, 2)
	assert.Equal(t, "2025-03-22", out.PrevStartDate)
	assert.Equal(t, "2025-03-31", out.PrevEndDate)
	assert.Equal(t, 100.0, out.Mentions.Value)
	assert.Equal(t, 50.0, out.Mentions.Previous)
	assert.Equal(t, 50.0, out.Mentions.Delta)
	require.NotNil(t, out.Mentions.Pct)
	assert.Equal(t, 100.0, *out.Mentions.Pct)
	require.NotNil(t, out.Authors.Pct)
	assert.Equal(t, 0.0, *out.Authors.Pct)
	assert.Nil(t, out.Negative.Pct)
}

func TestInvalidFilterIsRejectedBeforeStore(t *testing.T) {
	posts := &fakePosts{}
	_, err := newUseCase(posts).KeywordTrends(context.Background(), analytics.FilterInput{Filter: model.Filter{
		DateFilter: model.DateCustom, CustomStartDate: "2025-05-01", CustomEndDate: "2025-04-01",
	}})
	assert.ErrorIs(t, err, analytics.ErrInvalidFilter)
	assert.ErrorIs(t, err, model.ErrInvalidFilter)
	assert.Empty(t, posts.requests)
}

func TestStoreFailureSurfaces(t *testing.T) {
	posts := &fakePosts{err: fmt.Errorf("%w: dial", post.ErrStoreUnavailable)}
	_, err := newUseCase(posts).KeywordTrends(context.Background(), analytics.FilterInput{})
	assert.ErrorIs(t, err, analytics.ErrStoreUnavailable)

	posts.err = fmt.Errorf("%w: parse", post.ErrBadQuery)
	_, err = newUseCase(posts).KeywordTrends(context.Background(), analytics.FilterInput{})
	assert.ErrorIs(t, err, analytics.ErrQueryFailed)
	assert.False(t, errors.Is(err, analytics.ErrStoreUnavailable))
}

func TestKeywordTrendsToleratesSparseBuckets(t *testing.T) {
	posts := &fakePosts{respond: func(gjson.Result, []string) string {
		return `{"aggregations":{"series":{"buckets":[
			{"key_as_string":"2025-04-19","doc_count":4,"reach":{"value":2.5},"sentiment":{"buckets":[{"key":"negative","doc_count":3}]}},
			{"key_as_string":"2025-04-20","doc_count":0},
			{"bogus": true}
		]}}}`
	}}
	out, err := newUseCase(posts).KeywordTrends(context.Background(), analytics.FilterInput{})
	require.NoError(t, err)
	require.Len(t, out.Series, 3)
	assert.Equal(t, int64(3), out.Series[0].Negative)
	assert.Equal(t, int64(4), out.TotalMentions)
	assert.Equal(t, 2.5, out.TotalReach)
}

func TestResponsesAreCached(t *testing.T) {
	posts := &fakePosts{respond: func(gjson.Result, []string) string {
		return `{"aggregations":{"links":{"buckets":[
			{"key":"https://www.youtube.com/watch?v=x","doc_count":2},
			{"key":"https://www.youtube.com/watch?v=y","doc_count":1},
			{"key":"https://www.reddit.com/r/foo/bar/baz","doc_count":1},
			{"key":"https://news.example.com/a/b/c","doc_count":1}
		]}}}`
	}}
	engine := scoring.New(nil)
	compiler := query.NewCompiler(engine, query.Clock{Now: func() time.Time { return today }}, query.Config{})
	uc := New(log.NewNop(), posts, &memCache{data: map[string][]byte{}}, compiler, DefaultConfig())

	out, err := uc.TrendingLinks(context.Background(), analytics.FilterInput{})
	require.NoError(t, err)
	require.Len(t, out.Links, 3)
	assert.Equal(t, analytics.LinkStat{Link: "https://www.youtube.com", Count: 3}, out.Links[0])
	assert.Contains(t, out.Links, analytics.LinkStat{Link: "https://www.reddit.com/r/foo/bar", Count: 1})
	assert.Contains(t, out.Links, analytics.LinkStat{Link: "https://news.example.com/a", Count: 1})

	again, err := uc.TrendingLinks(context.Background(), analytics.FilterInput{})
	require.NoError(t, err)
	assert.Equal(t, out, again)
	assert.Len(t, posts.requests, 1)
}

func TestTrendingHashtagsDropsBlacklist(t *testing.T) {
	posts := &fakePosts{respond: func(gjson.Result, []string) string {
		return `{"aggregations":{"hashtags":{"buckets":[
			{"key":"FYP","doc_count":50},
			{"key":"pemilu","doc_count":10,"positive":{"doc_count":2},"negative":{"doc_count":6},"neutral":{"doc_count":2}},
			{"key":"jakarta","doc_count":8,"positive":{"doc_count":8},"negative":{"doc_count":0},"neutral":{"doc_count":0}}
		]}}}`
	}}
	out, err := newUseCase(posts).TrendingHashtags(context.Background(), analytics.HashtagsInput{SortBy: "sentiment_percentage"})
	require.NoError(t, err)
	require.Len(t, out.Hashtags, 2)
	assert.Equal(t, "jakarta", out.Hashtags[0].Hashtag)
	assert.Equal(t, 100.0, out.Hashtags[0].SentimentPercentage)
	assert.Equal(t, "negative", out.Hashtags[1].Dominant)
	assert.Equal(t, 60.0, out.Hashtags[1].SentimentPercentage)
}

func TestPopularEmojis(t *testing.T) {
	posts := &fakePosts{respond: func(gjson.Result, []string) string {
		return `{"hits":{"hits":[
			{"_source":{"post_caption":"mantap 🔥🔥 👍🏽"}},
			{"_source":{"post_caption":"🔥 ok"}},
			{"_source":{}}
		]}}`
	}}
	out, err := newUseCase(posts).PopularEmojis(context.Background(), analytics.FilterInput{})
	require.NoError(t, err)
	require.Len(t, out.Emojis, 2)
	assert.Equal(t, analytics.EmojiStat{Emoji: "🔥", Codepoint: "U+1F525", Count: 3}, out.Emojis[0])
	assert.Equal(t, "U+1F44D", out.Emojis[1].Codepoint)
}

func TestListOfMentionsDecodesPosts(t *testing.T) {
	posts := &fakePosts{respond: func(body gjson.Result, _ []string) string {
		return `{"hits":{"total":{"value":31},"hits":[
			{"_id":"1","_index":"news_data","_source":{"link_post":"https://detik.com/x","post_created_at":"2025-04-19T08:00:00Z"}}
		]}}`
	}}
	out, err := newUseCase(posts).ListOfMentions(context.Background(), analytics.MentionsInput{
		SortType: "popular",
		Paginate: paginator.PaginateQuery{Page: 3, Limit: 10},
	})
	require.NoError(t, err)
	body, _ := json.Marshal(posts.requests[0].Body)
	assert.Equal(t, int64(20), gjson.GetBytes(body, "from").Int())
	assert.True(t, gjson.GetBytes(body, "sort.0._script").Exists())

	require.Len(t, out.Posts, 1)
	assert.Equal(t, "news", out.Posts[0].Channel)
	assert.InDelta(t, 8.0, out.Posts[0].InfluenceScore, 1e-12)
	assert.Equal(t, int64(31), out.Paginator.Total)

	_, err = newUseCase(posts).ListOfMentions(context.Background(), analytics.MentionsInput{SortType: "random"})
	assert.ErrorIs(t, err, analytics.ErrInvalidParams)
}

func TestMentionSentimentBreakdown(t *testing.T) {
	posts := &fakePosts{respond: func(gjson.Result, []string) string {
		return `{"hits":{"total":{"value":9}},"aggregations":{
			"positive":{"doc_count":4},"negative":{"doc_count":3},"neutral":{"doc_count":1},
			"channels":{"buckets":[{"key":"media","doc_count":9,"positive":{"doc_count":4},"negative":{"doc_count":3},"neutral":{"doc_count":1}}]}}}`
	}}
	out, err := newUseCase(posts).MentionSentimentBreakdown(context.Background(), analytics.FilterInput{})
	require.NoError(t, err)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, "news", out.Rows[0].Category)
	row := out.Rows[0]
	assert.LessOrEqual(t, row.Sentiment.Positive+row.Sentiment.Negative+row.Sentiment.Neutral, row.Total)
	assert.Equal(t, int64(9), out.Total.Total)
}

func TestContextOfDiscussionReadsSampledWords(t *testing.T) {
	posts := &fakePosts{respond: func(body gjson.Result, _ []string) string {
		assert.True(t, body.Get("aggs.sample.sampler").Exists())
		return `{"hits":{"total":{"value":30}},"aggregations":{"sample":{"words":{"buckets":[
			{"key":"banjir","doc_count":12,"score":1.5,"sentiment":{"buckets":[{"key":"negative","doc_count":8},{"key":"positive","doc_count":2}]}},
			{"key":"macet","doc_count":6,"score":0.4}
		]}}}}`
	}}
	out, err := newUseCase(posts).ContextOfDiscussion(context.Background(), analytics.FilterInput{})
	require.NoError(t, err)
	require.Len(t, out.Words, 2)
	assert.Equal(t, "banjir", out.Words[0].Word)
	assert.Equal(t, model.SentimentNegative, out.Words[0].Dominant)
	assert.Equal(t, int64(8), out.Words[0].Sentiment.Negative)
	assert.Equal(t, model.SentimentNeutral, out.Words[1].Dominant)
}

func TestTopicsClusterShares(t *testing.T) {
	posts := &fakePosts{respond: func(body gjson.Result, _ []string) string {
		assert.Equal(t, int64(3), body.Get("aggs.clusters.terms.size").Int())
		return `{"hits":{"total":{"value":40}},"aggregations":{"clusters":{"buckets":[
			{"key":"harga bbm","doc_count":30,"reach":{"value":120},"positive":{"doc_count":20},"negative":{"doc_count":5},"neutral":{"doc_count":5}},
			{"key":"cuaca","doc_count":10,"viral":{"value":2.5}}
		]}}}`
	}}
	out, err := newUseCase(posts).TopicsCluster(context.Background(), analytics.ClustersInput{ClusterSize: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(40), out.TotalMentions)
	require.Len(t, out.Clusters, 2)
	assert.Equal(t, 75.0, out.Clusters[0].ShareOfVoice)
	assert.Equal(t, 120.0, out.Clusters[0].Reach)
	assert.Equal(t, model.SentimentPositive, out.Clusters[0].Dominant)
	assert.Equal(t, 25.0, out.Clusters[1].ShareOfVoice)
	assert.Equal(t, 2.5, out.Clusters[1].Viral)
}
