package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"analytics-srv/internal/kol"
	"analytics-srv/internal/model"
	"analytics-srv/internal/post"
	"analytics-srv/internal/query"
	"analytics-srv/internal/scoring"
	"analytics-srv/internal/topic"
	"analytics-srv/pkg/log"
	"analytics-srv/pkg/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type fakePosts struct {
	hits string
	err  error
	body gjson.Result
}

func (f *fakePosts) Search(_ context.Context, in post.SearchInput) (post.SearchOutput, error) {
	raw, _ := json.Marshal(in.Body)
	f.body = gjson.ParseBytes(raw)
	if f.err != nil {
		return post.SearchOutput{}, f.err
	}
	return post.SearchOutput{Raw: gjson.Parse(`{"hits":{"total":{"value":6},"hits":` + f.hits + `}}`)}, nil
}

func (f *fakePosts) Count(context.Context, post.CountInput) (int64, error) { return 0, nil }

type fakeTopics struct {
	topic.UseCase
	labels map[string]string
	err    error
}

func (f fakeTopics) Labels(_ context.Context, _ string, issues []string) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := map[string]string{}
	for _, i := range issues {
		if l, ok := f.labels[i]; ok {
			out[i] = l
		}
	}
	return out, nil
}

const hits = `[
	{"_id": "1", "_source": {"channel": "twitter", "username": "@alice", "issue": "fuel price", "sentiment": "negative", "likes": 100, "reach_score": 2, "viral_score": 1, "user_followers": 500}},
	{"_id": "2", "_source": {"channel": "twitter", "username": "alice", "issue": "fuel subsidy", "sentiment": "negative", "likes": 10, "reach_score": 1, "user_followers": 700}},
	{"_id": "3", "_source": {"channel": "twitter", "username": "alice", "issue": "fuel price", "sentiment": "positive", "likes": 1}},
	{"_id": "4", "_source": {"channel": "tiktok", "username": "bob", "issue": "roads", "sentiment": "positive", "likes": 100000, "comments": 5000, "shares": 2000}},
	{"_id": "5", "_source": {"channel": "tiktok", "username": "bob", "issue": "roads", "sentiment": "neutral", "likes": 50000}},
	{"_id": "6", "_source": {"channel": "instagram", "username": "carol", "sentiment": "neutral", "likes": 3}}
]`

func newUC(posts post.UseCase, topics topic.UseCase) kol.UseCase {
	compiler := query.NewCompiler(scoring.New(nil), query.Clock{Now: func() time.Time {
		return time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC)
	}}, query.Config{ImportanceThreshold: 50})
	return New(log.NewNop(), posts, topics, nil, compiler, DefaultConfig())
}

func TestOverview(t *testing.T) {
	posts := &fakePosts{hits: hits}
	topics := fakeTopics{labels: map[string]string{"fuel price": "Fuel", "fuel subsidy": "Fuel"}}
	uc := newUC(posts, topics)

	out, err := uc.Overview(context.Background(), kol.OverviewInput{ProjectName: "p1", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 6, out.Sampled)

	// Sample request shape
	assert.Equal(t, int64(1000), posts.body.Get("size").Int())
	assert.True(t, posts.body.Get("sort.0.post_created_at").Exists())
	assert.True(t, posts.body.Get(`_source.#(=="likes")`).Exists())

	require.Len(t, out.Rows, 2)

	alice := out.Rows[0]
	assert.Equal(t, "https://x.com/alice", alice.LinkUser)
	assert.Equal(t, int64(3), alice.Posts)
	assert.Equal(t, kol.Sentiment{Positive: 1, Negative: 2}, alice.Sentiment)
	assert.True(t, alice.NegativeDriver)
	assert.Equal(t, []string{"Fuel"}, alice.Issues)
	assert.Equal(t, 3.0, alice.Reach)
	assert.Equal(t, 700.0, alice.Followers)
	assert.Equal(t, 50.0, alice.ShareOfVoice)

	bob := out.Rows[1]
	assert.Equal(t, "https://www.tiktok.com/@bob", bob.LinkUser)
	assert.False(t, bob.NegativeDriver)
	assert.Equal(t, []string{"roads"}, bob.Issues)

	engine := scoring.New(nil)
	var sum float64
	for _, h := range gjson.Parse(hits).Array()[3:5] {
		sum += post.DecodeHit(h, engine, time.UTC).InfluenceScore
	}
	assert.Equal(t, util.Round2(scoring.ToUI(sum/2)), bob.Influence)
	assert.Greater(t, bob.Influence, alice.Influence)
}

func TestOverviewKeepsRawIssuesWhenTopicsFail(t *testing.T) {
	uc := newUC(&fakePosts{hits: hits}, fakeTopics{err: errors.New("down")})

	out, err := uc.Overview(context.Background(), kol.OverviewInput{ProjectName: "p1", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"fuel price", "fuel subsidy"}, out.Rows[0].Issues)
}

func TestOverviewErrors(t *testing.T) {
	uc := newUC(&fakePosts{err: post.ErrStoreUnavailable}, nil)
	_, err := uc.Overview(context.Background(), kol.OverviewInput{})
	assert.ErrorIs(t, err, kol.ErrStoreUnavailable)

	_, err = uc.Overview(context.Background(), kol.OverviewInput{Filter: model.Filter{Sentiment: model.StringList{"angry"}}})
	assert.ErrorIs(t, err, kol.ErrInvalidFilter)
}

func TestPickDeduplicates(t *testing.T) {
	rows := []kol.Row{
		{LinkUser: "a", Influence: 9, NegativeDriver: true, Sentiment: kol.Sentiment{Negative: 5}},
		{LinkUser: "b", Influence: 1},
		{LinkUser: "c", Influence: 5, NegativeDriver: true, Sentiment: kol.Sentiment{Negative: 2}},
	}
	got := pick(rows, 2)
	var links []string
	for _, r := range got {
		links = append(links, r.LinkUser)
	}
	assert.Equal(t, []string{"a", "c"}, links)
}
