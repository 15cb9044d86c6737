package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"analytics-srv/internal/assistant"
	"analytics-srv/internal/model"
	"analytics-srv/internal/post"
	"analytics-srv/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type scriptedGen struct {
	strategy string
	query    string
	response string
	err      error
	prompts  []string
}

func (g *scriptedGen) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	switch {
	case strings.Contains(prompt, "Decide how to answer"):
		return g.strategy, nil
	case strings.Contains(prompt, "search request body"):
		return g.query, nil
	case strings.Contains(prompt, "from the data"):
		return g.response, nil
	}
	return "plain answer", nil
}

type fakePosts struct {
	post.UseCase
	raw     string
	errs    []error
	bodies  []string
	indices [][]string
}

func (p *fakePosts) Search(_ context.Context, in post.SearchInput) (post.SearchOutput, error) {
	b, _ := json.Marshal(in.Body)
	p.bodies = append(p.bodies, string(b))
	p.indices = append(p.indices, in.Indices)
	if len(p.errs) > 0 {
		err := p.errs[0]
		p.errs = p.errs[1:]
		if err != nil {
			return post.SearchOutput{}, err
		}
	}
	return post.SearchOutput{Raw: gjson.Parse(p.raw)}, nil
}

type memFeedback struct {
	saved []model.AIFeedback
	err   error
}

func (r *memFeedback) SaveFeedback(_ context.Context, fb model.AIFeedback) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.saved = append(r.saved, fb)
	return "fb-1", nil
}

const searchReply = `{
  "hits": {"total": {"value": 42}, "hits": [
    {"_index": "twitter_data", "_source": {"post_caption": "great launch", "sentiment": "positive"}},
    {"_index": "tiktok_data", "_source": {"post_caption": "meh", "sentiment": "neutral"}}
  ]},
  "aggregations": {"by_sentiment": {"buckets": [{"key": "positive", "doc_count": 30}]}}
}`

func newTestUseCase(gen *scriptedGen, posts *fakePosts, repo *memFeedback) *implUseCase {
	uc := New(log.NewNop(), posts, gen, repo, DefaultConfig()).(*implUseCase)
	uc.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	return uc
}

func drain(t *testing.T, ch <-chan assistant.Event) []assistant.Event {
	t.Helper()
	var out []assistant.Event
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-timeout:
			t.Fatal("stream did not close")
		}
	}
}

func steps(events []assistant.Event) []assistant.Step {
	out := make([]assistant.Step, len(events))
	for i, ev := range events {
		out[i] = ev.Step
	}
	return out
}

func TestAskStreamsStepsInOrder(t *testing.T) {
	gen := &scriptedGen{
		strategy: "```json\n" + `{"query_type": "both", "analysis_type": "sentiment", "parameters": {"keywords": ["launch"], "channels": "twitter"}}` + "\n```",
		query:    `{"query": {"term": {"sentiment.keyword": "positive"}}, "size": 5000}`,
		response: `{"components": [{"type": "text", "content": "Mostly positive."}, {"type": "table", "columns": ["a"], "rows": [["b"]]}, {"type": "video"}], "insights": ["30 positive posts"]}`,
	}
	posts := &fakePosts{raw: searchReply}
	uc := newTestUseCase(gen, posts, &memFeedback{})

	ch, err := uc.Ask(context.Background(), assistant.AskInput{Query: "How is the #launch received?"})
	require.NoError(t, err)
	events := drain(t, ch)

	assert.Equal(t, []assistant.Step{
		assistant.StepInit,
		assistant.StepAnalysis,
		assistant.StepStrategy,
		assistant.StepQueryGeneration,
		assistant.StepDataSearch,
		assistant.StepDataProcessing,
		assistant.StepResponseGeneration,
		assistant.StepCompleted,
	}, steps(events))

	prev := -1
	for _, ev := range events {
		assert.GreaterOrEqual(t, ev.Progress, prev, "progress of %s", ev.Step)
		prev = ev.Progress
	}
	assert.Equal(t, 100, events[len(events)-1].Progress)

	final := events[len(events)-1].Data.(map[string]any)["final_response"].(assistant.FinalResponse)
	assert.Equal(t, assistant.DataSource, final.DataSource)
	assert.Equal(t, int64(42), final.TotalHits)
	assert.Len(t, final.Components, 2)
	assert.Equal(t, []string{"30 positive posts"}, final.Insights)

	require.Len(t, posts.bodies, 1)
	body := gjson.Parse(posts.bodies[0])
	assert.Equal(t, "positive", body.Get("query.term.sentiment").String())
	assert.Equal(t, int64(100), body.Get("size").Int())
	assert.Equal(t, []string{"twitter_data"}, posts.indices[0])
}

func TestAskSurvivesMalformedReplies(t *testing.T) {
	gen := &scriptedGen{
		strategy: "I think you should search",
		query:    "not json at all",
		response: "Here is a summary in prose.",
	}
	posts := &fakePosts{raw: searchReply}
	uc := newTestUseCase(gen, posts, &memFeedback{})

	ch, err := uc.Ask(context.Background(), assistant.AskInput{Query: "anything", Keywords: []string{"brand, other"}})
	require.NoError(t, err)
	events := drain(t, ch)

	require.Equal(t, assistant.StepCompleted, events[len(events)-1].Step)
	assert.True(t, gjson.Get(posts.bodies[0], "query.match_all").Exists())
	assert.Len(t, posts.indices[0], len(model.AllChannels))

	strategy := events[2].Data.(assistant.Strategy)
	assert.Equal(t, assistant.QuerySearch, strategy.QueryType)
	assert.Equal(t, []string{"brand", "other"}, strategy.Parameters.Keywords)

	final := events[len(events)-1].Data.(map[string]any)["final_response"].(assistant.FinalResponse)
	require.Len(t, final.Components, 1)
	assert.Equal(t, "Here is a summary in prose.", final.Components[0]["content"])
}

func TestAskRetriesRejectedQuery(t *testing.T) {
	gen := &scriptedGen{
		strategy: `{"query_type": "search"}`,
		query:    `{"query": {"bogus": {}}}`,
		response: `{"components": [{"type": "text", "content": "ok"}]}`,
	}
	posts := &fakePosts{raw: searchReply, errs: []error{post.ErrBadQuery, nil}}
	uc := newTestUseCase(gen, posts, &memFeedback{})

	ch, err := uc.Ask(context.Background(), assistant.AskInput{Query: "q"})
	require.NoError(t, err)
	events := drain(t, ch)

	assert.Equal(t, assistant.StepCompleted, events[len(events)-1].Step)
	require.Len(t, posts.bodies, 2)
	assert.True(t, gjson.Get(posts.bodies[1], "query.match_all").Exists())
}

func TestAskGeneralQuestionShortCircuits(t *testing.T) {
	gen := &scriptedGen{strategy: `{"query_type": "general_question", "answer": "I analyze social media."}`}
	posts := &fakePosts{raw: searchReply}
	uc := newTestUseCase(gen, posts, &memFeedback{})

	ch, err := uc.Ask(context.Background(), assistant.AskInput{Query: "what can you do?"})
	require.NoError(t, err)
	events := drain(t, ch)

	assert.Equal(t, []assistant.Step{
		assistant.StepInit, assistant.StepAnalysis, assistant.StepStrategy, assistant.StepCompleted,
	}, steps(events))
	assert.Empty(t, posts.bodies)
	final := events[3].Data.(map[string]any)["final_response"].(assistant.FinalResponse)
	assert.Equal(t, "I analyze social media.", final.Components[0]["content"])
}

func TestAskErrorEvents(t *testing.T) {
	t.Run("generation", func(t *testing.T) {
		gen := &scriptedGen{err: errors.New("quota")}
		uc := newTestUseCase(gen, &fakePosts{}, &memFeedback{})

		ch, err := uc.Ask(context.Background(), assistant.AskInput{Query: "q"})
		require.NoError(t, err)
		events := drain(t, ch)

		last := events[len(events)-1]
		assert.Equal(t, assistant.StepError, last.Step)
		assert.Equal(t, assistant.Progress[assistant.StepAnalysis], last.Progress)
		assert.Equal(t, 300001, last.Data.(map[string]any)["error_code"])
	})

	t.Run("store", func(t *testing.T) {
		gen := &scriptedGen{strategy: `{"query_type": "search"}`, query: `{"query": {"match_all": {}}}`}
		posts := &fakePosts{errs: []error{post.ErrStoreUnavailable}}
		uc := newTestUseCase(gen, posts, &memFeedback{})

		ch, err := uc.Ask(context.Background(), assistant.AskInput{Query: "q"})
		require.NoError(t, err)
		events := drain(t, ch)

		last := events[len(events)-1]
		assert.Equal(t, assistant.StepError, last.Step)
		assert.Equal(t, 200001, last.Data.(map[string]any)["error_code"])
	})

	t.Run("empty query", func(t *testing.T) {
		uc := newTestUseCase(&scriptedGen{}, &fakePosts{}, &memFeedback{})
		_, err := uc.Ask(context.Background(), assistant.AskInput{Query: "  "})
		assert.ErrorIs(t, err, assistant.ErrQueryRequired)
	})
}

func TestAskStopsWhenClientLeaves(t *testing.T) {
	gen := &scriptedGen{strategy: `{"query_type": "search"}`, query: `{}`, response: `{}`}
	uc := newTestUseCase(gen, &fakePosts{raw: searchReply}, &memFeedback{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ch, err := uc.Ask(ctx, assistant.AskInput{Query: "q"})
	require.NoError(t, err)
	drain(t, ch)
}

func TestNormalizeKeywordFields(t *testing.T) {
	body := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(`{
		"query": {"bool": {"filter": [
			{"term": {"channel.keyword": "twitter"}},
			{"term": {"issue.keyword": "Pricing"}},
			{"match": {"post_caption.keyword": "x"}}
		]}},
		"aggs": {"by_user": {"terms": {"field": "username.keyword"}}, "by_issue": {"terms": {"field": "issue.keyword"}}}
	}`), &body))

	normalizeKeywordFields(body)
	b, _ := json.Marshal(body)
	r := gjson.ParseBytes(b)

	assert.Equal(t, "twitter", r.Get("query.bool.filter.0.term.channel").String())
	assert.Equal(t, "Pricing", r.Get(`query.bool.filter.1.term.issue\.keyword`).String())
	assert.True(t, r.Get(`query.bool.filter.2.match.post_caption\.keyword`).Exists())
	assert.Equal(t, "username", r.Get("aggs.by_user.terms.field").String())
	assert.Equal(t, "issue.keyword", r.Get("aggs.by_issue.terms.field").String())
}

func TestSaveFeedback(t *testing.T) {
	repo := &memFeedback{}
	uc := newTestUseCase(&scriptedGen{}, &fakePosts{}, repo)

	out, err := uc.SaveFeedback(context.Background(), assistant.FeedbackInput{
		QueryUser:    "why negative?",
		FeedbackUser: "helpful",
		UserName:     "ana",
		ProjectName:  "acme",
	})
	require.NoError(t, err)
	assert.Equal(t, "fb-1", out.ID)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, "acme", repo.saved[0].ProjectName)
	assert.False(t, repo.saved[0].Timestamp.IsZero())

	_, err = uc.SaveFeedback(context.Background(), assistant.FeedbackInput{QueryUser: "q"})
	assert.ErrorIs(t, err, assistant.ErrInvalidFeedback)

	repo.err = errors.New("down")
	_, err = uc.SaveFeedback(context.Background(), assistant.FeedbackInput{QueryUser: "q", FeedbackUser: "f"})
	assert.ErrorIs(t, err, assistant.ErrFeedbackUnavailable)
}

func TestValidReplyNeedsObject(t *testing.T) {
	assert.True(t, ValidReply("```json\n{\"query_type\": \"search\"}\n```"))
	assert.False(t, ValidReply("Jakarta floods dominate this week."))
	assert.False(t, ValidReply(`["a", "b"]`))
	assert.False(t, ValidReply(`{"query_type": `))
}
