package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"

	"analytics-srv/internal/model"
	"analytics-srv/internal/post"
	"analytics-srv/internal/query"
	"analytics-srv/internal/topic"
	"analytics-srv/internal/topic/repository"
	"analytics-srv/pkg/sanitize"
	"analytics-srv/pkg/util"

	"github.com/tidwall/gjson"
)

// issueStat is the activity of one raw issue in the filtered window.
type issueStat struct {
	Issue     string
	Posts     int64
	Reach     float64
	Sentiment topic.Sentiment
}

func (uc *implUseCase) Clusters(ctx context.Context, input topic.ClustersInput) (topic.ClustersOutput, error) {
	if input.ProjectName == "" {
		return topic.ClustersOutput{}, topic.ErrProjectRequired
	}
	f := input.Filter.Normalize()
	if err := f.Validate(); err != nil {
		return topic.ClustersOutput{}, fmt.Errorf("%w: %w", topic.ErrInvalidFilter, err)
	}

	// 1. Raw issues of the window
	stats, total, err := uc.issues(ctx, f)
	if err != nil {
		return topic.ClustersOutput{}, err
	}
	if len(stats) == 0 {
		return topic.ClustersOutput{TotalPosts: total}, nil
	}
	names := make([]string, len(stats))
	for i, s := range stats {
		names[i] = s.Issue
	}

	// 2. Clusters that already own some of them
	clusters, err := uc.repo.List(ctx, repository.ListOptions{ProjectName: input.ProjectName, Issues: names})
	if err != nil {
		uc.l.Errorf(ctx, "topic.usecase.Clusters: repo.List failed: %v", err)
		return topic.ClustersOutput{}, wrapStore(err)
	}
	cold := false
	if len(clusters) == 0 {
		existing, err := uc.repo.List(ctx, repository.ListOptions{ProjectName: input.ProjectName, Size: 1})
		if err != nil {
			uc.l.Errorf(ctx, "topic.usecase.Clusters: repo.List failed: %v", err)
			return topic.ClustersOutput{}, wrapStore(err)
		}
		cold = len(existing) == 0
	}

	var pending []string
	var suggestions []string
	if cold {
		// 3a. Cold start: the model partitions the most active issues
		head := names[:min(len(names), uc.cfg.IssueLimit)]
		created, err := uc.generate(ctx, input.ProjectName, head)
		if err != nil {
			uc.l.Warnf(ctx, "topic.usecase.Clusters: cold start of %s failed: %v", input.ProjectName, err)
			pending = names
		} else {
			clusters = created
			pending = names[len(head):]
		}
	} else {
		// 3b. Warm: everything not owned yet is absorbed in the background
		owned := ownership(clusters)
		for _, n := range names {
			if _, ok := owned[n]; !ok {
				pending = append(pending, n)
			}
		}
	}
	for _, c := range clusters {
		suggestions = append(suggestions, c.UnifiedIssue)
	}

	// 4. Schedule absorption
	if len(pending) > 0 && (!cold || len(clusters) > 0) {
		job := topic.AbsorbInput{
			ProjectName: input.ProjectName,
			Issues:      pending,
			Suggestions: util.Dedupe(suggestions),
		}
		if err := uc.dispatcher.Dispatch(ctx, job); err != nil {
			uc.l.Warnf(ctx, "topic.usecase.Clusters: dispatch of %d issues failed: %v", len(pending), err)
		}
	}

	return topic.ClustersOutput{
		Topics:     aggregate(clusters, stats, total),
		TotalPosts: total,
		Pending:    len(pending),
		Cold:       cold,
	}, nil
}

// generate asks the model for a first partition of issues and persists it.
func (uc *implUseCase) generate(ctx context.Context, project string, issues []string) ([]model.TopicCluster, error) {
	reply, err := uc.gen.Generate(ctx, clusterPrompt(project, issues))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", topic.ErrGenerationFailed, err)
	}
	groups, err := parseGroups(reply, issues)
	if err != nil {
		return nil, err
	}
	docs := uc.plan(project, nil, groups)
	sum, err := uc.repo.Upsert(ctx, docs)
	if err != nil {
		return nil, wrapStore(err)
	}
	uc.l.Infof(ctx, "topic.usecase.generate: %s: %d clusters (created=%d failed=%d)", project, len(docs), sum.Created, sum.Failed)
	return docs, nil
}

func (uc *implUseCase) issues(ctx context.Context, f model.Filter) ([]issueStat, int64, error) {
	compiled := uc.compiler.Compile(f, query.Options{Aggs: query.M{query.AggIssues: query.IssueTerms(uc.cfg.FetchLimit)}})
	out, err := uc.posts.Search(ctx, post.SearchInput{Operation: "TopicIssues", Indices: compiled.Indices, Body: compiled.Body})
	if err != nil {
		uc.l.Errorf(ctx, "topic.usecase.issues: search failed: %v", err)
		return nil, 0, wrapStore(err)
	}
	var stats []issueStat
	for _, b := range out.Agg(query.AggIssues).Get("buckets").Array() {
		name := b.Get("key").String()
		if name == "" {
			continue
		}
		stats = append(stats, issueStat{
			Issue:     name,
			Posts:     b.Get("doc_count").Int(),
			Reach:     sanitize.Finite(b.Get(query.AggReach + ".value").Float()),
			Sentiment: sentimentOf(b),
		})
	}
	return stats, out.Total(), nil
}

func sentimentOf(b gjson.Result) topic.Sentiment {
	return topic.Sentiment{
		Positive: b.Get(query.AggPositive + ".doc_count").Int(),
		Negative: b.Get(query.AggNegative + ".doc_count").Int(),
		Neutral:  b.Get(query.AggNeutral + ".doc_count").Int(),
	}
}

// ownership maps every issue to the first cluster that lists it.
func ownership(clusters []model.TopicCluster) map[string]model.TopicCluster {
	owned := map[string]model.TopicCluster{}
	for _, c := range clusters {
		for _, i := range c.ListIssue {
			if _, ok := owned[i]; !ok {
				owned[i] = c
			}
		}
	}
	return owned
}

// aggregate rolls issue statistics up to unified labels. Split parts of a
// label count as one topic.
func aggregate(clusters []model.TopicCluster, stats []issueStat, total int64) []topic.TopicStat {
	owned := ownership(clusters)
	byLabel := map[string]*topic.TopicStat{}
	var order []string
	for _, s := range stats {
		c, ok := owned[s.Issue]
		if !ok {
			continue
		}
		t, ok := byLabel[c.UnifiedIssue]
		if !ok {
			t = &topic.TopicStat{Topic: c.UnifiedIssue, Description: c.Description}
			byLabel[c.UnifiedIssue] = t
			order = append(order, c.UnifiedIssue)
		}
		if !slices.Contains(t.ClusterIDs, c.UUID) {
			t.ClusterIDs = append(t.ClusterIDs, c.UUID)
		}
		t.Issues = append(t.Issues, s.Issue)
		t.Posts += s.Posts
		t.Reach += s.Reach
		t.Sentiment.Add(s.Sentiment)
	}

	out := make([]topic.TopicStat, 0, len(order))
	for _, label := range order {
		t := byLabel[label]
		t.ShareOfVoice = util.Round2(util.Percent(float64(t.Posts), float64(total)))
		out = append(out, *t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Posts > out[j].Posts })
	return out
}

func wrapStore(err error) error {
	if errors.Is(err, topic.ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", topic.ErrStoreUnavailable, err)
}
