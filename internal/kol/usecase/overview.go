package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"analytics-srv/internal/cache"
	"analytics-srv/internal/kol"
	"analytics-srv/internal/model"
	"analytics-srv/internal/post"
	"analytics-srv/internal/query"
	"analytics-srv/internal/scoring"
	"analytics-srv/pkg/util"

	"golang.org/x/sync/errgroup"
)

const endpoint = "kol-overview"

// columns are the source fields read per post. The counters feed the
// client-side influence score.
var columns = []string{
	query.FieldUsername, query.FieldChannel, query.FieldLinkPost, query.FieldIssue,
	query.FieldUserImage, query.FieldReach, query.FieldViral, query.FieldSentiment,
	query.FieldFollowers, query.FieldCreatedAt,
	"likes", "comments", "shares", "retweets", "reposts", "replies", "favorites", "votes", "views",
}

func (uc *implUseCase) Overview(ctx context.Context, input kol.OverviewInput) (kol.OverviewOutput, error) {
	f := input.Filter.Normalize()
	if err := f.Validate(); err != nil {
		return kol.OverviewOutput{}, fmt.Errorf("%w: %w", kol.ErrInvalidFilter, err)
	}
	limit := input.Limit
	if limit <= 0 {
		limit = uc.cfg.Limit
	}
	key := cache.BuildKey(endpoint, f.CacheParams(), map[string]string{
		"owner_id":     input.OwnerID,
		"project_name": input.ProjectName,
		"limit":        strconv.Itoa(limit),
	})

	return cache.Through(ctx, uc.cache, key, uc.cfg.TTL, func(ctx context.Context) (kol.OverviewOutput, error) {
		return uc.overview(ctx, f, input.ProjectName, limit)
	})
}

func (uc *implUseCase) overview(ctx context.Context, f model.Filter, project string, limit int) (kol.OverviewOutput, error) {
	// 1. Recent posts with the selected columns
	compiled := uc.compiler.Compile(f, query.Options{Shape: query.ResultShape{
		Size:   uc.cfg.SampleSize,
		Sort:   query.SortRecent,
		Source: columns,
	}})
	out, err := uc.posts.Search(ctx, post.SearchInput{Operation: "KOLOverview", Indices: compiled.Indices, Body: compiled.Body})
	if err != nil {
		uc.l.Errorf(ctx, "kol.usecase.Overview: search failed: %v", err)
		if errors.Is(err, post.ErrBadQuery) {
			return kol.OverviewOutput{}, fmt.Errorf("%w: %v", kol.ErrQueryFailed, err)
		}
		return kol.OverviewOutput{}, fmt.Errorf("%w: %v", kol.ErrStoreUnavailable, err)
	}
	hits := out.Hits()
	posts := make([]model.Post, 0, len(hits))
	for _, h := range hits {
		posts = append(posts, post.DecodeHit(h, uc.compiler.Engine(), uc.cfg.Location))
	}

	// 2-4. Group by account
	rows := group(posts)

	// 5. Replace raw issues with unified labels
	uc.relabel(ctx, project, rows)

	// 6. Share of voice
	for i := range rows {
		rows[i].ShareOfVoice = util.Round2(util.Percent(float64(rows[i].Posts), float64(len(posts))))
	}

	// 7. Negative drivers and most influential accounts
	return kol.OverviewOutput{Rows: pick(rows, limit), Sampled: len(posts)}, nil
}

type acc struct {
	row       kol.Row
	influence float64
	issues    []string
	seen      map[string]bool
}

// group aggregates posts per canonical account URL, keeping first-seen order.
func group(posts []model.Post) []kol.Row {
	byUser := map[string]*acc{}
	var order []string
	for _, p := range posts {
		k := p.LinkUser
		if k == "" {
			k = p.Channel + ":" + p.Username
		}
		a, ok := byUser[k]
		if !ok {
			a = &acc{
				row: kol.Row{
					LinkUser: p.LinkUser,
					Username: p.Username,
					Channel:  p.Channel,
					ImageURL: p.UserImageURL,
				},
				seen: map[string]bool{},
			}
			byUser[k] = a
			order = append(order, k)
		}
		a.row.Posts++
		a.row.Reach += p.ReachScore
		a.row.Viral += p.ViralScore
		a.row.Followers = max(a.row.Followers, p.UserFollowers)
		if a.row.ImageURL == "" {
			a.row.ImageURL = p.UserImageURL
		}
		a.influence += p.InfluenceScore
		switch p.Sentiment {
		case model.SentimentPositive:
			a.row.Sentiment.Positive++
		case model.SentimentNegative:
			a.row.Sentiment.Negative++
		case model.SentimentNeutral:
			a.row.Sentiment.Neutral++
		}
		if p.Issue != "" && !a.seen[p.Issue] {
			a.seen[p.Issue] = true
			a.issues = append(a.issues, p.Issue)
		}
	}

	rows := make([]kol.Row, 0, len(order))
	for _, k := range order {
		a := byUser[k]
		r := a.row
		r.Issues = a.issues
		r.Influence = util.Round2(scoring.ToUI(a.influence / float64(r.Posts)))
		s := r.Sentiment
		r.NegativeDriver = s.Negative > s.Positive && s.Negative > s.Neutral
		rows = append(rows, r)
	}
	return rows
}

// relabel swaps raw issues for their unified labels. Lookups run in parallel
// batches; a failed lookup keeps the raw issues.
func (uc *implUseCase) relabel(ctx context.Context, project string, rows []kol.Row) {
	if uc.topics == nil || project == "" {
		return
	}
	var issues []string
	for _, r := range rows {
		issues = append(issues, r.Issues...)
	}
	issues = util.Dedupe(issues)
	if len(issues) == 0 {
		return
	}

	var mu sync.Mutex
	labels := map[string]string{}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for start := 0; start < len(issues); start += uc.cfg.LabelBatch {
		batch := issues[start:min(start+uc.cfg.LabelBatch, len(issues))]
		g.Go(func() error {
			got, err := uc.topics.Labels(gctx, project, batch)
			if err != nil {
				return err
			}
			mu.Lock()
			for k, v := range got {
				labels[k] = v
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		uc.l.Warnf(ctx, "kol.usecase.relabel: topic lookup failed, keeping raw issues: %v", err)
		return
	}

	for i := range rows {
		var out []string
		for _, is := range rows[i].Issues {
			if l, ok := labels[is]; ok {
				is = l
			}
			out = append(out, is)
		}
		rows[i].Issues = util.Dedupe(out)
	}
}

// pick returns the top limit negative drivers (by negative count) followed by
// the top limit accounts by influence, without duplicates.
func pick(rows []kol.Row, limit int) []kol.Row {
	neg := append([]kol.Row{}, rows...)
	sort.SliceStable(neg, func(i, j int) bool {
		if neg[i].NegativeDriver != neg[j].NegativeDriver {
			return neg[i].NegativeDriver
		}
		return neg[i].Sentiment.Negative > neg[j].Sentiment.Negative
	})
	inf := append([]kol.Row{}, rows...)
	sort.SliceStable(inf, func(i, j int) bool { return inf[i].Influence > inf[j].Influence })

	seen := map[string]bool{}
	out := make([]kol.Row, 0, 2*limit)
	add := func(list []kol.Row) {
		for _, r := range list[:min(limit, len(list))] {
			k := r.LinkUser + "|" + r.Channel + "|" + r.Username
			if !seen[k] {
				seen[k] = true
				out = append(out, r)
			}
		}
	}
	add(neg)
	add(inf)
	return out
}
