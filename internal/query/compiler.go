package query

import (
	"strings"

	"analytics-srv/internal/model"
	"analytics-srv/internal/scoring"
)

// M is one node of a store query tree.
type M = map[string]any

// Store fields the compiler targets.
const (
	FieldCreatedAt  = "post_created_at"
	FieldCaption    = "post_caption"
	FieldIssue      = "issue"
	FieldSentiment  = "sentiment"
	FieldChannel    = "channel"
	FieldUsername   = "username"
	FieldRegion     = "region"
	FieldLanguage   = "language"
	FieldLinkPost   = "link_post"
	FieldReach      = "reach_score"
	FieldViral      = "viral_score"
	FieldFollowers  = "user_followers"
	FieldHashtags   = "post_hashtags"
	FieldMediaLink  = "post_media_link"
	FieldUserImage  = "user_image_url"
	FieldSubscriber = "subscriber"
	FieldConnection = "user_connections"
	FieldCluster    = "cluster"

	rawSuffix = ".keyword"
	dateFmt   = "yyyy-MM-dd"
)

// Sort types accepted by hit-returning endpoints.
const (
	SortPopular    = "popular"
	SortRecent     = "recent"
	SortRelevant   = "relevant"
	SortTopProfile = "top_profile"
)

// ResultShape says whether hits come back and how they are ordered.
type ResultShape struct {
	Size   int
	From   int
	Sort   string
	Order  string
	Source []string
}

// Options are the per-endpoint switches of Compile.
type Options struct {
	ExcludeNews      bool
	RequireViral     bool
	RequireSentiment bool
	Shape            ResultShape
	Aggs             M
}

// Compiled is a ready-to-send search request.
type Compiled struct {
	Indices []string
	Range   DateRange
	Body    M
}

// Config tunes the compiler.
type Config struct {
	// ImportanceThreshold is the UI-scale influence floor of "important mentions".
	ImportanceThreshold float64
}

// Compiler turns filters into store query trees.
type Compiler struct {
	engine *scoring.Engine
	clock  Clock
	cfg    Config
}

// NewCompiler builds a Compiler.
func NewCompiler(engine *scoring.Engine, clock Clock, cfg Config) *Compiler {
	return &Compiler{engine: engine, clock: clock, cfg: cfg}
}

// Engine returns the scoring engine the compiler emits scripts from.
func (c *Compiler) Engine() *scoring.Engine { return c.engine }

// Clock returns the clock used to resolve named windows.
func (c *Compiler) Clock() Clock { return c.clock }

// Compile builds the request for f.
func (c *Compiler) Compile(f model.Filter, opts Options) Compiled {
	rng := c.clock.Resolve(f)
	body := M{
		"query":            c.boolQuery(f, rng, opts),
		"size":             opts.Shape.Size,
		"track_total_hits": true,
	}
	if opts.Shape.From > 0 {
		body["from"] = opts.Shape.From
	}
	if opts.Shape.Size > 0 {
		if s := c.sort(opts.Shape); s != nil {
			body["sort"] = s
		}
		if len(opts.Shape.Source) > 0 {
			body["_source"] = opts.Shape.Source
		}
	}
	if len(opts.Aggs) > 0 {
		body["aggs"] = opts.Aggs
	}
	return Compiled{
		Indices: Indices(f.Channels, opts.ExcludeNews),
		Range:   rng,
		Body:    body,
	}
}

// Indices maps channels to index names; no channels means every channel.
func Indices(channels []string, excludeNews bool) []string {
	if len(channels) == 0 {
		channels = model.AllChannels
	}
	seen := make(map[string]struct{}, len(channels))
	out := make([]string, 0, len(channels))
	for _, ch := range channels {
		ch = model.NormalizeChannel(ch)
		if excludeNews && ch == model.ChannelNews {
			continue
		}
		if _, ok := seen[ch]; ok {
			continue
		}
		seen[ch] = struct{}{}
		out = append(out, model.IndexName(ch))
	}
	return out
}

func (c *Compiler) boolQuery(f model.Filter, rng DateRange, opts Options) M {
	must := []any{RangeClause(rng)}
	if b := keywordBlock(f.Keywords, f); b != nil {
		must = append(must, b)
	}
	if b := keywordBlock(f.SearchKeyword, f); b != nil {
		must = append(must, b)
	}

	filter := []any{}
	if len(f.Sentiment) > 0 {
		filter = append(filter, M{"terms": M{FieldSentiment: []string(f.Sentiment)}})
	}
	if f.Important() {
		floor := scoring.FromUI(c.cfg.ImportanceThreshold)
		filter = append(filter, M{"script": M{"script": c.engine.FloorScript(floor)}})
	}
	if f.InfluenceScoreMin != nil || f.InfluenceScoreMax != nil {
		filter = append(filter, M{"script": M{"script": c.engine.BoundsScript(fromUI(f.InfluenceScoreMin), fromUI(f.InfluenceScoreMax))}})
	}
	for _, w := range []struct {
		field  string
		values []string
	}{
		{FieldRegion, f.Region},
		{FieldLanguage, f.Language},
		{FieldLinkPost, f.Domain},
	} {
		if b := wildcardAny(w.field, w.values); b != nil {
			filter = append(filter, b)
		}
	}
	if opts.RequireViral {
		filter = append(filter, M{"exists": M{"field": FieldViral}})
	}
	if opts.RequireSentiment {
		filter = append(filter, M{"exists": M{"field": FieldSentiment}})
	}

	b := M{"must": must}
	if len(filter) > 0 {
		b["filter"] = filter
	}
	return M{"bool": b}
}

// RangeClause is the window predicate on post_created_at.
func RangeClause(rng DateRange) M {
	return M{"range": M{FieldCreatedAt: M{
		"gte":    rng.StartString(),
		"lte":    rng.EndString(),
		"format": dateFmt,
	}}}
}

// keywordBlock ORs every keyword over caption and issue.
func keywordBlock(keywords []string, f model.Filter) M {
	if len(keywords) == 0 {
		return nil
	}
	should := make([]any, 0, 2*len(keywords))
	for _, kw := range keywords {
		for _, field := range []string{FieldCaption, FieldIssue} {
			should = append(should, keywordClause(field, kw, f))
		}
	}
	return M{"bool": M{"should": should, "minimum_should_match": 1}}
}

// keywordClause matches kw on field. Case-sensitive matching runs on the raw
// sub-field: the whole phrase as a substring, or every token as a substring.
// Raw values longer than the mapping's ignore_above are not indexed there.
func keywordClause(field, kw string, f model.Filter) M {
	switch {
	case f.CaseSensitive:
		raw := field + rawSuffix
		tokens := strings.Fields(kw)
		if f.SearchExactPhrases || len(tokens) < 2 {
			return M{"wildcard": M{raw: M{"value": Contains(kw)}}}
		}
		must := make([]any, 0, len(tokens))
		for _, t := range tokens {
			must = append(must, M{"wildcard": M{raw: M{"value": Contains(t)}}})
		}
		return M{"bool": M{"must": must}}
	case f.SearchExactPhrases:
		return M{"match_phrase": M{field: kw}}
	default:
		return M{"match": M{field: M{"query": kw, "operator": "and"}}}
	}
}

// wildcardAny ORs case-insensitive "*value*" patterns on field.
func wildcardAny(field string, values []string) M {
	if len(values) == 0 {
		return nil
	}
	should := make([]any, 0, len(values))
	for _, v := range values {
		should = append(should, M{"wildcard": M{field: M{"value": Contains(v), "case_insensitive": true}}})
	}
	return M{"bool": M{"should": should, "minimum_should_match": 1}}
}

func (c *Compiler) sort(s ResultShape) []any {
	order := s.Order
	if order != "asc" {
		order = "desc"
	}
	switch s.Sort {
	case SortPopular:
		return []any{M{"_script": M{"type": "number", "script": c.engine.SortScript(), "order": order}}}
	case SortRecent:
		return []any{M{FieldCreatedAt: M{"order": order}}}
	case SortRelevant:
		return []any{M{"_score": M{"order": order}}}
	case SortTopProfile:
		return []any{M{FieldFollowers: M{"order": order, "unmapped_type": "long"}}}
	}
	return nil
}

func fromUI(v *float64) *float64 {
	if v == nil {
		return nil
	}
	x := scoring.FromUI(*v)
	return &x
}
