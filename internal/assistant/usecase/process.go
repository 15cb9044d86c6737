package usecase

import (
	"strings"
	"unicode/utf8"

	"analytics-srv/internal/assistant"
	"analytics-srv/internal/post"
)

const maxCaption = 300

// process reduces a store reply to the first limit sources and the raw aggregation tree.
func process(res post.SearchOutput, limit int) assistant.Processed {
	p := assistant.Processed{
		Total: res.Total(),
		Hits:  []map[string]any{},
	}
	for i, h := range res.Hits() {
		if i == limit {
			break
		}
		src, ok := h.Get("_source").Value().(map[string]any)
		if !ok {
			continue
		}
		if c, ok := src["post_caption"].(string); ok {
			src["post_caption"] = truncate(c, maxCaption)
		}
		if idx := h.Get("_index").String(); idx != "" {
			src["channel_index"] = idx
		}
		p.Hits = append(p.Hits, src)
	}
	if aggs, ok := res.Raw.Get("aggregations").Value().(map[string]any); ok && len(aggs) > 0 {
		p.Aggregations = aggs
	}
	return p
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "…"
}

// cleanKeywords trims and dedupes the given keywords, adding hashtags and
// mentions written in the question.
func cleanKeywords(given []string, question string) []string {
	seen := map[string]bool{}
	out := []string{}
	add := func(k string) {
		k = strings.TrimSpace(k)
		if k == "" || seen[strings.ToLower(k)] {
			return
		}
		seen[strings.ToLower(k)] = true
		out = append(out, k)
	}
	for _, k := range given {
		for _, part := range strings.Split(k, ",") {
			add(part)
		}
	}
	for _, w := range strings.Fields(question) {
		w = strings.TrimRight(w, ".,!?;:")
		if len(w) > 1 && (w[0] == '#' || w[0] == '@') {
			add(w)
		}
	}
	return out
}
