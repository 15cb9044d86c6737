package usecase

import (
	"context"
	"fmt"
	"sort"

	"analytics-srv/internal/analytics"
	"analytics-srv/internal/cache"
	"analytics-srv/internal/query"
)

func (uc *implUseCase) PopularEmojis(ctx context.Context, input analytics.FilterInput) (analytics.EmojisOutput, error) {
	f, err := prepare(input.Filter)
	if err != nil {
		return analytics.EmojisOutput{}, err
	}
	key := cache.BuildKey(analytics.EndpointPopularEmojis, f.CacheParams())

	return cache.Through(ctx, uc.cache, key, uc.cfg.DefaultTTL, func(ctx context.Context) (analytics.EmojisOutput, error) {
		compiled := uc.compiler.Compile(f, query.Options{
			Shape: query.ResultShape{
				Size:   uc.cfg.EmojiSample,
				Sort:   query.SortRecent,
				Source: []string{query.FieldCaption},
			},
		})
		out, err := uc.search(ctx, "PopularEmojis", compiled)
		if err != nil {
			return analytics.EmojisOutput{}, err
		}

		counts := map[rune]int64{}
		for _, h := range out.Hits() {
			for _, r := range h.Get("_source." + query.FieldCaption).String() {
				if isEmoji(r) {
					counts[r]++
				}
			}
		}
		return analytics.EmojisOutput{Emojis: rankEmojis(counts, uc.cfg.EmojiLimit)}, nil
	})
}

func rankEmojis(counts map[rune]int64, limit int) []analytics.EmojiStat {
	out := make([]analytics.EmojiStat, 0, len(counts))
	for r, n := range counts {
		out = append(out, analytics.EmojiStat{
			Emoji:     string(r),
			Codepoint: fmt.Sprintf("U+%04X", r),
			Count:     n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Codepoint < out[j].Codepoint
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// isEmoji reports whether r is a pictographic codepoint. Modifiers, joiners
// and variation selectors are not counted on their own.
func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F3FB && r <= 0x1F3FF:
		return false
	case r >= 0x1F300 && r <= 0x1FAFF:
		return true
	case r >= 0x1F000 && r <= 0x1F2FF:
		return true
	case r >= 0x2600 && r <= 0x27BF:
		return true
	case r >= 0x2B05 && r <= 0x2B55:
		return true
	case r == 0x203C || r == 0x2049 || r == 0x2122 || r == 0x2139:
		return true
	case r >= 0x2194 && r <= 0x21AA:
		return true
	case r >= 0x231A && r <= 0x23FF:
		return true
	}
	return false
}
