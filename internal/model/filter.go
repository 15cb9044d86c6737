package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date filters.
const (
	DateYesterday     = "yesterday"
	DateThisWeek      = "this week"
	DateLast7Days     = "last 7 days"
	DateLast14Days    = "last 14 days"
	DateLast30Days    = "last 30 days"
	DateLast3Months   = "last 3 months"
	DateThisYear      = "this year"
	DateLastYear      = "last year"
	DateCustom        = "custom"
	DateAllTime       = "all time"
	DefaultDateFilter = DateLast30Days

	// DateLayout is the wire format of every date bound.
	DateLayout = "2006-01-02"
)

// Importance levels.
const (
	ImportanceAll       = "all mentions"
	ImportanceImportant = "important mentions"
)

// ErrInvalidFilter is wrapped by every FilterError.
var ErrInvalidFilter = errors.New("filter: invalid")

// FilterError describes one invalid filter field.
type FilterError struct {
	Field  string
	Reason string
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidFilter) hold.
func (e *FilterError) Is(target error) bool { return target == ErrInvalidFilter }

// Filter describes which posts a request is about. It is built once from the
// request and never mutated; Normalize returns a new value.
type Filter struct {
	Keywords           StringList `json:"keywords,omitempty"`
	SearchKeyword      StringList `json:"search_keyword,omitempty"`
	SearchExactPhrases bool       `json:"search_exact_phrases"`
	CaseSensitive      bool       `json:"case_sensitive"`
	Sentiment          StringList `json:"sentiment,omitempty"`
	DateFilter         Scalar     `json:"date_filter,omitempty"`
	CustomStartDate    Scalar     `json:"custom_start_date,omitempty"`
	CustomEndDate      Scalar     `json:"custom_end_date,omitempty"`
	Channels           StringList `json:"channels,omitempty"`
	Importance         Scalar     `json:"importance,omitempty"`
	InfluenceScoreMin  *float64   `json:"influence_score_min,omitempty"`
	InfluenceScoreMax  *float64   `json:"influence_score_max,omitempty"`
	Region             StringList `json:"region,omitempty"`
	Language           StringList `json:"language,omitempty"`
	Domain             StringList `json:"domain,omitempty"`
}

var languageAliases = map[string]string{
	"id": "indonesia",
	"en": "english",
}

// Normalize applies the construction rules: defaults, media→news, language
// expansion, lowercase sentiment, trimmed values. List order is preserved.
func (f Filter) Normalize() Filter {
	out := f
	out.Keywords = trimList(f.Keywords)
	out.SearchKeyword = trimList(f.SearchKeyword)
	out.Region = trimList(f.Region)
	out.Domain = trimList(f.Domain)

	out.Sentiment = mapList(f.Sentiment, func(s string) string { return strings.ToLower(strings.TrimSpace(s)) })
	out.Channels = mapList(f.Channels, NormalizeChannel)
	out.Language = mapList(f.Language, func(s string) string {
		s = strings.TrimSpace(s)
		if alias, ok := languageAliases[strings.ToLower(s)]; ok {
			return alias
		}
		return s
	})

	out.DateFilter = Scalar(strings.ToLower(strings.TrimSpace(string(f.DateFilter))))
	if out.DateFilter == "" {
		out.DateFilter = DefaultDateFilter
	}
	out.CustomStartDate = Scalar(strings.TrimSpace(string(f.CustomStartDate)))
	out.CustomEndDate = Scalar(strings.TrimSpace(string(f.CustomEndDate)))

	out.Importance = Scalar(strings.ToLower(strings.TrimSpace(string(f.Importance))))
	if out.Importance == "" {
		out.Importance = ImportanceAll
	}
	return out
}

// Validate checks a normalized filter. The returned error wraps ErrInvalidFilter.
func (f Filter) Validate() error {
	for _, s := range f.Sentiment {
		if !IsSentiment(s) {
			return &FilterError{Field: "sentiment", Reason: fmt.Sprintf("unknown value %q", s)}
		}
	}
	for _, c := range f.Channels {
		if !IsChannel(c) {
			return &FilterError{Field: "channels", Reason: fmt.Sprintf("unknown channel %q", c)}
		}
	}
	if f.Importance != ImportanceAll && f.Importance != ImportanceImportant {
		return &FilterError{Field: "importance", Reason: fmt.Sprintf("unknown value %q", f.Importance)}
	}
	if err := checkInfluence("influence_score_min", f.InfluenceScoreMin); err != nil {
		return err
	}
	if err := checkInfluence("influence_score_max", f.InfluenceScoreMax); err != nil {
		return err
	}
	if f.InfluenceScoreMin != nil && f.InfluenceScoreMax != nil && *f.InfluenceScoreMin > *f.InfluenceScoreMax {
		return &FilterError{Field: "influence_score_min", Reason: "must not exceed influence_score_max"}
	}

	var start, end time.Time
	var err error
	if f.CustomStartDate != "" {
		if start, err = time.Parse(DateLayout, string(f.CustomStartDate)); err != nil {
			return &FilterError{Field: "custom_start_date", Reason: "expected YYYY-MM-DD"}
		}
	}
	if f.CustomEndDate != "" {
		if end, err = time.Parse(DateLayout, string(f.CustomEndDate)); err != nil {
			return &FilterError{Field: "custom_end_date", Reason: "expected YYYY-MM-DD"}
		}
	}
	if f.DateFilter == DateCustom && !start.IsZero() && !end.IsZero() && start.After(end) {
		return &FilterError{Field: "custom_start_date", Reason: "must not be after custom_end_date"}
	}
	return nil
}

// WithWindow returns a copy restricted to the custom window [start,end].
func (f Filter) WithWindow(start, end time.Time) Filter {
	out := f
	out.DateFilter = DateCustom
	out.CustomStartDate = Scalar(start.Format(DateLayout))
	out.CustomEndDate = Scalar(end.Format(DateLayout))
	return out
}

// WithChannels returns a copy restricted to channels.
func (f Filter) WithChannels(channels []string) Filter {
	out := f
	out.Channels = append(StringList(nil), channels...)
	return out
}

// Important reports whether the importance floor applies.
func (f Filter) Important() bool {
	return f.Importance == ImportanceImportant
}

// CacheParams returns every field as "name" → canonical string, for cache keying.
func (f Filter) CacheParams() map[string]string {
	return map[string]string{
		"keywords":             joinList(f.Keywords),
		"search_keyword":       joinList(f.SearchKeyword),
		"search_exact_phrases": strconv.FormatBool(f.SearchExactPhrases),
		"case_sensitive":       strconv.FormatBool(f.CaseSensitive),
		"sentiment":            joinList(f.Sentiment),
		"date_filter":          string(f.DateFilter),
		"custom_start_date":    string(f.CustomStartDate),
		"custom_end_date":      string(f.CustomEndDate),
		"channels":             joinList(f.Channels),
		"importance":           string(f.Importance),
		"influence_score_min":  formatOptional(f.InfluenceScoreMin),
		"influence_score_max":  formatOptional(f.InfluenceScoreMax),
		"region":               joinList(f.Region),
		"language":             joinList(f.Language),
		"domain":               joinList(f.Domain),
	}
}

func checkInfluence(field string, v *float64) error {
	if v == nil {
		return nil
	}
	if *v != *v || *v < 0 || *v > 100 {
		return &FilterError{Field: field, Reason: "must be within [0, 100]"}
	}
	return nil
}

func trimList(in StringList) StringList {
	return mapList(in, strings.TrimSpace)
}

func mapList(in StringList, fn func(string) string) StringList {
	if len(in) == 0 {
		return nil
	}
	out := make(StringList, 0, len(in))
	for _, v := range in {
		if v = fn(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// joinList encodes l as a JSON array, keeping order and element boundaries.
func joinList(l StringList) string {
	if len(l) == 0 {
		return ""
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return ""
	}
	return string(b)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
