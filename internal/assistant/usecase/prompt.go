package usecase

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"analytics-srv/internal/assistant"
	"analytics-srv/internal/model"

	"github.com/tidwall/gjson"
)

// indexFields describes the channel index documents to the model.
const indexFields = `Fields of every document:
- post_caption (text, with post_caption.keyword), issue (text, with issue.keyword)
- channel, username, link_post, link_user, sentiment (positive|negative|neutral), region, language, post_hashtags (keyword)
- post_created_at (date)
- likes, comments, shares, retweets, replies, favorites, votes, views, user_followers (numbers)
- reach_score, viral_score, influence_score (numbers)`

func strategyPrompt(question string, keywords []string, now time.Time) string {
	kw, _ := json.Marshal(keywords)
	return fmt.Sprintf(`You are a social media analytics assistant. Today is %s.
Channels: twitter, tiktok, instagram, youtube, linkedin, reddit, facebook, threads, news.

Question: %s
Keywords: %s

Decide how to answer. Reply with JSON only, no prose, in this shape:
{"query_type": "search|aggregation|both|general_question",
 "analysis_type": "<short label>",
 "parameters": {"keywords": ["..."], "date_range": {"from": "YYYY-MM-DD", "to": "YYYY-MM-DD"},
   "channels": ["..."], "sentiment": ["..."], "sort_by": "<field>", "limit": 10},
 "answer": "<only for general_question: the direct answer>"}`, now.Format(time.DateOnly), question, kw)
}

func queryPrompt(question string, s assistant.Strategy) string {
	plan, _ := json.Marshal(s)
	return fmt.Sprintf(`You write Elasticsearch query bodies for social media posts.
%s

Question: %s
Plan: %s

Write one search request body (query, size, sort, aggs as needed) that follows the plan.
Reply with the JSON body only.`, indexFields, question, plan)
}

func answerPrompt(question string) string {
	return fmt.Sprintf(`You are a social media analytics assistant. Answer briefly.

Question: %s`, question)
}

func responsePrompt(question string, s assistant.Strategy, p assistant.Processed, limit int) string {
	data := fitProcessed(p, limit)
	return fmt.Sprintf(`You are a social media analytics assistant. Answer the question from the data.

Question: %s
Analysis: %s
Data (JSON): %s

Reply with JSON only, in this shape:
{"components": [
  {"type": "text", "content": "..."},
  {"type": "table", "title": "...", "columns": ["..."], "rows": [["..."]]},
  {"type": "chart", "title": "...", "chart_type": "bar|line|pie", "labels": ["..."], "values": [0]}],
 "insights": ["..."]}`, question, s.AnalysisType, data)
}

// fitProcessed marshals p, dropping trailing hits until it fits in limit bytes.
func fitProcessed(p assistant.Processed, limit int) string {
	for {
		b, _ := json.Marshal(p)
		if len(b) <= limit || len(p.Hits) == 0 {
			if len(b) > limit {
				return string(b[:limit])
			}
			return string(b)
		}
		p.Hits = p.Hits[:len(p.Hits)/2]
	}
}

// parseStrategy reads the model's plan. Anything unusable degrades to a plain
// search over the given keywords.
func parseStrategy(reply string, keywords []string) assistant.Strategy {
	s := assistant.Strategy{
		QueryType:    assistant.QuerySearch,
		AnalysisType: "general",
		Parameters:   assistant.StrategyParams{Keywords: keywords},
	}
	js := extractJSON(reply)
	if js == "" || !gjson.Valid(js) {
		return s
	}
	r := gjson.Parse(js)
	if !r.IsObject() {
		return s
	}

	switch qt := strings.ToLower(strings.TrimSpace(r.Get("query_type").String())); qt {
	case assistant.QuerySearch, assistant.QueryAggregation, assistant.QueryBoth, assistant.QueryGeneralQuestion:
		s.QueryType = qt
	}
	if at := strings.TrimSpace(r.Get("analysis_type").String()); at != "" {
		s.AnalysisType = at
	}
	s.Answer = strings.TrimSpace(r.Get("answer").String())

	p := r.Get("parameters")
	if kw := stringsOf(p.Get("keywords")); len(kw) > 0 {
		s.Parameters.Keywords = kw
	}
	for _, c := range stringsOf(p.Get("channels")) {
		if c = model.NormalizeChannel(c); model.IsChannel(c) {
			s.Parameters.Channels = append(s.Parameters.Channels, c)
		}
	}
	for _, v := range stringsOf(p.Get("sentiment")) {
		if v = strings.ToLower(v); model.IsSentiment(v) {
			s.Parameters.Sentiment = append(s.Parameters.Sentiment, v)
		}
	}
	s.Parameters.DateRange = assistant.DateRange{
		From: p.Get("date_range.from").String(),
		To:   p.Get("date_range.to").String(),
	}
	s.Parameters.SortBy = p.Get("sort_by").String()
	if n := int(p.Get("limit").Int()); n > 0 {
		s.Parameters.Limit = n
	}
	return s
}

// parseQuery reads the generated body. It reports false when the reply was
// unusable and the match_all fallback is returned instead.
func parseQuery(reply string, maxSize, defSize int) (map[string]any, bool) {
	js := extractJSON(reply)
	if js == "" || !gjson.Valid(js) {
		return fallbackQuery(defSize), false
	}
	var body map[string]any
	if err := json.Unmarshal([]byte(js), &body); err != nil || len(body) == 0 {
		return fallbackQuery(defSize), false
	}
	// A bare query clause is accepted as the query of the body.
	if _, ok := body["query"]; !ok {
		if _, ok := body["aggs"]; !ok {
			if _, ok := body["aggregations"]; !ok {
				body = map[string]any{"query": body}
			}
		}
	}
	normalizeKeywordFields(body)
	capSize(body, maxSize, defSize)
	return body, true
}

func fallbackQuery(size int) map[string]any {
	return map[string]any{
		"query": map[string]any{"match_all": map[string]any{}},
		"size":  size,
		"sort":  []any{map[string]any{"post_created_at": map[string]any{"order": "desc"}}},
	}
}

func capSize(body map[string]any, maxSize, defSize int) {
	n, ok := body["size"].(float64)
	switch {
	case !ok:
		body["size"] = defSize
	case n < 0:
		body["size"] = 0
	case int(n) > maxSize:
		body["size"] = maxSize
	}
}

// parseResponse reads the rendered answer. A reply that is not the expected
// JSON becomes a single text component.
func parseResponse(reply string) ([]assistant.Component, []string) {
	insights := []string{}
	js := extractJSON(reply)
	if js == "" || !gjson.Valid(js) || !gjson.Parse(js).IsObject() {
		return []assistant.Component{textComponent(strings.TrimSpace(reply))}, insights
	}
	r := gjson.Parse(js)

	var components []assistant.Component
	for _, c := range r.Get("components").Array() {
		m, ok := c.Value().(map[string]any)
		if !ok {
			continue
		}
		switch m["type"] {
		case assistant.ComponentText, assistant.ComponentTable, assistant.ComponentChart:
			components = append(components, assistant.Component(m))
		}
	}
	if len(components) == 0 {
		text := firstOf(r, "content", "text", "answer", "summary")
		if text == "" {
			text = strings.TrimSpace(reply)
		}
		components = []assistant.Component{textComponent(text)}
	}
	insights = append(insights, stringsOf(r.Get("insights"))...)
	return components, insights
}

func textComponent(text string) assistant.Component {
	return assistant.Component{"type": assistant.ComponentText, "content": text}
}

// stringsOf accepts a scalar or an array of scalars.
func stringsOf(r gjson.Result) []string {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	items := []gjson.Result{r}
	if r.IsArray() {
		items = r.Array()
	}
	var out []string
	for _, it := range items {
		if v := strings.TrimSpace(it.String()); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func firstOf(r gjson.Result, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(r.Get(k).String()); v != "" {
			return v
		}
	}
	return ""
}

// ValidReply accepts replies carrying a JSON object, the shape of every
// structured step. Plain-text answers are not cached.
func ValidReply(reply string) bool {
	js := extractJSON(reply)
	return js != "" && gjson.Valid(js) && gjson.Parse(js).IsObject()
}

// extractJSON returns the outermost JSON object or array of s, skipping code
// fences and prose around it.
func extractJSON(s string) string {
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return ""
	}
	closer := byte('}')
	if s[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(s, closer)
	if end < start {
		return ""
	}
	return s[start : end+1]
}
