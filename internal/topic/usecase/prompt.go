package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"analytics-srv/internal/topic"

	"github.com/tidwall/gjson"
)

// group is one named cluster proposed by the model.
type group struct {
	Name        string
	Description string
	Issues      []string
}

func clusterPrompt(project string, issues []string) string {
	list, _ := json.Marshal(issues)
	return fmt.Sprintf(`You group social media discussion issues of the project %q into topics.

Issues (JSON array):
%s

Partition the issues into a small number of topics. Every issue belongs to exactly one topic.
Use the exact issue strings. Reply with JSON only, no prose, in this shape:
[{"unified_issue": "<topic name>", "description": "<one sentence>", "list_issue": ["<issue>", ...]}]`, project, list)
}

func assignPrompt(project string, issues, names []string) string {
	list, _ := json.Marshal(issues)
	known, _ := json.Marshal(names)
	return fmt.Sprintf(`You maintain the topics of the social media project %q.

Existing topics (JSON array):
%s

New issues (JSON array):
%s

Assign every new issue to one existing topic, or to a new topic when none fits.
Use the exact issue strings and existing topic names. Reply with JSON only, in this shape:
{"<topic name>": ["<issue>", ...]}`, project, known, list)
}

// parseGroups reads the model reply in either the map form
// {"A": ["x", ...]} / {"A": {"description": "...", "list_issue": [...]}}
// or the list form [{"unified_issue": "A", "description": "...", "list_issue": [...]}].
// Issues outside allowed are dropped, each issue is kept in its first group
// only and groups sharing a name are merged.
func parseGroups(reply string, allowed []string) ([]group, error) {
	raw, err := decodeGroups(reply)
	if err != nil {
		return nil, err
	}

	ok := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		ok[a] = true
	}
	seen := map[string]bool{}
	pos := map[string]int{}
	var out []group
	for _, g := range raw {
		g.Name = strings.TrimSpace(g.Name)
		if g.Name == "" {
			continue
		}
		var kept []string
		for _, i := range g.Issues {
			if ok[i] && !seen[i] {
				seen[i] = true
				kept = append(kept, i)
			}
		}
		if len(kept) == 0 {
			continue
		}
		if at, dup := pos[g.Name]; dup {
			out[at].Issues = append(out[at].Issues, kept...)
			continue
		}
		pos[g.Name] = len(out)
		g.Issues = kept
		out = append(out, g)
	}
	if len(out) == 0 {
		return nil, topic.ErrUnparseableReply
	}
	return out, nil
}

// decodeGroups reads the groups of a reply without checking its issues.
func decodeGroups(reply string) ([]group, error) {
	body := extractJSON(reply)
	if body == "" || !gjson.Valid(body) {
		return nil, topic.ErrUnparseableReply
	}
	root := gjson.Parse(body)
	if root.IsObject() {
		for _, k := range []string{"topics", "clusters", "groups"} {
			if v := root.Get(k); v.IsArray() && len(root.Map()) == 1 {
				root = v
				break
			}
		}
	}

	var raw []group
	switch {
	case root.IsArray():
		for _, e := range root.Array() {
			if !e.IsObject() {
				return nil, topic.ErrUnparseableReply
			}
			raw = append(raw, group{
				Name:        firstOf(e, "unified_issue", "topic", "name"),
				Description: e.Get("description").String(),
				Issues:      stringsOf(issuesOf(e)),
			})
		}
	case root.IsObject():
		var bad bool
		root.ForEach(func(k, v gjson.Result) bool {
			g := group{Name: k.String()}
			switch {
			case v.IsArray():
				g.Issues = stringsOf(v)
			case v.IsObject():
				g.Description = v.Get("description").String()
				g.Issues = stringsOf(issuesOf(v))
			default:
				bad = true
				return false
			}
			raw = append(raw, g)
			return true
		})
		if bad {
			return nil, topic.ErrUnparseableReply
		}
	default:
		return nil, topic.ErrUnparseableReply
	}
	return raw, nil
}

// ValidReply accepts replies that decode to at least one named group with issues.
func ValidReply(reply string) bool {
	raw, err := decodeGroups(reply)
	if err != nil {
		return false
	}
	for _, g := range raw {
		if strings.TrimSpace(g.Name) != "" && len(g.Issues) > 0 {
			return true
		}
	}
	return false
}

// extractJSON returns the outermost JSON object or array of s, ignoring code
// fences and surrounding prose.
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

func firstOf(r gjson.Result, keys ...string) string {
	for _, k := range keys {
		if v := r.Get(k).String(); v != "" {
			return v
		}
	}
	return ""
}

func issuesOf(r gjson.Result) gjson.Result {
	for _, k := range []string{"list_issue", "issues"} {
		if v := r.Get(k); v.IsArray() {
			return v
		}
	}
	return gjson.Result{}
}

func stringsOf(r gjson.Result) []string {
	var out []string
	for _, v := range r.Array() {
		if v.Type == gjson.String {
			out = append(out, v.String())
		}
	}
	return out
}
