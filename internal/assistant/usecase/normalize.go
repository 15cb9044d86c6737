package usecase

import "strings"

const keywordSuffix = ".keyword"

// keywordTextFields are the only fields indexed as text with a .keyword sub-field.
var keywordTextFields = map[string]bool{
	"post_caption": true,
	"issue":        true,
}

// normalizeKeywordFields strips .keyword from field references of fields that
// are already keywords. Both object keys and "field" values are rewritten.
func normalizeKeywordFields(v any) {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if k == "field" {
				if s, ok := child.(string); ok {
					t[k] = normalizeField(s)
				}
				continue
			}
			normalizeKeywordFields(child)
			if nk := normalizeField(k); nk != k {
				if _, clash := t[nk]; !clash {
					delete(t, k)
					t[nk] = child
				}
			}
		}
	case []any:
		for _, child := range t {
			normalizeKeywordFields(child)
		}
	}
}

func normalizeField(name string) string {
	base, ok := strings.CutSuffix(name, keywordSuffix)
	if !ok || keywordTextFields[base] {
		return name
	}
	return base
}
