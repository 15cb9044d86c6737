package scoring

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"analytics-srv/internal/model"
)

// Doc is the view of a post the client-side form needs.
type Doc interface {
	Num(field string) (float64, bool)
	Strings(field string) []string
}

// MapDoc adapts a decoded _source (plus optional "_index") to Doc.
type MapDoc map[string]any

// Num returns the numeric value of field, accepting numbers, numeric strings and one-element lists.
func (m MapDoc) Num(f string) (float64, bool) {
	return toFloat(m[f])
}

// Strings returns every string value of field.
func (m MapDoc) Strings(f string) []string {
	switch v := m[f].(type) {
	case nil:
		return nil
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, x := range v {
			if s, ok := x.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	case []any:
		if len(x) > 0 {
			return toFloat(x[0])
		}
	}
	return 0, false
}

// Engine evaluates influence scores and emits the equivalent store scripts.
type Engine struct {
	publishers []string
}

// New builds an Engine over the news-publisher allow-list.
func New(publishers []string) *Engine {
	seen := make(map[string]struct{}, len(publishers))
	norm := make([]string, 0, len(publishers))
	for _, p := range publishers {
		h := HostOf(p)
		if h == "" {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		norm = append(norm, h)
	}
	return &Engine{publishers: norm}
}

// Publishers returns the normalized allow-list.
func (e *Engine) Publishers() []string {
	return e.publishers
}

func (e *Engine) isPublisher(host string) bool {
	if host == "" {
		return false
	}
	for _, p := range e.publishers {
		if host == p || strings.HasSuffix(host, "."+p) {
			return true
		}
	}
	return false
}

// Score is the client-side form: the final influence in [0,10] of d.
func (e *Engine) Score(d Doc) float64 {
	return e.ScoreFor(Channel(d), d)
}

// ScoreFor scores d with the formula of channel.
func (e *Engine) ScoreFor(channel string, d Doc) float64 {
	return Final(channel).eval(e, d)
}

// Channel resolves the channel of d from its channel field, falling back to the index name.
func Channel(d Doc) string {
	c := ""
	if vs := d.Strings("channel"); len(vs) > 0 {
		c = vs[0]
	}
	if c == "" {
		if vs := d.Strings("_index"); len(vs) > 0 {
			if k := strings.LastIndex(vs[0], model.IndexSuffix); k > 0 {
				c = vs[0][:k]
			}
		}
	}
	c = strings.ToLower(c)
	if c == model.ChannelMediaAlias {
		return model.ChannelNews
	}
	return c
}

// HostOf extracts the lowercase hostname of a URL without "www.", scheme, port or path.
func HostOf(raw string) string {
	h := strings.ToLower(strings.TrimSpace(raw))
	if i := strings.Index(h, "://"); i >= 0 {
		h = h[i+3:]
	}
	for _, sep := range []string{"/", "?", "#", ":"} {
		if j := strings.Index(h, sep); j >= 0 {
			h = h[:j]
		}
	}
	return strings.TrimPrefix(h, "www.")
}

func counter(d Doc, f string) float64 {
	x, ok := d.Num(f)
	if ok && x > 0 {
		return x
	}
	return 0
}

func norm(x float64) float64 {
	return math.Log(1.0+x) / math.Log(1.0+LogNormMax)
}
