package scoring

import (
	"strings"
)

// Script is a stored-script body understood by the document store.
type Script struct {
	Source string         `json:"source"`
	Lang   string         `json:"lang"`
	Params map[string]any `json:"params,omitempty"`
}

// prelude declares the helpers every formula fragment calls. Each helper mirrors
// a native function in engine.go/expr.go; StrictMath keeps log bit-compatible with Go.
const prelude = `double v(def d, String f) {
  if (!d.containsKey(f) || d[f].size() == 0) { return 0.0; }
  double x = (double) d[f].value;
  return x > 0.0 ? x : 0.0;
}
String s(def d, String f) {
  if (!d.containsKey(f) || d[f].size() == 0) { return ''; }
  return d[f].value.toString();
}
double n(double x) {
  return StrictMath.log(1.0 + x) / StrictMath.log(1.0 + 500.0);
}
double pick(double c, double a, double b) {
  return c > 0.0 ? a : b;
}
String host(String raw) {
  String h = raw.trim().toLowerCase();
  int i = h.indexOf('://');
  if (i >= 0) { h = h.substring(i + 3); }
  for (String sep : ['/', '?', '#', ':']) {
    int j = h.indexOf(sep);
    if (j >= 0) { h = h.substring(0, j); }
  }
  if (h.startsWith('www.')) { h = h.substring(4); }
  return h;
}
double inset(def d, String f, def pubs) {
  if (!d.containsKey(f)) { return 0.0; }
  for (def raw : d[f]) {
    if (raw == null) { continue; }
    String h = host(raw.toString());
    if (h.isEmpty()) { continue; }
    for (def pub : pubs) {
      if (h == pub || h.endsWith('.' + pub)) { return 1.0; }
    }
  }
  return 0.0;
}
double has(def d, String f, String needle) {
  if (!d.containsKey(f)) { return 0.0; }
  for (def x : d[f]) {
    if (x != null && x.toString().contains(needle)) { return 1.0; }
  }
  return 0.0;
}
String chan(def d) {
  String c = s(d, 'channel');
  if (c.isEmpty() && d.containsKey('_index')) {
    String i = d['_index'].value;
    int k = i.lastIndexOf('_data');
    if (k > 0) { c = i.substring(0, k); }
  }
  c = c.toLowerCase();
  return c == 'media' ? 'news' : c;
}
`

// scoreFunction renders `double score(def d, def p)` with one branch per channel.
func scoreFunction() string {
	var b strings.Builder
	b.WriteString("double score(def d, def p) {\n  String c = chan(d);\n")
	for _, ch := range ScriptedChannels {
		b.WriteString("  if (c == '")
		b.WriteString(ch)
		b.WriteString("') { return ")
		b.WriteString(Painless(Final(ch)))
		b.WriteString("; }\n")
	}
	b.WriteString("  return ")
	b.WriteString(Painless(Final("")))
	b.WriteString(";\n}\n")
	return b.String()
}

func (e *Engine) script(body string, params map[string]any) Script {
	if params == nil {
		params = map[string]any{}
	}
	params["publishers"] = e.publishers
	return Script{
		Source: prelude + scoreFunction() + body,
		Lang:   "painless",
		Params: params,
	}
}

// SortScript returns the influence score as a numeric sort/aggregation value.
func (e *Engine) SortScript() Script {
	return e.script("return score(doc, params);", nil)
}

// BoundsScript is a filter predicate keeping documents with min <= score <= max
// on the native scale. Nil bounds are open.
func (e *Engine) BoundsScript(min, max *float64) Script {
	params := map[string]any{}
	conds := make([]string, 0, 2)
	if min != nil {
		params["min"] = *min
		conds = append(conds, "x >= params.min")
	}
	if max != nil {
		params["max"] = *max
		conds = append(conds, "x <= params.max")
	}
	if len(conds) == 0 {
		conds = append(conds, "true")
	}
	return e.script("double x = score(doc, params);\nreturn "+strings.Join(conds, " && ")+";", params)
}

// FloorScript is a filter predicate keeping documents with score > floor on the native scale.
func (e *Engine) FloorScript(floor float64) Script {
	return e.script("return score(doc, params) > params.floor;", map[string]any{"floor": floor})
}
