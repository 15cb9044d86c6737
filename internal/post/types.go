package post

import "github.com/tidwall/gjson"

// SearchInput is a compiled search against the channel indices.
type SearchInput struct {
	// Operation labels the call in logs and metrics.
	Operation string
	Indices   []string
	Body      any
}

// SearchOutput is the raw store reply, read path-wise by decoders.
type SearchOutput struct {
	Raw gjson.Result
}

// Total is hits.total.value.
func (o SearchOutput) Total() int64 {
	return o.Raw.Get("hits.total.value").Int()
}

// Hits returns hits.hits.
func (o SearchOutput) Hits() []gjson.Result {
	return o.Raw.Get("hits.hits").Array()
}

// Agg returns the aggregation at path (dot separated, relative to "aggregations").
func (o SearchOutput) Agg(path string) gjson.Result {
	return o.Raw.Get("aggregations." + path)
}

type CountInput struct {
	Operation string
	Indices   []string
	Query     any
}
