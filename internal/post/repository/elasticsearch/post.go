package elasticsearch

import (
	"context"

	"analytics-srv/internal/post/repository"
)

// emptySearch is returned when every requested channel was excluded.
var emptySearch = []byte(`{"hits":{"total":{"value":0},"hits":[]},"aggregations":{}}`)

func (r *implRepository) Search(ctx context.Context, opt repository.SearchOptions) ([]byte, error) {
	if len(opt.Indices) == 0 {
		return emptySearch, nil
	}
	raw, err := r.client.Search(ctx, opt.Indices, opt.Body)
	if err != nil {
		r.l.Errorf(ctx, "post.repository.elasticsearch.Search: Failed to search %v: %v", opt.Indices, err)
		return nil, err
	}
	return raw, nil
}

func (r *implRepository) Count(ctx context.Context, opt repository.CountOptions) (int64, error) {
	if len(opt.Indices) == 0 {
		return 0, nil
	}
	var body any
	if opt.Query != nil {
		body = map[string]any{"query": opt.Query}
	}
	n, err := r.client.Count(ctx, opt.Indices, body)
	if err != nil {
		r.l.Errorf(ctx, "post.repository.elasticsearch.Count: Failed to count %v: %v", opt.Indices, err)
		return 0, err
	}
	return n, nil
}
