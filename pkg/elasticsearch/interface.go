package elasticsearch

import "context"

// IElasticsearch is the narrow document-store interface used by the service.
// Bodies are marshalled to JSON; responses are returned raw for path-wise decoding.
// Implementations are safe for concurrent use.
type IElasticsearch interface {
	Search(ctx context.Context, indices []string, body any) ([]byte, error)
	Count(ctx context.Context, indices []string, body any) (int64, error)
	Index(ctx context.Context, index, id string, doc any, refresh bool) error
	Bulk(ctx context.Context, index string, actions []BulkAction, refresh bool) (BulkResult, error)
	IndexExists(ctx context.Context, index string) (bool, error)
	CreateIndex(ctx context.Context, index string, body any) error
	Ping(ctx context.Context) error
}

// New creates a client. Returns the interface.
func New(cfg Config) (IElasticsearch, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return newClient(cfg)
}
