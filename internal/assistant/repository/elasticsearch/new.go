package elasticsearch

import (
	"sync"

	"analytics-srv/internal/assistant/repository"
	pkgES "analytics-srv/pkg/elasticsearch"
	"analytics-srv/pkg/log"
)

// DefaultIndex holds assistant feedback.
const DefaultIndex = "ai_feedback"

type implRepository struct {
	client pkgES.IElasticsearch
	l      log.Logger
	index  string

	mu      sync.Mutex
	ensured bool
}

func New(client pkgES.IElasticsearch, l log.Logger, index string) repository.Repository {
	if index == "" {
		index = DefaultIndex
	}
	return &implRepository{
		client: client,
		l:      l,
		index:  index,
	}
}
