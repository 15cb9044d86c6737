package elasticsearch

import (
	"sync"

	"analytics-srv/internal/topic/repository"
	pkgES "analytics-srv/pkg/elasticsearch"
	"analytics-srv/pkg/log"
)

// DefaultIndex holds the topic cluster documents.
const DefaultIndex = "topic_clusters"

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
