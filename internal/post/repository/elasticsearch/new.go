package elasticsearch

import (
	"analytics-srv/internal/post/repository"
	pkgES "analytics-srv/pkg/elasticsearch"
	"analytics-srv/pkg/log"
)

type implRepository struct {
	client pkgES.IElasticsearch
	l      log.Logger
}

func New(client pkgES.IElasticsearch, l log.Logger) repository.ESRepository {
	return &implRepository{
		client: client,
		l:      l,
	}
}
