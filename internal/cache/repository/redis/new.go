package redis

import (
	"analytics-srv/internal/cache/repository"
	"analytics-srv/pkg/log"
	pkgRedis "analytics-srv/pkg/redis"
)

type implRepository struct {
	redis pkgRedis.IRedis
	l     log.Logger
}

func New(redis pkgRedis.IRedis, l log.Logger) repository.Repository {
	return &implRepository{
		redis: redis,
		l:     l,
	}
}
