package redis

import (
	"context"
	"errors"

	"analytics-srv/internal/cache/repository"
	pkgRedis "analytics-srv/pkg/redis"
)

const Prefix = "analytics:"

func (r *implRepository) Get(ctx context.Context, opt repository.GetOptions) ([]byte, error) {
	data, err := r.redis.Get(ctx, Prefix+opt.Key)
	if err != nil {
		if errors.Is(err, pkgRedis.ErrNotFound) {
			return nil, repository.ErrMiss
		}
		return nil, err
	}
	return []byte(data), nil
}

func (r *implRepository) Save(ctx context.Context, opt repository.SaveOptions) error {
	return r.redis.Set(ctx, Prefix+opt.Key, opt.Value, opt.TTL)
}
