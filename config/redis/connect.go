package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"analytics-srv/config"
	"analytics-srv/pkg/redis"
)

var (
	instance redis.IRedis
	mu       sync.Mutex
)

// Connect returns the process-wide Redis client, dialing it on first use.
// A failed dial is not remembered, so a later call retries.
func Connect(ctx context.Context, cfg config.RedisConfig) (redis.IRedis, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}

	client, err := redis.NewRedis(redis.RedisConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
	}
	if err := client.Ping(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to ping Redis: %w", err), client.Close())
	}

	instance = client
	return instance, nil
}

// Disconnect closes the client; the next Connect dials again.
func Disconnect() error {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		return nil
	}
	err := instance.Close()
	instance = nil
	return err
}
