package redis

import (
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// DefaultConnectTimeout bounds the initial ping and every dial.
const DefaultConnectTimeout = 5 * time.Second

var (
	// ErrHostRequired is returned when no host is configured.
	ErrHostRequired = errors.New("redis: host is required")
	// ErrInvalidPort is returned for a port outside 1..65535.
	ErrInvalidPort = errors.New("redis: invalid port")
	// ErrNotFound is returned by Get for a missing key.
	ErrNotFound = errors.New("redis: key not found")
)

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// redisImpl implements IRedis using go-redis.
type redisImpl struct {
	client *goredis.Client
}
