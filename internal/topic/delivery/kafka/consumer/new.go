package consumer

import (
	"context"
	"fmt"

	"analytics-srv/internal/topic"
	pkgKafka "analytics-srv/pkg/kafka"
	"analytics-srv/pkg/log"
)

// Consumer runs topic absorption jobs from Kafka.
type Consumer interface {
	ConsumeAbsorbJobs(ctx context.Context) error
	Close() error
}

type Config struct {
	Logger  log.Logger
	Brokers []string
	Topic   string
	GroupID string
	UseCase topic.UseCase
}

type consumer struct {
	l       log.Logger
	brokers []string
	topic   string
	groupID string
	uc      topic.UseCase

	absorbGroup pkgKafka.IConsumer
}

func New(cfg Config) (Consumer, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if cfg.UseCase == nil {
		return nil, fmt.Errorf("usecase is required")
	}
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}
	return &consumer{
		l:       cfg.Logger,
		brokers: cfg.Brokers,
		topic:   cfg.Topic,
		groupID: cfg.GroupID,
		uc:      cfg.UseCase,
	}, nil
}

func (c *consumer) Close() error {
	if c.absorbGroup != nil {
		if err := c.absorbGroup.Close(); err != nil {
			return fmt.Errorf("failed to close absorb group: %w", err)
		}
	}
	return nil
}
