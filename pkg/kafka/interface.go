package kafka

import (
	"context"

	"github.com/IBM/sarama"
)

// IProducer publishes keyed messages to one topic.
// Implementations are safe for concurrent use.
type IProducer interface {
	Publish(key, value []byte) error
	Close() error
	HealthCheck() error
}

// IConsumer is a consumer group bound to a set of brokers.
type IConsumer interface {
	// Consume joins the group for topics and blocks for one session. Callers
	// loop on it until ctx is done.
	Consume(ctx context.Context, topics []string, handler sarama.ConsumerGroupHandler) error
	Close() error
	Errors() <-chan error
}

func NewProducer(cfg Config) (IProducer, error) {
	if err := validateProducerConfig(cfg); err != nil {
		return nil, err
	}
	return newProducerImpl(cfg)
}

func NewConsumer(cfg ConsumerConfig) (IConsumer, error) {
	if err := validateConsumerConfig(cfg); err != nil {
		return nil, err
	}
	return newConsumerImpl(cfg)
}
