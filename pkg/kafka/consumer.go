package kafka

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
)

func validateConsumerConfig(cfg ConsumerConfig) error {
	if len(cfg.Brokers) == 0 {
		return fmt.Errorf("kafka: at least one broker is required")
	}
	if cfg.GroupID == "" {
		return fmt.Errorf("kafka: group ID is required")
	}
	return nil
}

func newConsumerImpl(cfg ConsumerConfig) (*consumerImpl, error) {
	config := sarama.NewConfig()
	config.Version = Version
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Group.Session.Timeout = ConsumerSessionTimeout
	config.Consumer.Offsets.Initial = ConsumerInitialOffset
	config.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer group: %w", err)
	}
	return &consumerImpl{group: group}, nil
}

func (c *consumerImpl) Consume(ctx context.Context, topics []string, handler sarama.ConsumerGroupHandler) error {
	return c.group.Consume(ctx, topics, handler)
}

func (c *consumerImpl) Close() error {
	return c.group.Close()
}

func (c *consumerImpl) Errors() <-chan error {
	return c.group.Errors()
}
