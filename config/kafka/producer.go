package kafka

import (
	"fmt"
	"sync"

	"analytics-srv/config"
	"analytics-srv/pkg/kafka"
)

var (
	producer kafka.IProducer
	mu       sync.Mutex
)

// ConnectProducer returns the process-wide producer of the absorption topic.
func ConnectProducer(cfg config.KafkaConfig) (kafka.IProducer, error) {
	mu.Lock()
	defer mu.Unlock()

	if producer != nil {
		return producer, nil
	}

	p, err := kafka.NewProducer(kafka.Config{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Kafka producer: %w", err)
	}
	if err := p.HealthCheck(); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("kafka producer unhealthy: %w", err)
	}

	producer = p
	return producer, nil
}

// DisconnectProducer flushes and closes the producer.
func DisconnectProducer() error {
	mu.Lock()
	defer mu.Unlock()

	if producer == nil {
		return nil
	}
	err := producer.Close()
	producer = nil
	return err
}
