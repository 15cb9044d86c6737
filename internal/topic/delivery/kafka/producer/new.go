package producer

import (
	"analytics-srv/internal/topic"
	pkgKafka "analytics-srv/pkg/kafka"
	"analytics-srv/pkg/log"
)

// Producer publishes absorption jobs; it is the kafka-mode topic.Dispatcher.
type Producer interface {
	topic.Dispatcher
}

type implProducer struct {
	l        log.Logger
	producer pkgKafka.IProducer
}

func New(l log.Logger, producer pkgKafka.IProducer) Producer {
	return &implProducer{
		l:        l,
		producer: producer,
	}
}
