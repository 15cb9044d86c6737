package consumer

import (
	"context"

	kafkaDelivery "analytics-srv/internal/topic/delivery/kafka"
	pkgKafka "analytics-srv/pkg/kafka"
)

// ConsumeAbsorbJobs starts the absorb consumer group in the background.
func (c *consumer) ConsumeAbsorbJobs(ctx context.Context) error {
	topicName := c.topic
	if topicName == "" {
		topicName = kafkaDelivery.TopicAbsorbJobs
	}
	groupID := c.groupID
	if groupID == "" {
		groupID = kafkaDelivery.ConsumerGroupAbsorb
	}

	group, err := pkgKafka.NewConsumer(pkgKafka.ConsumerConfig{Brokers: c.brokers, GroupID: groupID})
	if err != nil {
		return err
	}
	c.absorbGroup = group

	handler := &absorbHandler{consumer: c}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if err := group.Consume(ctx, []string{topicName}, handler); err != nil {
					c.l.Errorf(ctx, "topic.delivery.kafka.consumer.ConsumeAbsorbJobs: consumer error: %v", err)
				}
			}
		}
	}()

	go func() {
		for err := range group.Errors() {
			c.l.Errorf(ctx, "topic.delivery.kafka.consumer.ConsumeAbsorbJobs: group error: %v", err)
		}
	}()

	c.l.Infof(ctx, "Consuming %s", topicName)
	return nil
}
