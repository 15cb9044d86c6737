package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"analytics-srv/internal/observability"
	"analytics-srv/internal/topic"
	kafkaDelivery "analytics-srv/internal/topic/delivery/kafka"
)

// handleAbsorbMessage decodes one job and delegates it to the usecase.
func (c *consumer) handleAbsorbMessage(ctx context.Context, value []byte) error {
	// 1. Unmarshal message
	var msg kafkaDelivery.AbsorbJobMessage
	if err := json.Unmarshal(value, &msg); err != nil {
		c.l.Warnf(ctx, "topic.delivery.kafka.consumer.handleAbsorbMessage: invalid message (skipping): %v", err)
		return nil
	}

	// 2. Validate format
	if msg.ProjectName == "" || len(msg.Issues) == 0 {
		c.l.Warnf(ctx, "topic.delivery.kafka.consumer.handleAbsorbMessage: missing project or issues (skipping)")
		return nil
	}

	// 3. Call UseCase
	out, err := c.uc.Absorb(ctx, toAbsorbInput(msg))
	if err != nil {
		observability.TopicAbsorbJobs.WithLabelValues("failed").Inc()
		return fmt.Errorf("usecase Absorb: %w", err)
	}
	observability.TopicAbsorbJobs.WithLabelValues("done").Inc()

	c.l.Infof(ctx, "topic.delivery.kafka.consumer.handleAbsorbMessage: %s: assigned=%d upserted=%d failed=%d",
		msg.ProjectName, out.Assigned, out.Upserted, out.Failed)
	return nil
}

func toAbsorbInput(m kafkaDelivery.AbsorbJobMessage) topic.AbsorbInput {
	return topic.AbsorbInput{
		ProjectName: m.ProjectName,
		Issues:      m.Issues,
		Suggestions: m.Suggestions,
	}
}
