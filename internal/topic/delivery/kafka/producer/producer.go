package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"analytics-srv/internal/observability"
	"analytics-srv/internal/topic"
	kafkaDelivery "analytics-srv/internal/topic/delivery/kafka"
)

// Dispatch publishes job keyed by project so jobs of one project stay ordered.
func (p *implProducer) Dispatch(ctx context.Context, job topic.AbsorbInput) error {
	msg := kafkaDelivery.AbsorbJobMessage{
		ProjectName: job.ProjectName,
		Issues:      job.Issues,
		Suggestions: job.Suggestions,
		RequestedAt: time.Now().UTC(),
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal absorb job: %w", err)
	}
	if err := p.producer.Publish([]byte(job.ProjectName), body); err != nil {
		observability.TopicAbsorbJobs.WithLabelValues("publish_failed").Inc()
		return fmt.Errorf("%w: %v", topic.ErrDispatchFailed, err)
	}
	observability.TopicAbsorbJobs.WithLabelValues("published").Inc()
	p.l.Infof(ctx, "topic.delivery.kafka.producer.Dispatch: published %d issues of %s", len(job.Issues), job.ProjectName)
	return nil
}
