package consumer

import (
	"context"

	"github.com/IBM/sarama"
)

type absorbHandler struct {
	consumer *consumer
}

func (h *absorbHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *absorbHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim marks every message once handled. Failed jobs are dropped: the
// issues stay unmapped and the next topics request schedules them again.
func (h *absorbHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		if err := h.consumer.handleAbsorbMessage(session.Context(), msg.Value); err != nil {
			h.consumer.l.Errorf(context.Background(), "topic.delivery.kafka.consumer.ConsumeClaim: partition %d offset %d: %v",
				msg.Partition, msg.Offset, err)
		}
		session.MarkMessage(msg, "")
	}
	return nil
}
