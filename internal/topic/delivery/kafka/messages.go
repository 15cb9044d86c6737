package kafka

import "time"

// AbsorbJobMessage - Kafka message for analytics.topic.absorb
type AbsorbJobMessage struct {
	ProjectName string    `json:"project_name"`
	Issues      []string  `json:"issues"`
	Suggestions []string  `json:"suggestions,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}
