package kafka

const (
	// TopicAbsorbJobs carries topic absorption jobs from the API to the consumer.
	TopicAbsorbJobs = "analytics.topic.absorb"
	// ConsumerGroupAbsorb is the consumer group of the absorption workers.
	ConsumerGroupAbsorb = "analytics-consumer-topic-absorb"
)
