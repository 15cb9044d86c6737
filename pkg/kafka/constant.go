package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

// Producer settings.
const (
	ProducerTimeout  = 10 * time.Second
	ProducerRetryMax = 3
)

// Consumer settings. Jobs published before the group first joined are still
// delivered.
const (
	ConsumerInitialOffset  = sarama.OffsetOldest
	ConsumerSessionTimeout = 30 * time.Second
)

// Version is the protocol version both sides negotiate.
var Version = sarama.V2_6_0_0
