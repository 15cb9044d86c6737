package producer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"analytics-srv/internal/topic"
	kafkaDelivery "analytics-srv/internal/topic/delivery/kafka"
	"analytics-srv/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducer struct {
	key, value []byte
	err        error
}

func (f *fakeProducer) Publish(key, value []byte) error {
	f.key, f.value = key, value
	return f.err
}
func (f *fakeProducer) Close() error       { return nil }
func (f *fakeProducer) HealthCheck() error { return nil }

func TestDispatch(t *testing.T) {
	fp := &fakeProducer{}
	p := New(log.NewNop(), fp)

	err := p.Dispatch(context.Background(), topic.AbsorbInput{ProjectName: "p1", Issues: []string{"X1"}, Suggestions: []string{"A"}})
	require.NoError(t, err)

	assert.Equal(t, "p1", string(fp.key))
	var msg kafkaDelivery.AbsorbJobMessage
	require.NoError(t, json.Unmarshal(fp.value, &msg))
	assert.Equal(t, []string{"X1"}, msg.Issues)
	assert.Equal(t, []string{"A"}, msg.Suggestions)
	assert.False(t, msg.RequestedAt.IsZero())
}

func TestDispatchPublishFailure(t *testing.T) {
	p := New(log.NewNop(), &fakeProducer{err: errors.New("broker down")})
	err := p.Dispatch(context.Background(), topic.AbsorbInput{ProjectName: "p1"})
	assert.ErrorIs(t, err, topic.ErrDispatchFailed)
}
