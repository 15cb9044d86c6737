package topic

import (
	"testing"

	"analytics-srv/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestSentimentAdd(t *testing.T) {
	var s Sentiment
	s.Add(Sentiment{Positive: 1, Negative: 3})
	s.Add(Sentiment{Positive: 3, Neutral: 2})
	assert.Equal(t, Sentiment{Positive: 4, Negative: 3, Neutral: 2}, s)
	assert.Equal(t, model.SentimentPositive, s.Dominant())

	s.Add(Sentiment{Negative: 1})
	assert.Equal(t, model.SentimentNeutral, s.Dominant())
}
