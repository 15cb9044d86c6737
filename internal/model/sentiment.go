package model

// Sentiments.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// AllSentiments lists the sentiment values the store carries.
var AllSentiments = []string{SentimentPositive, SentimentNegative, SentimentNeutral}

// IsSentiment reports whether s is one of the three sentiment values.
func IsSentiment(s string) bool {
	return s == SentimentPositive || s == SentimentNegative || s == SentimentNeutral
}
