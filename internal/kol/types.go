package kol

import "analytics-srv/internal/model"

type OverviewInput struct {
	Filter      model.Filter
	OwnerID     string
	ProjectName string
	// Limit is the N of both top-N lists; the result holds at most 2N rows.
	Limit int
}

type Sentiment struct {
	Positive int64
	Negative int64
	Neutral  int64
}

// Row aggregates the sampled posts of one account.
type Row struct {
	LinkUser       string
	Username       string
	Channel        string
	ImageURL       string
	Followers      float64
	Posts          int64
	Reach          float64
	Viral          float64
	Influence      float64
	Issues         []string
	Sentiment      Sentiment
	NegativeDriver bool
	ShareOfVoice   float64
}

type OverviewOutput struct {
	Rows []Row
	// Sampled is the number of posts the table was built from.
	Sampled int
}
