package topic

import "analytics-srv/internal/model"

// Absorption transports.
const (
	AbsorbInProcess = "inprocess"
	AbsorbKafka     = "kafka"
)

type ClustersInput struct {
	Filter      model.Filter
	ProjectName string
}

type Sentiment struct {
	Positive int64 `json:"positive"`
	Negative int64 `json:"negative"`
	Neutral  int64 `json:"neutral"`
}

// Add accumulates o into s.
func (s *Sentiment) Add(o Sentiment) {
	s.Positive += o.Positive
	s.Negative += o.Negative
	s.Neutral += o.Neutral
}

// Dominant returns the sentiment with the most posts; ties are neutral.
func (s Sentiment) Dominant() string {
	switch {
	case s.Positive > s.Negative && s.Positive > s.Neutral:
		return model.SentimentPositive
	case s.Negative > s.Positive && s.Negative > s.Neutral:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

// TopicStat aggregates the mapped issues of one unified label.
type TopicStat struct {
	Topic        string
	Description  string
	ClusterIDs   []string
	Issues       []string
	Posts        int64
	Reach        float64
	Sentiment    Sentiment
	ShareOfVoice float64
}

type ClustersOutput struct {
	Topics     []TopicStat
	TotalPosts int64
	// Pending counts issues scheduled for absorption by this call.
	Pending int
	Cold    bool
}

// AbsorbInput is one absorption job. Suggestions are cluster names the model
// should prefer over inventing new ones.
type AbsorbInput struct {
	ProjectName string   `json:"project_name"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type AbsorbOutput struct {
	Assigned int
	Upserted int
	Failed   int
	Errors   []string
}
