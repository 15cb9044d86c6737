package assistant

import "time"

// Step names one stage of an assistant run.
type Step string

const (
	StepInit               Step = "init"
	StepAnalysis           Step = "analysis"
	StepStrategy           Step = "strategy"
	StepQueryGeneration    Step = "query_generation"
	StepDataSearch         Step = "data_search"
	StepDataProcessing     Step = "data_processing"
	StepResponseGeneration Step = "response_generation"
	StepCompleted          Step = "completed"
	StepError              Step = "error"
)

// Progress of each step, in emission order.
var Progress = map[Step]int{
	StepInit:               0,
	StepAnalysis:           10,
	StepStrategy:           25,
	StepQueryGeneration:    40,
	StepDataSearch:         55,
	StepDataProcessing:     70,
	StepResponseGeneration: 85,
	StepCompleted:          100,
}

// DataSource tags every final response.
const DataSource = "elasticsearch_social_media"

// Query types a strategy may pick.
const (
	QuerySearch          = "search"
	QueryAggregation     = "aggregation"
	QueryBoth            = "both"
	QueryGeneralQuestion = "general_question"
)

// Component types a response may carry.
const (
	ComponentText  = "text"
	ComponentTable = "table"
	ComponentChart = "chart"
)

type Event struct {
	Step     Step   `json:"step"`
	Message  string `json:"message"`
	Progress int    `json:"progress"`
	Data     any    `json:"data,omitempty"`
}

type AskInput struct {
	Query    string
	Keywords []string
}

type DateRange struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

type StrategyParams struct {
	Keywords  []string  `json:"keywords"`
	DateRange DateRange `json:"date_range"`
	Channels  []string  `json:"channels"`
	Sentiment []string  `json:"sentiment"`
	SortBy    string    `json:"sort_by,omitempty"`
	Limit     int       `json:"limit,omitempty"`
}

// Strategy is the plan the model picks for a question.
type Strategy struct {
	QueryType    string         `json:"query_type"`
	AnalysisType string         `json:"analysis_type"`
	Parameters   StrategyParams `json:"parameters"`
	// Answer is set for general questions only.
	Answer string `json:"answer,omitempty"`
}

// Processed is the uniform shape search results are reduced to.
type Processed struct {
	Total        int64            `json:"total"`
	Hits         []map[string]any `json:"hits"`
	Aggregations map[string]any   `json:"aggregations,omitempty"`
}

// Component is one typed block of the final answer (text, table or chart).
type Component map[string]any

type FinalResponse struct {
	Components  []Component `json:"components"`
	Insights    []string    `json:"insights"`
	Query       string      `json:"query"`
	QueryType   string      `json:"query_type"`
	TotalHits   int64       `json:"total_hits"`
	DataSource  string      `json:"data_source"`
	GeneratedAt time.Time   `json:"generated_at"`
}

type FeedbackInput struct {
	QueryUser      string
	FeedbackUser   string
	ResponseAI     map[string]any
	UserName       string
	ProjectName    string
	AdditionalInfo map[string]any
}

type FeedbackOutput struct {
	ID        string
	Timestamp time.Time
}
