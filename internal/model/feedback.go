package model

import "time"

// AIFeedback is one user rating of an assistant answer.
type AIFeedback struct {
	Timestamp      time.Time      `json:"timestamp"`
	QueryUser      string         `json:"query_user"`
	FeedbackUser   string         `json:"feedback_user"`
	ResponseAI     map[string]any `json:"response_ai,omitempty"`
	UserName       string         `json:"user_name"`
	ProjectName    string         `json:"project_name"`
	AdditionalInfo map[string]any `json:"additional_info,omitempty"`
}

// FeedbackMapping is the fixed index mapping of the feedback index.
var FeedbackMapping = map[string]any{
	"mappings": map[string]any{
		"properties": map[string]any{
			"timestamp":       map[string]any{"type": "date"},
			"query_user":      map[string]any{"type": "text"},
			"feedback_user":   map[string]any{"type": "text"},
			"response_ai":     map[string]any{"type": "object", "enabled": false},
			"user_name":       map[string]any{"type": "keyword"},
			"project_name":    map[string]any{"type": "keyword"},
			"additional_info": map[string]any{"type": "object", "enabled": false},
		},
	},
}
