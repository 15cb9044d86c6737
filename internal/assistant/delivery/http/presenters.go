package http

import (
	"time"

	"analytics-srv/internal/assistant"
)

type askReq struct {
	Query    string   `form:"query"`
	Keywords []string `form:"keywords"`
}

func (r askReq) toInput() assistant.AskInput {
	return assistant.AskInput{Query: r.Query, Keywords: r.Keywords}
}

type feedbackReq struct {
	QueryUser      string         `json:"query_user"`
	FeedbackUser   string         `json:"feedback_user"`
	ResponseAI     map[string]any `json:"response_ai"`
	UserName       string         `json:"user_name"`
	ProjectName    string         `json:"project_name"`
	AdditionalInfo map[string]any `json:"additional_info"`
}

func (r feedbackReq) toInput() assistant.FeedbackInput {
	return assistant.FeedbackInput{
		QueryUser:      r.QueryUser,
		FeedbackUser:   r.FeedbackUser,
		ResponseAI:     r.ResponseAI,
		UserName:       r.UserName,
		ProjectName:    r.ProjectName,
		AdditionalInfo: r.AdditionalInfo,
	}
}

type feedbackResp struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *handler) newFeedbackResp(o assistant.FeedbackOutput) feedbackResp {
	return feedbackResp{ID: o.ID, Timestamp: o.Timestamp}
}
