package usecase

import (
	"context"
	"fmt"
	"strings"

	"analytics-srv/internal/assistant"
	"analytics-srv/internal/model"
)

func (uc *implUseCase) SaveFeedback(ctx context.Context, input assistant.FeedbackInput) (assistant.FeedbackOutput, error) {
	if strings.TrimSpace(input.QueryUser) == "" || strings.TrimSpace(input.FeedbackUser) == "" {
		return assistant.FeedbackOutput{}, fmt.Errorf("%w: query_user and feedback_user are required", assistant.ErrInvalidFeedback)
	}

	ts := uc.now().In(uc.cfg.Location)
	id, err := uc.repo.SaveFeedback(ctx, model.AIFeedback{
		Timestamp:      ts,
		QueryUser:      input.QueryUser,
		FeedbackUser:   input.FeedbackUser,
		ResponseAI:     input.ResponseAI,
		UserName:       input.UserName,
		ProjectName:    input.ProjectName,
		AdditionalInfo: input.AdditionalInfo,
	})
	if err != nil {
		uc.l.Errorf(ctx, "assistant.usecase.SaveFeedback: %v", err)
		return assistant.FeedbackOutput{}, fmt.Errorf("%w: %v", assistant.ErrFeedbackUnavailable, err)
	}
	return assistant.FeedbackOutput{ID: id, Timestamp: ts}, nil
}
