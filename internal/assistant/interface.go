package assistant

import "context"

//go:generate mockery --name UseCase
type UseCase interface {
	// Ask runs the question pipeline and streams its progress. The channel is
	// closed after the completed or error event, or when ctx is done.
	Ask(ctx context.Context, input AskInput) (<-chan Event, error)
	SaveFeedback(ctx context.Context, input FeedbackInput) (FeedbackOutput, error)
}
