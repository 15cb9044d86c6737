package assistant

import "errors"

var (
	ErrQueryRequired       = errors.New("assistant: query is required")
	ErrGenerationFailed    = errors.New("assistant: text generation failed")
	ErrStoreUnavailable    = errors.New("assistant: document store unavailable")
	ErrInvalidFeedback     = errors.New("assistant: invalid feedback")
	ErrFeedbackUnavailable = errors.New("assistant: feedback store unavailable")
)
