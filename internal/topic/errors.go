package topic

import "errors"

var (
	ErrProjectRequired  = errors.New("topic: project_name is required")
	ErrInvalidFilter    = errors.New("topic: invalid filter")
	ErrStoreUnavailable = errors.New("topic: store unavailable")
	ErrGenerationFailed = errors.New("topic: text generation failed")
	ErrUnparseableReply = errors.New("topic: unparseable model reply")
	ErrDispatchFailed   = errors.New("topic: dispatch failed")
)
