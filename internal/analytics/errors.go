package analytics

import "errors"

var (
	ErrInvalidFilter    = errors.New("analytics: invalid filter")
	ErrInvalidParams    = errors.New("analytics: invalid parameters")
	ErrStoreUnavailable = errors.New("analytics: document store unavailable")
	ErrQueryFailed      = errors.New("analytics: query failed")
)
