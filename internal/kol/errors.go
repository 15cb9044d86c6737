package kol

import "errors"

var (
	ErrInvalidFilter    = errors.New("kol: invalid filter")
	ErrStoreUnavailable = errors.New("kol: store unavailable")
	ErrQueryFailed      = errors.New("kol: query failed")
)
