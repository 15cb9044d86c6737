package post

import "errors"

var (
	ErrStoreUnavailable = errors.New("post: document store unavailable")
	ErrBadQuery         = errors.New("post: query rejected by store")
)
