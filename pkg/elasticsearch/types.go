package elasticsearch

import (
	"fmt"
	"time"
)

const (
	// DefaultTimeout is the per-request deadline when the caller's context has none.
	DefaultTimeout = 30 * time.Second
)

// Config holds the document-store connection settings.
type Config struct {
	Addresses   []string
	Username    string
	Password    string
	CACert      []byte
	VerifyCerts bool
	Timeout     time.Duration
}

func (c Config) validate() error {
	if len(c.Addresses) == 0 {
		return ErrAddressRequired
	}
	return nil
}

// BulkOp is the action verb of a bulk line.
type BulkOp string

const (
	BulkIndex  BulkOp = "index"
	BulkUpdate BulkOp = "update"
)

// BulkAction is one action of a bulk request. For BulkUpdate, Body is the
// update document ({"script": ..., "upsert": ...}); RetryOnConflict goes on
// the action line.
type BulkAction struct {
	Op              BulkOp
	ID              string
	RetryOnConflict int
	Body            any
}

// BulkItemError describes a failed bulk item.
type BulkItemError struct {
	ID     string `json:"id"`
	Status int    `json:"status"`
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// BulkResult summarizes a bulk request.
type BulkResult struct {
	Succeeded int
	Created   int
	Updated   int
	Failed    []BulkItemError
}

// ResponseError is a non-2xx reply from the store.
type ResponseError struct {
	Status int
	Type   string
	Reason string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("elasticsearch: status %d: %s: %s", e.Status, e.Type, e.Reason)
}
