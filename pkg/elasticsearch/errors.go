package elasticsearch

import "errors"

var (
	// ErrAddressRequired is returned when no address is configured.
	ErrAddressRequired = errors.New("elasticsearch: at least one address is required")
	// ErrUnavailable wraps transport-level failures reaching the store.
	ErrUnavailable = errors.New("elasticsearch: unavailable")
)
