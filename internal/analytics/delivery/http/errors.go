package http

import (
	"errors"
	"net/http"

	"analytics-srv/internal/analytics"
	"analytics-srv/internal/model"
	pkgErrors "analytics-srv/pkg/errors"
)

var (
	errInvalidParams = pkgErrors.NewHTTPError(
		http.StatusBadRequest, 100002, "Invalid endpoint parameters",
	)
	errStoreUnavailable = pkgErrors.NewHTTPError(
		http.StatusServiceUnavailable, 200001, "Document store unavailable",
	)
	errQueryFailed = pkgErrors.NewHTTPError(
		http.StatusBadGateway, 200002, "Query failed",
	)
)

// errInvalidFilter carries the filter field at fault, never the query body.
func errInvalidFilter(err error) *pkgErrors.HTTPError {
	msg := "Invalid filter"
	var fe *model.FilterError
	if errors.As(err, &fe) {
		msg += ": " + fe.Error()
	}
	return pkgErrors.NewHTTPError(http.StatusBadRequest, 100001, msg)
}

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, analytics.ErrInvalidFilter):
		return errInvalidFilter(err)
	case errors.Is(err, analytics.ErrInvalidParams):
		return errInvalidParams
	case errors.Is(err, analytics.ErrStoreUnavailable):
		return errStoreUnavailable
	case errors.Is(err, analytics.ErrQueryFailed):
		return errQueryFailed
	default:
		panic(err)
	}
}
