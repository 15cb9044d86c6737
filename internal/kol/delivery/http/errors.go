package http

import (
	"errors"
	"net/http"

	"analytics-srv/internal/kol"
	"analytics-srv/internal/model"
	pkgErrors "analytics-srv/pkg/errors"
)

var (
	errStoreUnavailable = pkgErrors.NewHTTPError(http.StatusServiceUnavailable, 200001, "Document store unavailable")
	errQueryFailed      = pkgErrors.NewHTTPError(http.StatusBadGateway, 200002, "Query failed")
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, kol.ErrInvalidFilter):
		msg := "Invalid filter"
		var fe *model.FilterError
		if errors.As(err, &fe) {
			msg += ": " + fe.Error()
		}
		return pkgErrors.NewHTTPError(http.StatusBadRequest, 100001, msg)
	case errors.Is(err, kol.ErrStoreUnavailable):
		return errStoreUnavailable
	case errors.Is(err, kol.ErrQueryFailed):
		return errQueryFailed
	default:
		panic(err)
	}
}
