package http

import (
	"errors"
	"net/http"

	"analytics-srv/internal/model"
	"analytics-srv/internal/topic"
	pkgErrors "analytics-srv/pkg/errors"
)

var (
	errProjectRequired = pkgErrors.NewHTTPError(http.StatusBadRequest, 500001, "project_name is required")
	errStore           = pkgErrors.NewHTTPError(http.StatusServiceUnavailable, 500003, "Topic store unavailable")
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, topic.ErrProjectRequired):
		return errProjectRequired
	case errors.Is(err, topic.ErrInvalidFilter):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, 500002, "Invalid filter: "+filterDetail(err))
	case errors.Is(err, topic.ErrStoreUnavailable):
		return errStore
	default:
		panic(err)
	}
}

// filterDetail keeps the field description of a filter error.
func filterDetail(err error) string {
	var fe *model.FilterError
	if errors.As(err, &fe) {
		return fe.Error()
	}
	return "malformed"
}
