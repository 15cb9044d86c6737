package http

import (
	"errors"
	"net/http"

	"analytics-srv/internal/assistant"
	pkgErrors "analytics-srv/pkg/errors"
)

var (
	errQueryRequired       = pkgErrors.NewHTTPError(http.StatusBadRequest, 100003, "Query is required")
	errInvalidFeedback     = pkgErrors.NewHTTPError(http.StatusBadRequest, 400001, "query_user and feedback_user are required")
	errFeedbackUnavailable = pkgErrors.NewHTTPError(http.StatusServiceUnavailable, 400002, "Feedback store unavailable")
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, assistant.ErrQueryRequired):
		return errQueryRequired
	case errors.Is(err, assistant.ErrInvalidFeedback):
		return errInvalidFeedback
	case errors.Is(err, assistant.ErrFeedbackUnavailable):
		return errFeedbackUnavailable
	default:
		panic(err)
	}
}
