package errors

import "fmt"

// HTTPError is a user-visible failure with a stable machine-readable code.
type HTTPError struct {
	StatusCode int
	Code       int
	Message    string
}

// NewHTTPError creates an HTTPError.
func NewHTTPError(statusCode, code int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Code: code, Message: message}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}
