package response

// Resp is the standard JSON response body.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}

const (
	// CodeOK is the error_code of a successful response.
	CodeOK = 0
	// CodeValidation is the error_code of a request that failed binding or validation.
	CodeValidation = 100000
	// CodeUnauthorized is the error_code of a rejected shared key.
	CodeUnauthorized = 100401
	// CodeInternal is the error_code of an unexpected failure.
	CodeInternal = 999999

	msgSuccess      = "Success"
	msgInternal     = "Something went wrong"
	msgUnauthorized = "Unauthorized"
	msgValidation   = "Invalid request"
)
