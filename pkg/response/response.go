package response

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"analytics-srv/pkg/discord"
	pkgErrors "analytics-srv/pkg/errors"
	"analytics-srv/pkg/sanitize"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// OK writes a 200 response. Non-finite floats in data are replaced with null.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Resp{
		ErrorCode: CodeOK,
		Message:   msgSuccess,
		Data:      sanitize.Value(data),
	})
}

// Error writes the response for err. HTTPError and validation failures are
// returned as-is; anything else becomes a generic 500 and is reported to Discord.
func Error(c *gin.Context, err error, d discord.IDiscord) {
	var httpErr *pkgErrors.HTTPError
	if errors.As(err, &httpErr) {
		c.JSON(httpErr.StatusCode, Resp{ErrorCode: httpErr.Code, Message: httpErr.Message})
		return
	}

	var valErr *pkgErrors.ValidationError
	if errors.As(err, &valErr) {
		c.JSON(http.StatusBadRequest, Resp{ErrorCode: CodeValidation, Message: msgValidation, Errors: valErr.Fields})
		return
	}

	var bindErr validator.ValidationErrors
	if errors.As(err, &bindErr) {
		fields := make(map[string]string, len(bindErr))
		for _, fe := range bindErr {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, Resp{ErrorCode: CodeValidation, Message: msgValidation, Errors: fields})
		return
	}

	if d != nil {
		_ = d.SendError(c.Request.Context(), "analytics-srv error",
			fmt.Sprintf("%s %s", c.Request.Method, c.Request.URL.Path), err)
	}
	c.JSON(http.StatusInternalServerError, Resp{ErrorCode: CodeInternal, Message: msgInternal})
}

// BadRequest writes a 400 with a description of the malformed body.
func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Resp{ErrorCode: CodeValidation, Message: msgValidation, Errors: err.Error()})
}

// Unauthorized writes a 401.
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Resp{ErrorCode: CodeUnauthorized, Message: msgUnauthorized})
}

// PanicError writes a 500 for a recovered panic and reports the stack to Discord.
// The stack never reaches the client.
func PanicError(c *gin.Context, recovered any, d discord.IDiscord) {
	if d != nil {
		_ = d.ReportBug(c.Request.Context(), fmt.Sprintf("panic: %v\n%s %s\n```%s```",
			recovered, c.Request.Method, c.Request.URL.Path, debug.Stack()))
	}
	c.JSON(http.StatusInternalServerError, Resp{ErrorCode: CodeInternal, Message: msgInternal})
}
