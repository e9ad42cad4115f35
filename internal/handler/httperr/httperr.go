package httperr

import (
	"net/http"

	"table-concierge/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// StatusOf maps the cross-layer error categories to an HTTP status and a
// client-safe message.
func StatusOf(err error) (int, string) {
	switch {
	case errs.Is(err, errs.ErrValidation):
		return http.StatusBadRequest, "Invalid request"
	case errs.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errs.Is(err, errs.ErrAccessDenied):
		return http.StatusForbidden, "Access denied"
	case errs.Is(err, errs.ErrTransientStore):
		return http.StatusServiceUnavailable, "Service temporarily unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// Abort classifies err with StatusOf. Validation messages are passed through
// because they describe the caller's own input.
func Abort(c *gin.Context, err error) {
	status, msg := StatusOf(err)
	if status == http.StatusBadRequest {
		msg = err.Error()
	}
	AbortWithError(c, status, err, msg, nil)
}
