package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/brandcraft-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondServiceError maps a service error to its status and code. Errors
// that carry no status become a 500 with fallbackCode and a generic message.
func RespondServiceError(c *gin.Context, err error, fallbackCode string) {
	ae := apierr.As(err, fallbackCode)
	if ae.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
		RespondError(c, ae.Status, ae.Code, errInternal(ae))
		return
	}
	RespondError(c, ae.Status, ae.Code, ae)
}

type internalError struct{ code string }

func (e internalError) Error() string {
	if e.code == "" {
		return "internal error"
	}
	return "internal error: " + e.code
}

func errInternal(ae *apierr.Error) error {
	// 502/503 messages describe an upstream condition the caller can act on.
	if ae.Status == http.StatusBadGateway || ae.Status == http.StatusServiceUnavailable {
		return ae
	}
	return internalError{code: ae.Code}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
