package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperr "github.com/platewise/platewise-backend/internal/pkg/errors"
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

// RespondFromError maps the service sentinels onto HTTP statuses. Anything
// unrecognized is a 500 with a generic message so internals never leak.
func RespondFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, apperr.ErrInvalidArgument):
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
	case errors.Is(err, apperr.ErrForbidden):
		RespondError(c, http.StatusForbidden, "forbidden", err)
	case errors.Is(err, apperr.ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", errors.New("internal error"))
	}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
