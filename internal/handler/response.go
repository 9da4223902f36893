package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/agendasalud/clinic-api/pkg/errors"
)

type Response struct {
	Status     string      `json:"status"`
	Message    string      `json:"message,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`
	Data       interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// RespondError writes the HTTP mapping of err: AppError carries its own
// status and suggestion; anything else is a datastore/system failure and
// surfaces as a 500 with the underlying message.
func RespondError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		c.JSON(appErr.StatusCode(), &Response{
			Status:     "error",
			Message:    appErr.Message,
			Suggestion: appErr.Suggestion,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error()))
}
