package utils

import (
	"errors"
	"net/http"

	"robolibrary/models"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

func SuccessResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func CreatedResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string, err interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Message: message,
		Error:   err,
	})
}

func BadRequestResponse(c *gin.Context, message string, err interface{}) {
	ErrorResponse(c, http.StatusBadRequest, message, err)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, message, nil)
}

func ForbiddenResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, message, nil)
}

// DomainErrorResponse maps a service error onto the HTTP status carried by
// the domain error type, falling back to 500 for anything unrecognized.
func DomainErrorResponse(c *gin.Context, err error, defaultMessage string) {
	var httpErr models.HTTPError
	if errors.As(err, &httpErr) {
		ErrorResponse(c, httpErr.StatusCode(), httpErr.Error(), err.Error())
		return
	}
	ErrorResponse(c, http.StatusInternalServerError, defaultMessage, err.Error())
}
