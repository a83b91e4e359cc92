package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"` // human-readable message
	Code  string `json:"code"`  // machine code, see codes.go
}

func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error: message,
		Code:  errorCode,
	})
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// InvalidBody answers a request whose JSON body could not be bound.
func InvalidBody(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request body"
	}
	BadRequest(c, ValidationInvalidInput, message)
}
