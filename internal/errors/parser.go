package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mindjournal/mindjournal-backend/internal/app/service"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ErrorInfo is the HTTP rendering of an error.
type ErrorInfo struct {
	Status  int
	Code    string
	Message string
}

// ParseError maps a service or store error to a status, code and message.
// Internal details are never echoed back; context selects the fallback
// message.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Status:  http.StatusInternalServerError,
			Code:    InternalServerError,
			Message: getDefaultErrorMessage(context),
		}
	}

	// 1. Service taxonomy
	var invalidToken *service.InvalidTokenError
	if errors.As(err, &invalidToken) {
		return ErrorInfo{Status: http.StatusBadRequest, Code: AuthTokenInvalid, Message: invalidToken.Reason}
	}

	var validation *service.ValidationError
	if errors.As(err, &validation) {
		return ErrorInfo{Status: http.StatusBadRequest, Code: validationCode(validation), Message: validation.Message}
	}

	var notFound *service.NotFoundError
	if errors.As(err, &notFound) {
		return ErrorInfo{Status: http.StatusNotFound, Code: ResourceNotFound, Message: notFound.Message}
	}

	if errors.Is(err, service.ErrDispatch) {
		return ErrorInfo{
			Status:  http.StatusInternalServerError,
			Code:    MailDispatchFailed,
			Message: getDispatchMessage(context),
		}
	}

	if errors.Is(err, service.ErrChatNotConfigured) {
		return ErrorInfo{
			Status:  http.StatusServiceUnavailable,
			Code:    ChatNotConfigured,
			Message: "MindBot is not available right now",
		}
	}
	if errors.Is(err, service.ErrChatUpstream) {
		return ErrorInfo{
			Status:  http.StatusBadGateway,
			Code:    ChatUpstreamError,
			Message: "MindBot could not answer, please try again",
		}
	}

	// 2. Store errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Status: http.StatusNotFound, Code: ResourceNotFound, Message: "Requested data was not found"}
	}

	errLower := strings.ToLower(err.Error())
	if strings.Contains(errLower, "duplicate key") || strings.Contains(errLower, "unique constraint") {
		return ErrorInfo{Status: http.StatusConflict, Code: ResourceAlreadyExists, Message: "Data already exists"}
	}

	if errors.Is(err, redis.ErrClosed) ||
		strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "timeout") {
		return ErrorInfo{
			Status:  http.StatusInternalServerError,
			Code:    InternalStoreError,
			Message: "Storage is temporarily unavailable, please try again later",
		}
	}

	// 3. Fallback
	return ErrorInfo{
		Status:  http.StatusInternalServerError,
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func validationCode(err *service.ValidationError) string {
	switch err {
	case service.ErrInvalidEmail:
		return ValidationInvalidFormat
	case service.ErrWeakPassword:
		return AuthWeakPassword
	case service.ErrActivityTooLong, service.ErrMessageTooLong:
		return ValidationTooLong
	case service.ErrInvalidActivity, service.ErrEmptyMessage:
		return ValidationRequired
	default:
		return ValidationInvalidInput
	}
}

func getDispatchMessage(context string) string {
	if strings.Contains(strings.ToLower(context), "otp") {
		return "Failed to send OTP"
	}
	return "Failed to send reset email. Please try again later."
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "reset"):
		return "Failed to process password reset"
	case strings.Contains(contextLower, "otp"):
		return "Failed to process OTP"
	case strings.Contains(contextLower, "activit"):
		return "Failed to update custom activities"
	}
	return "Internal server error"
}

// ParseAndRespond renders err as an ErrorResponse.
func ParseAndRespond(c *gin.Context, err error, context string) {
	info := ParseError(err, context)
	RespondWithError(c, info.Status, info.Code, info.Message)
}
