package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mindjournal/mindjournal-backend/internal/app/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		context string
		status  int
		code    string
		message string
	}{
		{
			name:    "Invalid token reason",
			err:     service.ErrResetTokenExpired,
			status:  http.StatusBadRequest,
			code:    AuthTokenInvalid,
			message: "Reset token has expired",
		},
		{
			name:    "Invalid email",
			err:     service.ErrInvalidEmail,
			status:  http.StatusBadRequest,
			code:    ValidationInvalidFormat,
			message: "Please enter a valid email address",
		},
		{
			name:    "Weak password",
			err:     service.ErrWeakPassword,
			status:  http.StatusBadRequest,
			code:    AuthWeakPassword,
			message: "Password does not meet security requirements",
		},
		{
			name:    "Unknown user",
			err:     service.ErrUserNotFound,
			status:  http.StatusNotFound,
			code:    ResourceNotFound,
			message: "No account found with this email address",
		},
		{
			name:    "Reset dispatch",
			err:     &service.DispatchError{Err: errors.New("535 auth failed")},
			context: "reset request",
			status:  http.StatusInternalServerError,
			code:    MailDispatchFailed,
			message: "Failed to send reset email. Please try again later.",
		},
		{
			name:    "OTP dispatch",
			err:     &service.DispatchError{Err: errors.New("535 auth failed")},
			context: "send otp",
			status:  http.StatusInternalServerError,
			code:    MailDispatchFailed,
			message: "Failed to send OTP",
		},
		{
			name:   "Chat not configured",
			err:    service.ErrChatNotConfigured,
			status: http.StatusServiceUnavailable,
			code:   ChatNotConfigured,
		},
		{
			name:   "Chat upstream",
			err:    fmt.Errorf("%w: 500", service.ErrChatUpstream),
			status: http.StatusBadGateway,
			code:   ChatUpstreamError,
		},
		{
			name:   "Record not found",
			err:    gorm.ErrRecordNotFound,
			status: http.StatusNotFound,
			code:   ResourceNotFound,
		},
		{
			name:   "Store unavailable",
			err:    errors.New("dial tcp 127.0.0.1:6379: connect: connection refused"),
			status: http.StatusInternalServerError,
			code:   InternalStoreError,
		},
		{
			name:    "Unexpected",
			err:     errors.New("boom"),
			context: "activities",
			status:  http.StatusInternalServerError,
			code:    InternalServerError,
			message: "Failed to update custom activities",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseError(tt.err, tt.context)
			assert.Equal(t, tt.status, info.Status)
			assert.Equal(t, tt.code, info.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, info.Message)
			}
			assert.NotContains(t, info.Message, "boom")
		})
	}
}

func TestParseAndRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ParseAndRespond(c, fmt.Errorf("confirm: %w", service.ErrResetTokenUsed), "reset")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Error: "Reset token has already been used", Code: AuthTokenInvalid}, body)
}
