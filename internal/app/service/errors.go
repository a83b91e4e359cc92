package service

import (
	"errors"
)

// Error categories. Concrete errors below match them through errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrInvalidToken = errors.New("invalid token")
	ErrDispatch     = errors.New("email dispatch failed")
)

var (
	ErrInvalidEmail    = &ValidationError{Message: "Please enter a valid email address"}
	ErrWeakPassword    = &ValidationError{Message: "Password does not meet security requirements"}
	ErrInvalidActivity = &ValidationError{Message: "Email and activity are required"}
	ErrActivityTooLong = &ValidationError{Message: "Activity name is too long"}
	ErrEmptyMessage    = &ValidationError{Message: "Message is required"}
	ErrMessageTooLong  = &ValidationError{Message: "Message is too long"}

	ErrUserNotFound      = &NotFoundError{Message: "No account found with this email address"}
	ErrResetUserNotFound = &NotFoundError{Message: "User not found"}

	ErrResetTokenUnknown  = &InvalidTokenError{Reason: "Invalid reset token"}
	ErrResetTokenMismatch = &InvalidTokenError{Reason: "Token does not match email"}
	ErrResetTokenUsed     = &InvalidTokenError{Reason: "Reset token has already been used"}
	ErrResetTokenExpired  = &InvalidTokenError{Reason: "Reset token has expired"}

	ErrChatNotConfigured = errors.New("chat assistant is not configured")
	ErrChatUpstream      = errors.New("chat assistant failed to respond")
)

// ValidationError reports malformed input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string        { return e.Message }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports an unknown account.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string        { return e.Message }
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InvalidTokenError reports why a reset token cannot be redeemed.
type InvalidTokenError struct {
	Reason string
}

func (e *InvalidTokenError) Error() string        { return e.Reason }
func (e *InvalidTokenError) Is(target error) bool { return target == ErrInvalidToken }

// DispatchError wraps a mail transport failure.
type DispatchError struct {
	Err error
}

func (e *DispatchError) Error() string        { return "failed to send email: " + e.Err.Error() }
func (e *DispatchError) Unwrap() error        { return e.Err }
func (e *DispatchError) Is(target error) bool { return target == ErrDispatch }
