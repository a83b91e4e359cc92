package errors

// Machine-readable error codes returned alongside the human message.
// Format: CATEGORY_SPECIFIC_DETAIL

const (
	// Auth
	AuthTokenInvalid = "AUTH_TOKEN_INVALID" // reset token unknown, mismatched, used or expired
	AuthWeakPassword = "AUTH_WEAK_PASSWORD"
	AuthOTPInvalid   = "AUTH_OTP_INVALID"

	// Validation
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationTooLong       = "VALIDATION_TOO_LONG"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// Resource
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"

	// Mail
	MailDispatchFailed = "MAIL_DISPATCH_FAILED"

	// Chat
	ChatNotConfigured = "CHAT_NOT_CONFIGURED"
	ChatUpstreamError = "CHAT_UPSTREAM_ERROR"

	// Internal
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalStoreError    = "INTERNAL_STORE_ERROR"
)
