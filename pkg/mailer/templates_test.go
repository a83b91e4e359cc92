package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPasswordReset(t *testing.T) {
	body, err := RenderPasswordReset(PasswordResetEmail{
		Email:     "a@x.com",
		ResetLink: "http://localhost:5173/reset-password?email=a%40x.com&token=abc",
		ExpiresIn: 15 * time.Minute,
		SentAt:    time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Contains(t, body, `href="http://localhost:5173/reset-password?email=a%40x.com&amp;token=abc"`)
	assert.Contains(t, body, "expire in 15 minutes")
	assert.Contains(t, body, "a@x.com")
	assert.Contains(t, body, "2026-10-16 09:30 UTC")
}

func TestRenderOTP(t *testing.T) {
	body, err := RenderOTP(OTPEmail{Code: "482913", ValidFor: 5 * time.Minute})
	require.NoError(t, err)
	assert.Contains(t, body, "<b>482913</b>")
	assert.Contains(t, body, "valid for 5 minutes")

	body, err = RenderOTP(OTPEmail{Code: "482913"})
	require.NoError(t, err)
	assert.NotContains(t, body, "valid for")
}
