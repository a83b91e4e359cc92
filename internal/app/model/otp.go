package model

import (
	"time"
)

// OTPCode is the pending verification code for one email. Only a hash of the
// code is kept.
type OTPCode struct {
	Email     string    `json:"email"`
	CodeHash  string    `json:"code_hash"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"` // zero means no expiry
}

// IsExpired reports whether the code is past its expiry at now.
func (c *OTPCode) IsExpired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
