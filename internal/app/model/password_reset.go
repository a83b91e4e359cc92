package model

import (
	"time"
)

// ResetToken is a single-use credential authorizing one password change for
// one email address.
type ResetToken struct {
	Token     string    `gorm:"primaryKey;size:128" json:"-"`                  // never exposed
	Email     string    `gorm:"size:255;not null;index" json:"email"`          // bound at creation, immutable
	IssuedAt  time.Time `gorm:"not null" json:"issued_at"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	Used      bool      `gorm:"not null;default:false" json:"used"`
}

func (ResetToken) TableName() string {
	return "reset_tokens"
}

// IsExpired reports whether the token is past its expiry at now.
func (t *ResetToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// IsRedeemable reports whether the token can still authorize a reset.
func (t *ResetToken) IsRedeemable(now time.Time) bool {
	return !t.Used && !t.IsExpired(now)
}
