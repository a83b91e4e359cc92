package util

import (
	"strings"
	"unicode"
)

// PasswordStrength is the result of CheckPasswordStrength.
type PasswordStrength struct {
	MinLength    bool
	HasUppercase bool
	HasLowercase bool
	HasNumber    bool
	HasSpecial   bool
	Score        int
	Level        string // weak, medium, strong
}

const (
	passwordMinLength   = 8
	passwordMinScore    = 4
	passwordSpecialSet  = `!@#$%^&*(),.?":{}|<>`
	PasswordLevelWeak   = "weak"
	PasswordLevelMedium = "medium"
	PasswordLevelStrong = "strong"
)

// CheckPasswordStrength scores a password against five criteria.
func CheckPasswordStrength(password string) PasswordStrength {
	s := PasswordStrength{
		MinLength: len([]rune(password)) >= passwordMinLength,
	}
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			s.HasUppercase = true
		case unicode.IsLower(r):
			s.HasLowercase = true
		case unicode.IsDigit(r):
			s.HasNumber = true
		case strings.ContainsRune(passwordSpecialSet, r):
			s.HasSpecial = true
		}
	}

	for _, ok := range []bool{s.MinLength, s.HasUppercase, s.HasLowercase, s.HasNumber, s.HasSpecial} {
		if ok {
			s.Score++
		}
	}

	switch {
	case s.Score < 2:
		s.Level = PasswordLevelWeak
	case s.Score < 4:
		s.Level = PasswordLevelMedium
	default:
		s.Level = PasswordLevelStrong
	}
	return s
}

// IsAcceptable reports whether the password meets at least four criteria.
func (s PasswordStrength) IsAcceptable() bool {
	return s.Score >= passwordMinScore
}
