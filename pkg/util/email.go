package util

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	emailValidator     *validator.Validate
	emailValidatorOnce sync.Once
)

// IsValidEmail reports whether s is a syntactically valid address.
func IsValidEmail(s string) bool {
	emailValidatorOnce.Do(func() {
		emailValidator = validator.New()
	})
	if s == "" || strings.TrimSpace(s) != s {
		return false
	}
	return emailValidator.Var(s, "required,email") == nil
}
