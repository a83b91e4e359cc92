package util

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	otpMin = 100000
	otpMax = 999999

	// otpHashCost keeps verification fast; a six digit code is short-lived
	// and brute force is bounded by the single-shot delete.
	otpHashCost = bcrypt.MinCost
)

var ErrMalformedOTP = errors.New("otp must start with a number")

// GenerateOTP returns a six digit code in [100000, 999999].
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+otpMin, 10), nil
}

// NormalizeOTP parses the leading integer of a user-entered code and returns
// its canonical decimal form, so "0123456", " 123456 ", "123456.0" and
// 123456 compare equal. Anything after the digits is ignored.
func NormalizeOTP(code string) (string, error) {
	code = strings.TrimLeft(code, " \t\r\n")
	code = strings.TrimPrefix(code, "+")

	end := 0
	for end < len(code) && code[end] >= '0' && code[end] <= '9' {
		end++
	}
	if end == 0 {
		return "", ErrMalformedOTP
	}

	n, err := strconv.Atoi(code[:end])
	if err != nil {
		return "", ErrMalformedOTP
	}
	return strconv.Itoa(n), nil
}

// HashOTP hashes a canonical code for storage.
func HashOTP(code string) (string, error) {
	canonical, err := NormalizeOTP(code)
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(canonical), otpHashCost)
	if err != nil {
		return "", fmt.Errorf("hash otp: %w", err)
	}
	return string(hash), nil
}

// CompareOTP reports whether code is numerically equal to the hashed code.
func CompareOTP(hash, code string) bool {
	canonical, err := NormalizeOTP(code)
	if err != nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(canonical)) == nil
}
