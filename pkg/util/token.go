package util

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ResetTokenEntropyBytes is the number of crypto/rand bytes in a reset token.
const ResetTokenEntropyBytes = 16

// GenerateResetToken returns an opaque reset token built from two independent
// random sources and the issuance time. It never fails: crypto/rand.Read
// panics instead of returning an error on supported platforms.
func GenerateResetToken() string {
	return generateResetTokenAt(time.Now())
}

func generateResetTokenAt(now time.Time) string {
	b := make([]byte, ResetTokenEntropyBytes)
	_, _ = rand.Read(b)

	id := uuid.New()

	var sb strings.Builder
	sb.Grow(2*ResetTokenEntropyBytes + 32 + 12)
	sb.WriteString(hex.EncodeToString(b))
	sb.WriteString(hex.EncodeToString(id[:]))
	sb.WriteString(strconv.FormatInt(now.UnixMilli(), 36))
	return sb.String()
}
