package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	mu     sync.Mutex
	bodies []string
	err    error
}

func (m *recordingMailer) Send(_ context.Context, _, _, htmlBody string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.bodies = append(m.bodies, htmlBody)
	return fmt.Sprintf("<%d@test.local>", len(m.bodies)), nil
}

func (m *recordingMailer) last(t *testing.T) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.bodies)
	return m.bodies[len(m.bodies)-1]
}

var (
	resetTokenPattern = regexp.MustCompile(`token=([0-9a-z]+)`)
	otpPattern        = regexp.MustCompile(`<b>(\d{6})</b>`)
)

func (m *recordingMailer) lastResetToken(t *testing.T) string {
	match := resetTokenPattern.FindStringSubmatch(m.last(t))
	require.Len(t, match, 2)
	return match[1]
}

func (m *recordingMailer) lastOTP(t *testing.T) string {
	match := otpPattern.FindStringSubmatch(m.last(t))
	require.Len(t, match, 2)
	return match[1]
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
