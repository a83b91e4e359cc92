package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mindjournal/mindjournal-backend/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupChatUpstream(t *testing.T, status int, reply string) (*httptest.Server, *[]map[string]interface{}) {
	t.Helper()
	var requests []map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		requests = append(requests, body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"upstream unavailable","type":"server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "gpt-4o-mini",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"message":       map[string]string{"role": "assistant", "content": reply},
					"finish_reason": "stop",
				},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func TestChatService_Reply(t *testing.T) {
	srv, requests := setupChatUpstream(t, http.StatusOK, "  It sounds like a long day. \n")
	svc := NewChatService(config.OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL + "/v1/",
		Model:   "gpt-4o-mini",
	})

	reply, err := svc.Reply(context.Background(), "I feel tired today")
	require.NoError(t, err)
	assert.Equal(t, "It sounds like a long day.", reply)

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, "gpt-4o-mini", req["model"])
	messages, ok := req["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]interface{})["role"])
	assert.Equal(t, "I feel tired today", messages[1].(map[string]interface{})["content"])
}

func TestChatService_Upstream_Error(t *testing.T) {
	srv, _ := setupChatUpstream(t, http.StatusInternalServerError, "")
	svc := NewChatService(config.OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL + "/v1"})

	_, err := svc.Reply(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrChatUpstream)
}

func TestChatService_Validation(t *testing.T) {
	svc := NewChatService(config.OpenAIConfig{})

	tests := []struct {
		name    string
		message string
		wantErr error
	}{
		{name: "Empty", message: "  ", wantErr: ErrEmptyMessage},
		{name: "Too long", message: strings.Repeat("x", 2001), wantErr: ErrMessageTooLong},
		{name: "Not configured", message: "hello", wantErr: ErrChatNotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Reply(context.Background(), tt.message)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
