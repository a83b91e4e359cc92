package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mindjournal/mindjournal-backend/config"
	"github.com/mindjournal/mindjournal-backend/pkg/logger"
	openai "github.com/sashabaranov/go-openai"
)

const (
	maxChatMessageLength = 2000
	maxChatReplyTokens   = 400

	mindbotSystemPrompt = "You are MindBot, a warm and supportive companion inside the MindJournal " +
		"mood tracking app. Listen carefully, reflect the user's feelings back to them, and offer " +
		"gentle, practical suggestions for self-care. Keep answers short. You are not a therapist: " +
		"if the user mentions self-harm or a crisis, encourage them to contact local emergency " +
		"services or a crisis hotline right away."
)

type ChatService interface {
	Reply(ctx context.Context, message string) (string, error)
}

type chatService struct {
	client *openai.Client
	model  string
}

// NewChatService returns a chat service backed by the OpenAI API. Without an
// API key every Reply fails with ErrChatNotConfigured.
func NewChatService(cfg config.OpenAIConfig) ChatService {
	s := &chatService{model: cfg.Model}
	if s.model == "" {
		s.model = openai.GPT4oMini
	}
	if cfg.APIKey == "" {
		logger.Warn("OPENAI_API_KEY not set, MindBot is disabled")
		return s
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	s.client = openai.NewClientWithConfig(clientCfg)
	return s
}

func (s *chatService) Reply(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}
	if utf8.RuneCountInString(message) > maxChatMessageLength {
		return "", ErrMessageTooLong
	}
	if s.client == nil {
		return "", ErrChatNotConfigured
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: mindbotSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		MaxTokens: maxChatReplyTokens,
	})
	if err != nil {
		logger.Error("MindBot completion failed", err, map[string]interface{}{
			"model": s.model,
		})
		return "", fmt.Errorf("%w: %v", ErrChatUpstream, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrChatUpstream)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
