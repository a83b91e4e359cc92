package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mindjournal/mindjournal-backend/internal/app/model"
	"github.com/mindjournal/mindjournal-backend/pkg/logger"
)

var (
	ErrResetTokenNotFound    = errors.New("reset token not found")
	ErrResetTokenAlreadyUsed = errors.New("reset token already used")
)

// ResetTokenStore persists reset tokens. Implementations must be safe for
// concurrent use, and MarkUsed must succeed at most once per token.
type ResetTokenStore interface {
	Put(ctx context.Context, token, email string, issuedAt time.Time, ttl time.Duration) (*model.ResetToken, error)
	Get(ctx context.Context, token string) (*model.ResetToken, error)
	MarkUsed(ctx context.Context, token string) error
	Delete(ctx context.Context, token string) error
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}

type memoryResetTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]model.ResetToken
}

// NewMemoryResetTokenStore returns a process-local store. Tokens are lost on
// restart and are invisible to other instances.
func NewMemoryResetTokenStore() ResetTokenStore {
	return &memoryResetTokenStore{tokens: make(map[string]model.ResetToken)}
}

func (s *memoryResetTokenStore) Put(_ context.Context, token, email string, issuedAt time.Time, ttl time.Duration) (*model.ResetToken, error) {
	rec := model.ResetToken{
		Token:     token,
		Email:     email,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(ttl),
	}

	s.mu.Lock()
	s.tokens[token] = rec
	s.mu.Unlock()

	logger.Debug("Reset token stored in memory", map[string]interface{}{
		"email":      email,
		"expires_at": rec.ExpiresAt,
	})
	return &rec, nil
}

func (s *memoryResetTokenStore) Get(_ context.Context, token string) (*model.ResetToken, error) {
	s.mu.RLock()
	rec, ok := s.tokens[token]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrResetTokenNotFound
	}
	return &rec, nil
}

func (s *memoryResetTokenStore) MarkUsed(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.tokens[token]
	if !ok {
		return ErrResetTokenNotFound
	}
	if rec.Used {
		return ErrResetTokenAlreadyUsed
	}
	rec.Used = true
	s.tokens[token] = rec
	return nil
}

func (s *memoryResetTokenStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
	return nil
}

func (s *memoryResetTokenStore) SweepExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, rec := range s.tokens {
		if rec.ExpiresAt.Before(now) {
			delete(s.tokens, token)
			removed++
		}
	}
	return removed, nil
}
