package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mindjournal/mindjournal-backend/internal/app/model"
)

var ErrOTPNotFound = errors.New("otp not found")

// OTPStore keeps at most one pending code per email.
type OTPStore interface {
	// Save replaces any pending code for code.Email.
	Save(ctx context.Context, code *model.OTPCode) error
	Get(ctx context.Context, email string) (*model.OTPCode, error)
	// Consume deletes the pending code only if its hash is still codeHash,
	// and reports whether it did.
	Consume(ctx context.Context, email, codeHash string) (bool, error)
	Delete(ctx context.Context, email string) error
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}

type memoryOTPStore struct {
	mu    sync.Mutex
	codes map[string]model.OTPCode
}

func NewMemoryOTPStore() OTPStore {
	return &memoryOTPStore{codes: make(map[string]model.OTPCode)}
}

func (s *memoryOTPStore) Save(_ context.Context, code *model.OTPCode) error {
	s.mu.Lock()
	s.codes[code.Email] = *code
	s.mu.Unlock()
	return nil
}

func (s *memoryOTPStore) Get(_ context.Context, email string) (*model.OTPCode, error) {
	s.mu.Lock()
	code, ok := s.codes[email]
	s.mu.Unlock()
	if !ok {
		return nil, ErrOTPNotFound
	}
	return &code, nil
}

func (s *memoryOTPStore) Consume(_ context.Context, email, codeHash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.codes[email]
	if !ok || code.CodeHash != codeHash {
		return false, nil
	}
	delete(s.codes, email)
	return true, nil
}

func (s *memoryOTPStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	delete(s.codes, email)
	s.mu.Unlock()
	return nil
}

func (s *memoryOTPStore) SweepExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for email, code := range s.codes {
		if !code.ExpiresAt.IsZero() && code.ExpiresAt.Before(now) {
			delete(s.codes, email)
			removed++
		}
	}
	return removed, nil
}
