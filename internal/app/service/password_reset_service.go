package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/mindjournal/mindjournal-backend/internal/app/model"
	"github.com/mindjournal/mindjournal-backend/internal/app/repository"
	"github.com/mindjournal/mindjournal-backend/pkg/logger"
	"github.com/mindjournal/mindjournal-backend/pkg/mailer"
	"github.com/mindjournal/mindjournal-backend/pkg/metrics"
	"github.com/mindjournal/mindjournal-backend/pkg/util"
)

const (
	// DefaultResetTokenTTL is how long a reset link stays valid.
	DefaultResetTokenTTL = 15 * time.Minute

	resetRequestedMessage = "Password reset instructions have been sent to your email address."
)

type PasswordResetService interface {
	RequestReset(ctx context.Context, email string, knownUsers []model.UserRecord) (*ResetRequestResult, error)
	Verify(ctx context.Context, email, token string) (VerifyResult, error)
	ConfirmReset(ctx context.Context, email, token, newPassword string, knownUsers []model.UserRecord) ([]model.UserRecord, error)
	SweepExpired(ctx context.Context) (int, error)
}

type ResetRequestResult struct {
	Success   bool
	Message   string
	MessageID string
}

// VerifyResult is the outcome of a token pre-check.
type VerifyResult struct {
	Valid  bool
	Reason string
}

type PasswordResetConfig struct {
	TokenTTL    time.Duration
	FrontendURL string
	Now         func() time.Time
	NewToken    func() string
}

type passwordResetService struct {
	store    repository.ResetTokenStore
	mailer   mailer.Mailer
	metrics  *metrics.Metrics
	ttl      time.Duration
	frontend string
	now      func() time.Time
	newToken func() string
}

func NewPasswordResetService(
	store repository.ResetTokenStore,
	m mailer.Mailer,
	mt *metrics.Metrics,
	cfg PasswordResetConfig,
) PasswordResetService {
	s := &passwordResetService{
		store:    store,
		mailer:   m,
		metrics:  mt,
		ttl:      cfg.TokenTTL,
		frontend: cfg.FrontendURL,
		now:      cfg.Now,
		newToken: cfg.NewToken,
	}
	if s.ttl <= 0 {
		s.ttl = DefaultResetTokenTTL
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newToken == nil {
		s.newToken = util.GenerateResetToken
	}
	return s
}

func (s *passwordResetService) RequestReset(ctx context.Context, email string, knownUsers []model.UserRecord) (*ResetRequestResult, error) {
	logger.Info("Processing password reset request", map[string]interface{}{
		"email": email,
	})

	if !util.IsValidEmail(email) {
		s.metrics.ResetRequests.WithLabelValues("invalid_email").Inc()
		return nil, ErrInvalidEmail
	}
	if findUser(knownUsers, email) < 0 {
		logger.Warn("Password reset requested for unknown email", map[string]interface{}{
			"email": email,
		})
		s.metrics.ResetRequests.WithLabelValues("unknown_user").Inc()
		return nil, ErrUserNotFound
	}

	token := s.newToken()
	issuedAt := s.now()
	rec, err := s.store.Put(ctx, token, email, issuedAt, s.ttl)
	if err != nil {
		logger.Error("Failed to store reset token", err, map[string]interface{}{
			"email": email,
		})
		s.metrics.ResetRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("store reset token: %w", err)
	}

	body, err := mailer.RenderPasswordReset(mailer.PasswordResetEmail{
		Email:     email,
		ResetLink: s.resetLink(email, token),
		ExpiresIn: s.ttl,
		SentAt:    issuedAt,
	})
	if err != nil {
		s.metrics.ResetRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	// The token stays stored when sending fails; the user has to request a
	// new one, which issues an independent token.
	messageID, err := s.mailer.Send(ctx, email, mailer.PasswordResetSubject, body)
	if err != nil {
		logger.Error("Failed to send password reset email", err, map[string]interface{}{
			"email": email,
		})
		s.metrics.ResetRequests.WithLabelValues("dispatch_failed").Inc()
		return nil, &DispatchError{Err: err}
	}

	logger.Info("Password reset email sent", map[string]interface{}{
		"email":      email,
		"expires_at": rec.ExpiresAt,
		"message_id": messageID,
	})
	s.metrics.ResetRequests.WithLabelValues("success").Inc()

	return &ResetRequestResult{
		Success:   true,
		Message:   resetRequestedMessage,
		MessageID: messageID,
	}, nil
}

func (s *passwordResetService) Verify(ctx context.Context, email, token string) (VerifyResult, error) {
	if _, err := s.checkToken(ctx, email, token); err != nil {
		var invalid *InvalidTokenError
		if errors.As(err, &invalid) {
			return VerifyResult{Valid: false, Reason: invalid.Reason}, nil
		}
		return VerifyResult{}, err
	}
	return VerifyResult{Valid: true}, nil
}

func (s *passwordResetService) ConfirmReset(ctx context.Context, email, token, newPassword string, knownUsers []model.UserRecord) ([]model.UserRecord, error) {
	logger.Info("Processing password reset confirmation", map[string]interface{}{
		"email": email,
	})

	if _, err := s.checkToken(ctx, email, token); err != nil {
		return nil, err
	}

	if !util.CheckPasswordStrength(newPassword).IsAcceptable() {
		return nil, ErrWeakPassword
	}

	if err := s.store.MarkUsed(ctx, token); err != nil {
		switch {
		case errors.Is(err, repository.ErrResetTokenAlreadyUsed):
			s.reject(ErrResetTokenUsed)
			return nil, ErrResetTokenUsed
		case errors.Is(err, repository.ErrResetTokenNotFound):
			s.reject(ErrResetTokenUnknown)
			return nil, ErrResetTokenUnknown
		default:
			logger.Error("Failed to mark reset token as used", err, map[string]interface{}{
				"email": email,
			})
			return nil, fmt.Errorf("mark reset token used: %w", err)
		}
	}

	// The token is spent even when the user list turns out not to contain
	// the email.
	idx := findUser(knownUsers, email)
	if idx < 0 {
		logger.Warn("Reset confirmed for email missing from user list", map[string]interface{}{
			"email": email,
		})
		return nil, ErrResetUserNotFound
	}

	knownUsers[idx].SetPassword(newPassword)

	logger.Info("Password reset successful", map[string]interface{}{
		"email": email,
	})
	s.metrics.ResetRedeemed.Inc()
	return knownUsers, nil
}

func (s *passwordResetService) SweepExpired(ctx context.Context) (int, error) {
	removed, err := s.store.SweepExpired(ctx, s.now())
	if err != nil {
		return removed, err
	}
	s.metrics.SweepRemoved.WithLabelValues("reset_tokens").Add(float64(removed))
	return removed, nil
}

// checkToken returns the stored record when it is redeemable for email, an
// *InvalidTokenError describing why it is not, or a store error.
func (s *passwordResetService) checkToken(ctx context.Context, email, token string) (*model.ResetToken, error) {
	rec, err := s.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrResetTokenNotFound) {
			return nil, s.reject(ErrResetTokenUnknown)
		}
		logger.Error("Failed to load reset token", err, nil)
		return nil, fmt.Errorf("load reset token: %w", err)
	}

	if rec.Email != email {
		return nil, s.reject(ErrResetTokenMismatch)
	}
	if rec.Used {
		return nil, s.reject(ErrResetTokenUsed)
	}
	if rec.IsExpired(s.now()) {
		if err := s.store.Delete(ctx, token); err != nil {
			logger.Warn("Failed to delete expired reset token", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return nil, s.reject(ErrResetTokenExpired)
	}
	return rec, nil
}

func (s *passwordResetService) reject(err *InvalidTokenError) *InvalidTokenError {
	s.metrics.TokenRejections.WithLabelValues(rejectionLabel(err)).Inc()
	return err
}

func rejectionLabel(err *InvalidTokenError) string {
	switch err {
	case ErrResetTokenMismatch:
		return "email_mismatch"
	case ErrResetTokenUsed:
		return "used"
	case ErrResetTokenExpired:
		return "expired"
	default:
		return "unknown"
	}
}

func (s *passwordResetService) resetLink(email, token string) string {
	q := url.Values{}
	q.Set("email", email)
	q.Set("token", token)
	return s.frontend + "/reset-password?" + q.Encode()
}

func findUser(users []model.UserRecord, email string) int {
	for i := range users {
		if users[i].Email == email {
			return i
		}
	}
	return -1
}
