package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mindjournal/mindjournal-backend/internal/app/model"
	"github.com/mindjournal/mindjournal-backend/internal/app/repository"
	"github.com/mindjournal/mindjournal-backend/pkg/logger"
	"github.com/mindjournal/mindjournal-backend/pkg/mailer"
	"github.com/mindjournal/mindjournal-backend/pkg/metrics"
	"github.com/mindjournal/mindjournal-backend/pkg/util"
)

const DefaultOTPTTL = 5 * time.Minute

type OTPService interface {
	SendOTP(ctx context.Context, email string) error
	// VerifyOTP reports whether code matches the pending code for email.
	// A successful check consumes the code.
	VerifyOTP(ctx context.Context, email, code string) (bool, error)
	SweepExpired(ctx context.Context) (int, error)
}

type OTPConfig struct {
	// TTL of zero keeps codes until they are verified or replaced.
	TTL     time.Duration
	Now     func() time.Time
	NewCode func() (string, error)
}

type otpService struct {
	store   repository.OTPStore
	mailer  mailer.Mailer
	metrics *metrics.Metrics
	ttl     time.Duration
	now     func() time.Time
	newCode func() (string, error)
}

func NewOTPService(store repository.OTPStore, m mailer.Mailer, mt *metrics.Metrics, cfg OTPConfig) OTPService {
	s := &otpService{
		store:   store,
		mailer:  m,
		metrics: mt,
		ttl:     cfg.TTL,
		now:     cfg.Now,
		newCode: cfg.NewCode,
	}
	if s.ttl < 0 {
		s.ttl = DefaultOTPTTL
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newCode == nil {
		s.newCode = util.GenerateOTP
	}
	return s
}

func (s *otpService) SendOTP(ctx context.Context, email string) error {
	if !util.IsValidEmail(email) {
		s.metrics.OTPSent.WithLabelValues("invalid_email").Inc()
		return ErrInvalidEmail
	}

	code, err := s.newCode()
	if err != nil {
		s.metrics.OTPSent.WithLabelValues("error").Inc()
		return fmt.Errorf("generate otp: %w", err)
	}
	hash, err := util.HashOTP(code)
	if err != nil {
		s.metrics.OTPSent.WithLabelValues("error").Inc()
		return err
	}

	issuedAt := s.now()
	rec := &model.OTPCode{
		Email:    email,
		CodeHash: hash,
		IssuedAt: issuedAt,
	}
	if s.ttl > 0 {
		rec.ExpiresAt = issuedAt.Add(s.ttl)
	}
	if err := s.store.Save(ctx, rec); err != nil {
		logger.Error("Failed to store OTP", err, map[string]interface{}{
			"email": email,
		})
		s.metrics.OTPSent.WithLabelValues("error").Inc()
		return fmt.Errorf("store otp: %w", err)
	}

	body, err := mailer.RenderOTP(mailer.OTPEmail{Code: code, ValidFor: s.ttl})
	if err != nil {
		s.metrics.OTPSent.WithLabelValues("error").Inc()
		return err
	}

	messageID, err := s.mailer.Send(ctx, email, mailer.OTPSubject, body)
	if err != nil {
		logger.Error("Failed to send OTP email", err, map[string]interface{}{
			"email": email,
		})
		s.metrics.OTPSent.WithLabelValues("dispatch_failed").Inc()
		return &DispatchError{Err: err}
	}

	logger.Info("OTP sent", map[string]interface{}{
		"email":      email,
		"message_id": messageID,
	})
	s.metrics.OTPSent.WithLabelValues("success").Inc()
	return nil
}

func (s *otpService) VerifyOTP(ctx context.Context, email, code string) (bool, error) {
	rec, err := s.store.Get(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrOTPNotFound) {
			s.metrics.OTPVerified.WithLabelValues("not_found").Inc()
			return false, nil
		}
		logger.Error("Failed to load OTP", err, map[string]interface{}{
			"email": email,
		})
		return false, fmt.Errorf("load otp: %w", err)
	}

	if rec.IsExpired(s.now()) {
		if err := s.store.Delete(ctx, email); err != nil {
			logger.Warn("Failed to delete expired OTP", map[string]interface{}{
				"email": email,
				"error": err.Error(),
			})
		}
		s.metrics.OTPVerified.WithLabelValues("expired").Inc()
		return false, nil
	}

	if !util.CompareOTP(rec.CodeHash, code) {
		s.metrics.OTPVerified.WithLabelValues("mismatch").Inc()
		return false, nil
	}

	// A concurrent verify or a fresh SendOTP may have replaced the code since
	// Get; only the caller that deletes this exact hash succeeds.
	consumed, err := s.store.Consume(ctx, email, rec.CodeHash)
	if err != nil {
		logger.Error("Failed to consume OTP", err, map[string]interface{}{
			"email": email,
		})
		return false, fmt.Errorf("consume otp: %w", err)
	}
	if !consumed {
		s.metrics.OTPVerified.WithLabelValues("not_found").Inc()
		return false, nil
	}

	logger.Info("OTP verified", map[string]interface{}{
		"email": email,
	})
	s.metrics.OTPVerified.WithLabelValues("success").Inc()
	return true, nil
}

func (s *otpService) SweepExpired(ctx context.Context) (int, error) {
	removed, err := s.store.SweepExpired(ctx, s.now())
	if err != nil {
		return removed, err
	}
	s.metrics.SweepRemoved.WithLabelValues("otp_codes").Add(float64(removed))
	return removed, nil
}
