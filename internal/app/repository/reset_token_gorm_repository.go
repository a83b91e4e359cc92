package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mindjournal/mindjournal-backend/internal/app/model"
	"github.com/mindjournal/mindjournal-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormResetTokenStore struct {
	db *gorm.DB
}

// NewGormResetTokenStore stores tokens in the reset_tokens table.
func NewGormResetTokenStore(db *gorm.DB) ResetTokenStore {
	return &gormResetTokenStore{db: db}
}

func (r *gormResetTokenStore) Put(ctx context.Context, token, email string, issuedAt time.Time, ttl time.Duration) (*model.ResetToken, error) {
	rec := &model.ResetToken{
		Token:     token,
		Email:     email,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(ttl),
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(rec).Error
	if err != nil {
		logger.Error("Failed to create reset token in database", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}
	return rec, nil
}

func (r *gormResetTokenStore) Get(ctx context.Context, token string) (*model.ResetToken, error) {
	var rec model.ResetToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResetTokenNotFound
		}
		logger.Error("Failed to find reset token in database", err, nil)
		return nil, err
	}
	return &rec, nil
}

func (r *gormResetTokenStore) MarkUsed(ctx context.Context, token string) error {
	result := r.db.WithContext(ctx).
		Model(&model.ResetToken{}).
		Where("token = ? AND used = ?", token, false).
		Update("used", true)
	if result.Error != nil {
		logger.Error("Failed to mark reset token as used in database", result.Error, nil)
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}

	// Nothing updated: either the token is gone or another request won.
	if _, err := r.Get(ctx, token); err != nil {
		return err
	}
	return ErrResetTokenAlreadyUsed
}

func (r *gormResetTokenStore) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&model.ResetToken{}).Error
}

func (r *gormResetTokenStore) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&model.ResetToken{})
	if result.Error != nil {
		logger.Error("Failed to delete expired reset tokens from database", result.Error, nil)
		return 0, result.Error
	}

	logger.Debug("Expired reset tokens deleted from database", map[string]interface{}{
		"count": result.RowsAffected,
	})
	return int(result.RowsAffected), nil
}
