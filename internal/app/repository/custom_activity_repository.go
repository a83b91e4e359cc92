package repository

import (
	"context"

	"github.com/mindjournal/mindjournal-backend/internal/app/model"
	"github.com/mindjournal/mindjournal-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomActivityRepository interface {
	ListByEmail(ctx context.Context, email string) ([]model.CustomActivity, error)
	// Add inserts the activity unless the email already has it.
	Add(ctx context.Context, email, name string) error
	Remove(ctx context.Context, email, name string) error
	// BulkAdd inserts activities in batches, skipping existing pairs, and
	// returns the number of rows inserted.
	BulkAdd(ctx context.Context, activities []model.CustomActivity, batchSize int) (int64, error)
}

type customActivityRepository struct {
	db *gorm.DB
}

func NewCustomActivityRepository(db *gorm.DB) CustomActivityRepository {
	return &customActivityRepository{db: db}
}

func (r *customActivityRepository) ListByEmail(ctx context.Context, email string) ([]model.CustomActivity, error) {
	var activities []model.CustomActivity
	err := r.db.WithContext(ctx).
		Where("user_email = ?", email).
		Order("id ASC").
		Find(&activities).Error
	if err != nil {
		logger.Error("Failed to list custom activities from database", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}
	return activities, nil
}

func (r *customActivityRepository) Add(ctx context.Context, email, name string) error {
	activity := &model.CustomActivity{UserEmail: email, Name: name}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_email"}, {Name: "name"}},
			DoNothing: true,
		}).
		Create(activity).Error
	if err != nil {
		logger.Error("Failed to add custom activity in database", err, map[string]interface{}{
			"email":    email,
			"activity": name,
		})
		return err
	}

	logger.Debug("Custom activity upserted in database", map[string]interface{}{
		"email":    email,
		"activity": name,
	})
	return nil
}

func (r *customActivityRepository) Remove(ctx context.Context, email, name string) error {
	result := r.db.WithContext(ctx).
		Where("user_email = ? AND name = ?", email, name).
		Delete(&model.CustomActivity{})
	if result.Error != nil {
		logger.Error("Failed to remove custom activity from database", result.Error, map[string]interface{}{
			"email":    email,
			"activity": name,
		})
		return result.Error
	}

	logger.Debug("Custom activity removed from database", map[string]interface{}{
		"email":    email,
		"activity": name,
		"count":    result.RowsAffected,
	})
	return nil
}

func (r *customActivityRepository) BulkAdd(ctx context.Context, activities []model.CustomActivity, batchSize int) (int64, error) {
	if len(activities) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_email"}, {Name: "name"}},
			DoNothing: true,
		}).
		CreateInBatches(activities, batchSize)
	if result.Error != nil {
		logger.Error("Failed to bulk add custom activities", result.Error, map[string]interface{}{
			"count":      len(activities),
			"batch_size": batchSize,
		})
		return 0, result.Error
	}

	logger.Info("Custom activities imported", map[string]interface{}{
		"requested": len(activities),
		"inserted":  result.RowsAffected,
	})
	return result.RowsAffected, nil
}
