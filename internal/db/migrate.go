package db

import (
	"github.com/mindjournal/mindjournal-backend/internal/app/model"
	"github.com/mindjournal/mindjournal-backend/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table the backend owns.
func Models() []interface{} {
	return []interface{}{
		&model.CustomActivity{},
		&model.ResetToken{},
	}
}

// Migrate runs database migrations
func Migrate(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	if err := db.AutoMigrate(Models()...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}
