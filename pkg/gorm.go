package pkg

import (
	"fmt"

	"github.com/SAP-F-2025/quizmark/internal/config"
	"github.com/SAP-F-2025/quizmark/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Info
	if cfg.Environment == "production" {
		logLevel = logger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the answer key tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Task{}, &models.Question{}, &models.Answer{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
