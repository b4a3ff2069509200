package repositories

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/quizmark/internal/models"
	"gorm.io/gorm"
)

// TaskRepository stores tasks with their answer keys
type TaskRepository interface {
	// GetByIDWithKey loads a task with questions and answers ordered by position
	GetByIDWithKey(ctx context.Context, tx *gorm.DB, id string) (*models.Task, error)
	// Upsert replaces a task and its whole answer key
	Upsert(ctx context.Context, tx *gorm.DB, task *models.Task) error
	Exists(ctx context.Context, tx *gorm.DB, id string) (bool, error)
}

// IsNotFoundError reports whether err means the record does not exist
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
