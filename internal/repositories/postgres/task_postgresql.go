package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/quizmark/internal/models"
	"github.com/SAP-F-2025/quizmark/internal/repositories"
	"gorm.io/gorm"
)

type TaskPostgreSQL struct {
	db *gorm.DB
}

func NewTaskPostgreSQL(db *gorm.DB) repositories.TaskRepository {
	return &TaskPostgreSQL{db: db}
}

func (r *TaskPostgreSQL) GetByIDWithKey(ctx context.Context, tx *gorm.DB, id string) (*models.Task, error) {
	db := r.getDB(tx)
	var task models.Task
	err := db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskPostgreSQL) Upsert(ctx context.Context, tx *gorm.DB, task *models.Task) error {
	return r.getDB(tx).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.deleteTree(tx, task.ID); err != nil {
			return err
		}
		if err := tx.Create(task).Error; err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		return nil
	})
}

func (r *TaskPostgreSQL) Exists(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	var count int64
	err := r.getDB(tx).WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *TaskPostgreSQL) deleteTree(tx *gorm.DB, id string) error {
	questionIDs := tx.Model(&models.Question{}).Select("id").Where("task_id = ?", id)
	if err := tx.Where("question_id IN (?)", questionIDs).Delete(&models.Answer{}).Error; err != nil {
		return fmt.Errorf("failed to delete answers: %w", err)
	}
	if err := tx.Where("task_id = ?", id).Delete(&models.Question{}).Error; err != nil {
		return fmt.Errorf("failed to delete questions: %w", err)
	}
	if err := tx.Where("id = ?", id).Delete(&models.Task{}).Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (r *TaskPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
