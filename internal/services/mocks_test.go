package services

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/SAP-F-2025/quizmark/internal/models"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockTaskRepository is a mock implementation of TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) GetByIDWithKey(ctx context.Context, tx *gorm.DB, id string) (*models.Task, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskRepository) Upsert(ctx context.Context, tx *gorm.DB, task *models.Task) error {
	return m.Called(ctx, tx, task).Error(0)
}

func (m *MockTaskRepository) Exists(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	args := m.Called(ctx, tx, id)
	return args.Bool(0), args.Error(1)
}

// MockAnswerKeyService is a mock implementation of AnswerKeyService
type MockAnswerKeyService struct {
	mock.Mock
}

func (m *MockAnswerKeyService) GetAnswerKey(ctx context.Context, taskID string) (*models.AnswersResponse, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnswersResponse), args.Error(1)
}

func (m *MockAnswerKeyService) FetchAnswers(ctx context.Context, taskID string) (*models.AnswersResponse, error) {
	return m.GetAnswerKey(ctx, taskID)
}

func (m *MockAnswerKeyService) Invalidate(ctx context.Context, taskID string) error {
	return m.Called(ctx, taskID).Error(0)
}

func (m *MockAnswerKeyService) InvalidateAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

func boolPtr(b bool) *bool { return &b }
