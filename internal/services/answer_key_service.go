package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/quizmark/internal/cache"
	"github.com/SAP-F-2025/quizmark/internal/models"
	"github.com/SAP-F-2025/quizmark/internal/repositories"
)

const answerKeyPrefix = "answers:"

type answerKeyService struct {
	repo   repositories.TaskRepository
	cache  cache.CacheService
	ttl    time.Duration
	logger *ServiceLogger
}

// NewAnswerKeyService builds the answer key service. cache may be nil.
func NewAnswerKeyService(repo repositories.TaskRepository, cacheService cache.CacheService, ttl time.Duration, logger *slog.Logger) AnswerKeyService {
	return &answerKeyService{
		repo:   repo,
		cache:  cacheService,
		ttl:    ttl,
		logger: NewServiceLogger(logger, "answer_key"),
	}
}

func (s *answerKeyService) GetAnswerKey(ctx context.Context, taskID string) (resp *models.AnswersResponse, err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "get_answer_key", taskID, time.Since(start), err)
	}()

	if taskID == "" {
		return nil, NewValidationError("task_id", "is required", taskID)
	}

	if cached, ok := s.fromCache(ctx, taskID); ok {
		return cached, nil
	}

	task, err := s.repo.GetByIDWithKey(ctx, nil, taskID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to load task: %w", err)
	}

	resp = models.AnswerKeyFor(task)
	s.store(ctx, taskID, resp)
	return resp, nil
}

func (s *answerKeyService) FetchAnswers(ctx context.Context, taskID string) (*models.AnswersResponse, error) {
	return s.GetAnswerKey(ctx, taskID)
}

func (s *answerKeyService) Invalidate(ctx context.Context, taskID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, answerKeyPrefix+taskID)
}

// InvalidateAll drops every cached answer key
func (s *answerKeyService) InvalidateAll(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.DeletePattern(ctx, answerKeyPrefix+"*")
}

// fromCache treats every cache failure as a miss
func (s *answerKeyService) fromCache(ctx context.Context, taskID string) (*models.AnswersResponse, bool) {
	if s.cache == nil {
		return nil, false
	}

	key := answerKeyPrefix + taskID
	var resp models.AnswersResponse
	err := s.cache.Get(ctx, key, &resp)
	switch {
	case err == nil:
		s.logger.LogCache(ctx, key, true, nil)
		return &resp, true
	case errors.Is(err, cache.ErrCacheMiss):
		s.logger.LogCache(ctx, key, false, nil)
	default:
		s.logger.LogCache(ctx, key, false, err)
	}
	return nil, false
}

func (s *answerKeyService) store(ctx context.Context, taskID string, resp *models.AnswersResponse) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, answerKeyPrefix+taskID, resp, s.ttl); err != nil {
		s.logger.LogCache(ctx, answerKeyPrefix+taskID, false, err)
	}
}
