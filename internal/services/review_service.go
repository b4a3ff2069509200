package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/quizmark/internal/annotator"
	"github.com/SAP-F-2025/quizmark/internal/events"
	"github.com/SAP-F-2025/quizmark/internal/models"
	"github.com/SAP-F-2025/quizmark/internal/utils"
	"github.com/SAP-F-2025/quizmark/internal/validator"
)

type reviewService struct {
	answerKey AnswerKeyService
	publisher events.EventPublisher
	validator *validator.Validator
	logger    *slog.Logger
	service   *ServiceLogger
}

// NewReviewService builds the server-side review. publisher may be nil.
func NewReviewService(answerKey AnswerKeyService, publisher events.EventPublisher, v *validator.Validator, logger *slog.Logger) ReviewService {
	return &reviewService{
		answerKey: answerKey,
		publisher: publisher,
		validator: v,
		logger:    logger,
		service:   NewServiceLogger(logger, "review"),
	}
}

func (s *reviewService) Review(ctx context.Context, req *ReviewRequest, page io.Reader, out io.Writer) (report *annotator.Report, err error) {
	start := time.Now()
	defer func() {
		s.service.LogOperation(ctx, "review", req.TaskID, time.Since(start), err)
	}()

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	source := &typedAnswerSource{keys: s.answerKey, want: req.Type}
	a := annotator.New(source, nil, utils.NewSlogLogger(s.logger))

	report, err = a.AnnotateHTML(ctx, page, out, req.TaskID, req.Type)
	if err != nil {
		return nil, err
	}

	s.publishReviewed(ctx, report)
	return report, nil
}

// publishReviewed never fails the review
func (s *reviewService) publishReviewed(ctx context.Context, report *annotator.Report) {
	if s.publisher == nil {
		return
	}
	event := events.NewEvent(events.EventTaskReviewed, events.TaskReviewedEvent{
		TaskID:     report.TaskID,
		Type:       report.Type,
		Summary:    report.Summary,
		ReviewedAt: time.Now().UTC(),
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish review event", "task_id", report.TaskID, "error", err)
	}
}

// typedAnswerSource rejects answer keys of another task type than requested.
type typedAnswerSource struct {
	keys AnswerKeyService
	want models.TaskType
}

func (t *typedAnswerSource) FetchAnswers(ctx context.Context, taskID string) (*models.AnswersResponse, error) {
	resp, err := t.keys.FetchAnswers(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t.want != "" && resp.Type != "" && resp.Type != t.want {
		return nil, fmt.Errorf("%w: task %s is %s", ErrTaskTypeMismatch, taskID, resp.Type)
	}
	return resp, nil
}
