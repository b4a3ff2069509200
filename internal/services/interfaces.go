package services

import (
	"context"
	"io"

	"github.com/SAP-F-2025/quizmark/internal/annotator"
	"github.com/SAP-F-2025/quizmark/internal/models"
)

// AnswerKeyService serves task answer keys
type AnswerKeyService interface {
	GetAnswerKey(ctx context.Context, taskID string) (*models.AnswersResponse, error)
	// FetchAnswers lets the service act as the annotator's answer source
	FetchAnswers(ctx context.Context, taskID string) (*models.AnswersResponse, error)
	Invalidate(ctx context.Context, taskID string) error
	InvalidateAll(ctx context.Context) error
}

// ImportService loads answer keys from uploaded files
type ImportService interface {
	ImportFromExcel(ctx context.Context, reader io.Reader) (*models.ImportSummary, error)
	ImportFromYAML(ctx context.Context, reader io.Reader) (*models.ImportSummary, error)
}

// ReviewService annotates a submitted quiz page on the server
type ReviewService interface {
	Review(ctx context.Context, req *ReviewRequest, page io.Reader, out io.Writer) (*annotator.Report, error)
}

type ReviewRequest struct {
	TaskID string          `json:"task_id" validate:"required,max=64"`
	Type   models.TaskType `json:"type" validate:"omitempty,task_type"`
}

// ServiceManager groups every service the handlers need
type ServiceManager interface {
	AnswerKey() AnswerKeyService
	Import() ImportService
	Review() ReviewService
}

type serviceManager struct {
	answerKey AnswerKeyService
	imports   ImportService
	review    ReviewService
}

func NewServiceManager(answerKey AnswerKeyService, imports ImportService, review ReviewService) ServiceManager {
	return &serviceManager{
		answerKey: answerKey,
		imports:   imports,
		review:    review,
	}
}

func (m *serviceManager) AnswerKey() AnswerKeyService { return m.answerKey }
func (m *serviceManager) Import() ImportService       { return m.imports }
func (m *serviceManager) Review() ReviewService       { return m.review }
