package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/SAP-F-2025/quizmark/internal/models"
	"github.com/SAP-F-2025/quizmark/internal/repositories"
	"github.com/SAP-F-2025/quizmark/internal/validator"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
)

// Workbook columns, matched case-insensitively against the header row.
const (
	colTaskID   = "task_id"
	colType     = "type"
	colTitle    = "title"
	colQuestion = "question"
	colAnswer   = "answer"
	colCorrect  = "correct"
	colMetadata = "metadata"
)

var requiredColumns = []string{colTaskID, colType, colQuestion, colCorrect}

// pendingTask is a parsed task and the number of source rows it came from
type pendingTask struct {
	task *models.Task
	rows int
}

type importService struct {
	repo      repositories.TaskRepository
	answerKey AnswerKeyService
	validator *validator.Validator
	logger    *slog.Logger
	service   *ServiceLogger
}

func NewImportService(repo repositories.TaskRepository, answerKey AnswerKeyService, v *validator.Validator, logger *slog.Logger) ImportService {
	return &importService{
		repo:      repo,
		answerKey: answerKey,
		validator: v,
		logger:    logger,
		service:   NewServiceLogger(logger, "import"),
	}
}

// ImportFromExcel reads the first sheet. Multiple-choice rows describe one
// answer each; true/false rows describe one question with "correct" holding
// the expected value.
func (s *importService) ImportFromExcel(ctx context.Context, reader io.Reader) (*models.ImportSummary, error) {
	start := time.Now()

	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, NewValidationError("file", "Excel file has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, NewValidationError("file", "Excel must have header row and at least one data row", len(rows))
	}

	headerMap := make(map[string]int)
	for i, header := range rows[0] {
		headerMap[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := headerMap[col]; !ok {
			return nil, NewValidationError("file", "missing column "+col, nil)
		}
	}

	summary := &models.ImportSummary{
		Status:    models.ImportProcessing,
		TotalRows: len(rows) - 1,
	}
	builder := newTaskBuilder()

	for i, row := range rows[1:] {
		rowNum := i + 2
		summary.ProcessedRows++
		if rowErr := builder.addRow(rowNum, cellReader(row, headerMap)); rowErr != nil {
			summary.Errors = append(summary.Errors, *rowErr)
			summary.ErrorCount++
			continue
		}
	}

	return s.save(ctx, builder.tasks(), summary, start)
}

type yamlFile struct {
	Tasks []yamlTask `yaml:"tasks"`
}

type yamlTask struct {
	ID        string         `yaml:"id"`
	Type      string         `yaml:"type"`
	Title     string                 `yaml:"title"`
	Metadata  map[string]interface{} `yaml:"metadata"`
	Questions []yamlQuestion         `yaml:"questions"`
}

type yamlQuestion struct {
	Prompt  string       `yaml:"prompt"`
	IsTrue  *bool        `yaml:"is_true"`
	Answers []yamlAnswer `yaml:"answers"`
}

type yamlAnswer struct {
	Text    string `yaml:"text"`
	Correct bool   `yaml:"correct"`
}

func (s *importService) ImportFromYAML(ctx context.Context, reader io.Reader) (*models.ImportSummary, error) {
	start := time.Now()

	var file yamlFile
	if err := yaml.NewDecoder(reader).Decode(&file); err != nil {
		if err == io.EOF {
			return nil, ErrImportEmpty
		}
		return nil, NewValidationError("file", "invalid YAML: "+err.Error(), nil)
	}

	summary := &models.ImportSummary{
		Status:    models.ImportProcessing,
		TotalRows: len(file.Tasks),
	}

	tasks := make([]pendingTask, 0, len(file.Tasks))
	for _, yt := range file.Tasks {
		summary.ProcessedRows++
		task := &models.Task{
			ID:    strings.TrimSpace(yt.ID),
			Type:  models.TaskType(strings.TrimSpace(yt.Type)),
			Title: yt.Title,
		}
		if len(yt.Metadata) > 0 {
			raw, err := json.Marshal(yt.Metadata)
			if err != nil {
				summary.Errors = append(summary.Errors, models.ImportValidationError{
					Field:   colMetadata,
					Message: "metadata is not JSON encodable: " + err.Error(),
					Value:   task.ID,
				})
				summary.ErrorCount++
				continue
			}
			task.Metadata = datatypes.JSON(raw)
		}
		for qi, yq := range yt.Questions {
			q := models.Question{Position: qi, Prompt: yq.Prompt, IsTrue: yq.IsTrue}
			for ai, ya := range yq.Answers {
				q.Answers = append(q.Answers, models.Answer{Position: ai, Text: ya.Text, IsCorrect: ya.Correct})
			}
			task.Questions = append(task.Questions, q)
		}
		tasks = append(tasks, pendingTask{task: task, rows: 1})
	}

	return s.save(ctx, tasks, summary, start)
}

// save validates and stores each task on its own; one bad task does not
// block the others. Rows count as successful only once their task is stored.
func (s *importService) save(ctx context.Context, tasks []pendingTask, summary *models.ImportSummary, start time.Time) (*models.ImportSummary, error) {
	if len(tasks) == 0 && summary.ErrorCount == 0 {
		return nil, ErrImportEmpty
	}

	for _, pending := range tasks {
		task := pending.task
		if err := s.validateTask(task); err != nil {
			var fieldErrs ValidationErrors
			if errors.As(err, &fieldErrs) {
				s.service.LogValidationError(ctx, "import_task", fieldErrs)
			}
			summary.Errors = append(summary.Errors, models.ImportValidationError{
				Field:   "task",
				Message: err.Error(),
				Value:   task.ID,
			})
			summary.ErrorCount++
			continue
		}

		exists, err := s.repo.Exists(ctx, nil, task.ID)
		if err != nil {
			summary.Status = models.ImportFailed
			return summary, fmt.Errorf("failed to check task %s: %w", task.ID, err)
		}
		if err := s.repo.Upsert(ctx, nil, task); err != nil {
			summary.Status = models.ImportFailed
			return summary, fmt.Errorf("failed to save task %s: %w", task.ID, err)
		}
		if err := s.answerKey.Invalidate(ctx, task.ID); err != nil {
			s.logger.Warn("Failed to invalidate answer key cache", "task_id", task.ID, "error", err)
		}
		summary.SuccessCount += pending.rows
		summary.ImportedTasks = append(summary.ImportedTasks, task.ID)
		if exists {
			summary.ReplacedTasks = append(summary.ReplacedTasks, task.ID)
		}
	}

	summary.Status = models.ImportCompleted
	summary.ProcessingTime = time.Since(start)

	s.logger.Info("Answer key import completed",
		"total_rows", summary.TotalRows,
		"imported_tasks", len(summary.ImportedTasks),
		"error_count", summary.ErrorCount)

	return summary, nil
}

func (s *importService) validateTask(task *models.Task) error {
	if err := s.validator.Validate(task); err != nil {
		return err
	}
	if len(task.Questions) == 0 {
		return NewValidationError("questions", "task has no questions", task.ID)
	}
	for _, q := range task.Questions {
		switch task.Type {
		case models.TrueFalse:
			if q.IsTrue == nil {
				return NewValidationError("is_true", "true/false question needs an expected value", q.Position)
			}
		case models.MultipleChoice:
			if len(q.Answers) == 0 {
				return NewValidationError("answers", "multiple-choice question has no answers", q.Position)
			}
		}
	}
	return nil
}

// taskBuilder groups workbook rows into tasks, keeping first-seen order.
type taskBuilder struct {
	order     []string
	byID      map[string]*models.Task
	rows      map[string]int
	questions map[string]map[string]int
}

func newTaskBuilder() *taskBuilder {
	return &taskBuilder{
		byID:      make(map[string]*models.Task),
		rows:      make(map[string]int),
		questions: make(map[string]map[string]int),
	}
}

func (b *taskBuilder) addRow(rowNum int, cell func(string) string) *models.ImportValidationError {
	rowErr := func(field, msg, value string) *models.ImportValidationError {
		return &models.ImportValidationError{Row: rowNum, Field: field, Message: msg, Value: value}
	}

	taskID := cell(colTaskID)
	if taskID == "" {
		return rowErr(colTaskID, "is required", "")
	}
	taskType := models.TaskType(strings.ToLower(cell(colType)))
	if !taskType.Valid() {
		return rowErr(colType, "must be multiple_choice or true_false", string(taskType))
	}
	prompt := cell(colQuestion)
	if prompt == "" {
		return rowErr(colQuestion, "is required", "")
	}
	correct, err := strconv.ParseBool(strings.ToLower(cell(colCorrect)))
	if err != nil {
		return rowErr(colCorrect, "must be true or false", cell(colCorrect))
	}
	metadata := cell(colMetadata)
	if metadata != "" {
		var obj map[string]interface{}
		if err := json.Unmarshal([]byte(metadata), &obj); err != nil {
			return rowErr(colMetadata, "must be a JSON object", metadata)
		}
	}

	task, ok := b.byID[taskID]
	if !ok {
		task = &models.Task{ID: taskID, Type: taskType, Title: cell(colTitle)}
		b.byID[taskID] = task
		b.order = append(b.order, taskID)
		b.questions[taskID] = make(map[string]int)
	} else if task.Type != taskType {
		return rowErr(colType, "conflicts with earlier rows of the task", string(taskType))
	}
	// The first row carrying metadata sets it for the task.
	if metadata != "" && len(task.Metadata) == 0 {
		task.Metadata = datatypes.JSON(metadata)
	}

	qIndex, ok := b.questions[taskID][prompt]
	if !ok {
		qIndex = len(task.Questions)
		task.Questions = append(task.Questions, models.Question{Position: qIndex, Prompt: prompt})
		b.questions[taskID][prompt] = qIndex
	}
	q := &task.Questions[qIndex]

	if taskType == models.TrueFalse {
		if q.IsTrue != nil {
			return rowErr(colQuestion, "duplicate true/false question", prompt)
		}
		q.IsTrue = &correct
		b.rows[taskID]++
		return nil
	}

	q.Answers = append(q.Answers, models.Answer{
		Position:  len(q.Answers),
		Text:      cell(colAnswer),
		IsCorrect: correct,
	})
	b.rows[taskID]++
	return nil
}

func (b *taskBuilder) tasks() []pendingTask {
	out := make([]pendingTask, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, pendingTask{task: b.byID[id], rows: b.rows[id]})
	}
	return out
}

func cellReader(row []string, headerMap map[string]int) func(string) string {
	return func(col string) string {
		i, ok := headerMap[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
}
