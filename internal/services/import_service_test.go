package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/quizmark/internal/models"
	"github.com/SAP-F-2025/quizmark/internal/validator"
)

func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func newImportFixture() (*MockTaskRepository, *MockAnswerKeyService, ImportService) {
	repo := new(MockTaskRepository)
	repo.On("Exists", mock.Anything, mock.Anything, mock.Anything).Return(false, nil).Maybe()
	keys := new(MockAnswerKeyService)
	return repo, keys, NewImportService(repo, keys, validator.New(), testLogger())
}

func TestImportFromExcel(t *testing.T) {
	repo, keys, svc := newImportFixture()

	var saved []*models.Task
	repo.On("Upsert", mock.Anything, mock.Anything, mock.AnythingOfType("*models.Task")).
		Run(func(args mock.Arguments) { saved = append(saved, args.Get(2).(*models.Task)) }).
		Return(nil)
	keys.On("Invalidate", mock.Anything, mock.Anything).Return(nil)

	buf := workbook(t, [][]interface{}{
		{"Task_ID", "Type", "Title", "Question", "Answer", "Correct"},
		{"mc-1", "multiple_choice", "Capitals", "Capital of France?", "Paris", "true"},
		{"mc-1", "multiple_choice", "Capitals", "Capital of France?", "Lyon", "false"},
		{"mc-1", "multiple_choice", "Capitals", "Capital of Spain?", "Madrid", "TRUE"},
		{"tf-1", "true_false", "Facts", "Water is wet", "", "true"},
		{"tf-1", "true_false", "Facts", "Fire is cold", "", "false"},
		{"bad", "essay", "", "Why?", "", "true"},
	})

	summary, err := svc.ImportFromExcel(context.Background(), buf)
	require.NoError(t, err)

	assert.Equal(t, models.ImportCompleted, summary.Status)
	assert.Equal(t, 6, summary.TotalRows)
	assert.Equal(t, 5, summary.SuccessCount)
	assert.Equal(t, 1, summary.ErrorCount)
	assert.Equal(t, 7, summary.Errors[0].Row)
	assert.Equal(t, []string{"mc-1", "tf-1"}, summary.ImportedTasks)

	require.Len(t, saved, 2)
	mc := saved[0]
	assert.Equal(t, "Capitals", mc.Title)
	require.Len(t, mc.Questions, 2)
	assert.Len(t, mc.Questions[0].Answers, 2)
	assert.True(t, mc.Questions[0].Answers[0].IsCorrect)
	assert.Equal(t, 1, mc.Questions[1].Position)

	tf := saved[1]
	require.Len(t, tf.Questions, 2)
	assert.Equal(t, boolPtr(true), tf.Questions[0].IsTrue)
	assert.Equal(t, boolPtr(false), tf.Questions[1].IsTrue)

	keys.AssertNumberOfCalls(t, "Invalidate", 2)
}

func TestImportFromExcel_Metadata(t *testing.T) {
	repo, keys, svc := newImportFixture()
	var saved *models.Task
	repo.On("Upsert", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(2).(*models.Task) }).
		Return(nil)
	keys.On("Invalidate", mock.Anything, mock.Anything).Return(nil)

	buf := workbook(t, [][]interface{}{
		{"task_id", "type", "question", "answer", "correct", "metadata"},
		{"mc-3", "multiple_choice", "Q1", "A", "true", `{"level":"easy"}`},
		{"mc-3", "multiple_choice", "Q1", "B", "false", ""},
		{"mc-3", "multiple_choice", "Q1", "C", "false", "not json"},
	})

	summary, err := svc.ImportFromExcel(context.Background(), buf)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.SuccessCount)
	require.Equal(t, 1, summary.ErrorCount)
	assert.Equal(t, "metadata", summary.Errors[0].Field)
	assert.Equal(t, 4, summary.Errors[0].Row)

	require.NotNil(t, saved)
	assert.JSONEq(t, `{"level":"easy"}`, string(saved.Metadata))
	assert.Len(t, saved.Questions[0].Answers, 2)
}

func TestImportFromExcel_RowsOfInvalidTaskAreNotSuccesses(t *testing.T) {
	repo, keys, svc := newImportFixture()
	repo.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	keys.On("Invalidate", mock.Anything, mock.Anything).Return(nil)

	longID := strings.Repeat("x", 65)
	buf := workbook(t, [][]interface{}{
		{"task_id", "type", "question", "correct"},
		{longID, "true_false", "Q1", "true"},
		{longID, "true_false", "Q2", "false"},
		{"tf-ok", "true_false", "Q1", "true"},
	})

	summary, err := svc.ImportFromExcel(context.Background(), buf)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.ProcessedRows)
	assert.Equal(t, 1, summary.SuccessCount)
	assert.Equal(t, 1, summary.ErrorCount)
	assert.Equal(t, []string{"tf-ok"}, summary.ImportedTasks)
	repo.AssertNumberOfCalls(t, "Upsert", 1)
}

func TestImportFromExcel_MissingColumn(t *testing.T) {
	_, _, svc := newImportFixture()

	buf := workbook(t, [][]interface{}{
		{"task_id", "type", "question"},
		{"mc-1", "multiple_choice", "Q"},
	})

	_, err := svc.ImportFromExcel(context.Background(), buf)
	assert.True(t, IsValidation(err))
}

func TestImportFromExcel_NotAWorkbook(t *testing.T) {
	_, _, svc := newImportFixture()
	_, err := svc.ImportFromExcel(context.Background(), strings.NewReader("plain text"))
	assert.Error(t, err)
}

const tasksYAML = `
tasks:
  - id: tf-2
    type: true_false
    title: Quick check
    metadata:
      course: physics
      week: 3
    questions:
      - prompt: The sky is blue
        is_true: true
      - prompt: Two is odd
        is_true: false
  - id: mc-2
    type: multiple_choice
    questions:
      - prompt: Pick the even number
        answers:
          - text: "1"
          - text: "2"
            correct: true
  - id: tf-broken
    type: true_false
    questions:
      - prompt: Missing answer
`

func TestImportFromYAML(t *testing.T) {
	repo, keys, svc := newImportFixture()
	var saved []*models.Task
	repo.On("Upsert", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = append(saved, args.Get(2).(*models.Task)) }).
		Return(nil)
	keys.On("Invalidate", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	summary, err := svc.ImportFromYAML(context.Background(), strings.NewReader(tasksYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"tf-2", "mc-2"}, summary.ImportedTasks)
	assert.Equal(t, 3, summary.ProcessedRows)
	assert.Equal(t, 2, summary.SuccessCount)
	assert.Equal(t, 1, summary.ErrorCount)
	assert.Equal(t, "tf-broken", summary.Errors[0].Value)
	repo.AssertNumberOfCalls(t, "Upsert", 2)

	require.Len(t, saved, 2)
	assert.JSONEq(t, `{"course":"physics","week":3}`, string(saved[0].Metadata))
	assert.Empty(t, saved[1].Metadata)
}

func TestImportFromYAML_InvalidTaskIsNotASuccess(t *testing.T) {
	repo, _, svc := newImportFixture()

	summary, err := svc.ImportFromYAML(context.Background(), strings.NewReader(`
tasks:
  - id: essay-1
    type: essay
    questions:
      - prompt: Why?
`))
	require.NoError(t, err)
	assert.Equal(t, 0, summary.SuccessCount)
	assert.Equal(t, 1, summary.ErrorCount)
	assert.Empty(t, summary.ImportedTasks)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestImportFromYAML_Empty(t *testing.T) {
	_, _, svc := newImportFixture()
	_, err := svc.ImportFromYAML(context.Background(), strings.NewReader(""))
	assert.ErrorIs(t, err, ErrImportEmpty)
}

func TestImportFromYAML_StoreFailureStops(t *testing.T) {
	repo, _, svc := newImportFixture()
	repo.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	summary, err := svc.ImportFromYAML(context.Background(), strings.NewReader(tasksYAML))
	require.Error(t, err)
	assert.Equal(t, models.ImportFailed, summary.Status)
	repo.AssertNumberOfCalls(t, "Upsert", 1)
}

func TestImportFromYAML_ReportsReplacedTasks(t *testing.T) {
	repo := new(MockTaskRepository)
	repo.On("Exists", mock.Anything, mock.Anything, "tf-2").Return(true, nil)
	repo.On("Exists", mock.Anything, mock.Anything, "mc-2").Return(false, nil)
	repo.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	keys := new(MockAnswerKeyService)
	keys.On("Invalidate", mock.Anything, mock.Anything).Return(nil)

	svc := NewImportService(repo, keys, validator.New(), testLogger())
	summary, err := svc.ImportFromYAML(context.Background(), strings.NewReader(tasksYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"tf-2"}, summary.ReplacedTasks)
	keys.AssertCalled(t, "Invalidate", mock.Anything, "tf-2")
	keys.AssertCalled(t, "Invalidate", mock.Anything, "mc-2")
}
