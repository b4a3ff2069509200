package annotator

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/SAP-F-2025/quizmark/internal/grading"
	"github.com/SAP-F-2025/quizmark/internal/models"
	"github.com/SAP-F-2025/quizmark/internal/utils"
)

// AnswerSource returns the answer key of a task.
type AnswerSource interface {
	FetchAnswers(ctx context.Context, taskID string) (*models.AnswersResponse, error)
}

// Report describes what one annotation pass did.
type Report struct {
	TaskID  string          `json:"task_id"`
	Type    models.TaskType `json:"type"`
	Summary grading.Summary `json:"summary"`
}

// Annotator marks rendered quiz answers as correct or incorrect. Calls are
// independent; concurrent calls for the same document are not synchronised.
type Annotator struct {
	source   AnswerSource
	registry *grading.Registry
	logger   utils.Logger
}

func New(source AnswerSource, registry *grading.Registry, logger utils.Logger) *Annotator {
	if registry == nil {
		registry = grading.DefaultRegistry()
	}
	return &Annotator{
		source:   source,
		registry: registry,
		logger:   logger,
	}
}

// AnnotateMultipleChoice grades a multiple-choice task.
func (a *Annotator) AnnotateMultipleChoice(ctx context.Context, doc *goquery.Document, taskID string) (*Report, error) {
	return a.Annotate(ctx, doc, taskID, grading.MultipleChoice{})
}

// AnnotateTrueFalse grades a true/false task.
func (a *Annotator) AnnotateTrueFalse(ctx context.Context, doc *goquery.Document, taskID string) (*Report, error) {
	return a.Annotate(ctx, doc, taskID, grading.TrueFalse{})
}

// Annotate fetches the task's answer key and applies strategy to every
// rendered question. When the fetch fails the document is left untouched.
func (a *Annotator) Annotate(ctx context.Context, doc *goquery.Document, taskID string, strategy grading.Strategy) (*Report, error) {
	return a.annotate(ctx, doc, taskID, func(*models.AnswersResponse) (grading.Strategy, error) {
		return strategy, nil
	})
}

// AnnotateAuto picks the strategy from the task type the server reports.
func (a *Annotator) AnnotateAuto(ctx context.Context, doc *goquery.Document, taskID string) (*Report, error) {
	return a.annotate(ctx, doc, taskID, func(resp *models.AnswersResponse) (grading.Strategy, error) {
		return a.registry.For(resp.Type)
	})
}

// AnnotateHTML parses r, annotates it and writes the resulting page to w.
// An empty taskType selects the strategy from the server's answer.
func (a *Annotator) AnnotateHTML(ctx context.Context, r io.Reader, w io.Writer, taskID string, taskType models.TaskType) (*Report, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	var report *Report
	if taskType == "" {
		report, err = a.AnnotateAuto(ctx, doc, taskID)
	} else {
		var strategy grading.Strategy
		strategy, err = a.registry.For(taskType)
		if err != nil {
			return nil, err
		}
		report, err = a.Annotate(ctx, doc, taskID, strategy)
	}
	if err != nil {
		return nil, err
	}

	html, err := doc.Html()
	if err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}
	if _, err := io.Copy(w, bytes.NewBufferString(html)); err != nil {
		return nil, fmt.Errorf("failed to write page: %w", err)
	}

	return report, nil
}

func (a *Annotator) annotate(
	ctx context.Context,
	doc *goquery.Document,
	taskID string,
	pick func(*models.AnswersResponse) (grading.Strategy, error),
) (*Report, error) {
	resp, err := a.source.FetchAnswers(ctx, taskID)
	if err != nil {
		a.logger.ErrorContext(ctx, "Failed to fetch answers", "task_id", taskID, "error", err)
		return nil, fmt.Errorf("failed to fetch answers for task %s: %w", taskID, err)
	}

	strategy, err := pick(resp)
	if err != nil {
		a.logger.ErrorContext(ctx, "No grading strategy for task", "task_id", taskID, "type", resp.Type, "error", err)
		return nil, err
	}

	report := &Report{TaskID: taskID, Type: strategy.Type()}
	root := taskRoot(doc, taskID)
	correct := grading.MatchCorrect(resp.Answers)

	for position, key := range resp.Answers {
		block := questionBlock(root, position, key.QuestionID)
		if block.Length() == 0 {
			a.logger.Debug("Question block not rendered", "task_id", taskID, "position", position)
			report.Summary.Skipped++
			continue
		}

		rendered := collectOptions(doc, block, position)
		options := make([]grading.Option, len(rendered))
		for i, r := range rendered {
			r.input.SetAttr("disabled", "disabled")
			r.label.RemoveClass(ClassCorrect, ClassIncorrect)
			options[i] = r.option
		}

		verdicts := strategy.Grade(options, key, correct[position])
		for i, v := range verdicts {
			if v != grading.VerdictNone {
				rendered[i].label.AddClass(string(v))
			}
		}
		report.Summary.Record(options, verdicts)
	}

	a.logger.Debug("Annotated task",
		"task_id", taskID,
		"type", report.Type,
		"correct", report.Summary.Correct,
		"incorrect", report.Summary.Incorrect,
		"unanswered", report.Summary.Unanswered,
		"skipped", report.Summary.Skipped)

	return report, nil
}
