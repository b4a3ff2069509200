package grading

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/SAP-F-2025/quizmark/internal/models"
)

var ErrUnknownStrategy = errors.New("no grading strategy for task type")

type Verdict string

const (
	VerdictNone      Verdict = ""
	VerdictCorrect   Verdict = "correct"
	VerdictIncorrect Verdict = "incorrect"
)

// Option is one rendered input of a question.
type Option struct {
	Position int
	AnswerID uint
	Value    string
	Selected bool
}

// Strategy decides the verdict of every rendered option of one question.
// correct is the question's entry from MatchCorrect. The returned slice is
// parallel to options.
type Strategy interface {
	Type() models.TaskType
	Grade(options []Option, key models.QuestionKey, correct CorrectSet) []Verdict
}

// MultipleChoice marks the selected option and, when the selection is wrong,
// reveals every correct option alongside it.
type MultipleChoice struct{}

func (MultipleChoice) Type() models.TaskType {
	return models.MultipleChoice
}

func (MultipleChoice) Grade(options []Option, key models.QuestionKey, correct CorrectSet) []Verdict {
	verdicts := make([]Verdict, len(options))
	isCorrect := correctnessOf(options, key, correct)

	for i, opt := range options {
		if !opt.Selected {
			continue
		}
		if isCorrect(opt) {
			verdicts[i] = VerdictCorrect
			continue
		}
		verdicts[i] = VerdictIncorrect
		for j, other := range options {
			if isCorrect(other) {
				verdicts[j] = VerdictCorrect
			}
		}
	}

	return verdicts
}

// correctnessOf matches by answer ID when every rendered option carries an ID
// the key knows, and by position otherwise. Pages rendered before a re-import
// carry IDs the key no longer has and fall back to positions.
func correctnessOf(options []Option, key models.QuestionKey, correct CorrectSet) func(Option) bool {
	if ids, ok := answerIDs(key); ok && allKnown(options, ids) {
		return func(o Option) bool {
			return ids[o.AnswerID]
		}
	}
	return func(o Option) bool {
		return correct.Has(o.Position)
	}
}

func allKnown(options []Option, ids map[uint]bool) bool {
	if len(options) == 0 {
		return false
	}
	for _, o := range options {
		if _, ok := ids[o.AnswerID]; !ok {
			return false
		}
	}
	return true
}

// TrueFalse marks only the selected option. Unlike MultipleChoice it never
// reveals the right answer on a mismatch.
type TrueFalse struct{}

func (TrueFalse) Type() models.TaskType {
	return models.TrueFalse
}

func (TrueFalse) Grade(options []Option, key models.QuestionKey, _ CorrectSet) []Verdict {
	verdicts := make([]Verdict, len(options))
	expected := ""
	if key.IsTrue != nil {
		expected = strconv.FormatBool(*key.IsTrue)
	}

	for i, opt := range options {
		if !opt.Selected {
			continue
		}
		if expected != "" && opt.Value == expected {
			verdicts[i] = VerdictCorrect
		} else {
			verdicts[i] = VerdictIncorrect
		}
	}

	return verdicts
}

// Registry resolves strategies by task type.
type Registry struct {
	strategies map[models.TaskType]Strategy
}

func NewRegistry(strategies ...Strategy) *Registry {
	r := &Registry{strategies: make(map[models.TaskType]Strategy, len(strategies))}
	for _, s := range strategies {
		r.strategies[s.Type()] = s
	}
	return r
}

// DefaultRegistry knows the multiple-choice and true/false strategies.
func DefaultRegistry() *Registry {
	return NewRegistry(MultipleChoice{}, TrueFalse{})
}

func (r *Registry) For(taskType models.TaskType) (Strategy, error) {
	s, ok := r.strategies[taskType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, taskType)
	}
	return s, nil
}
