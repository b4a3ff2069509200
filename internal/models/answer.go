package models

import (
	"sort"

	"gorm.io/datatypes"
)

// AnswersRequest is the body of the answer key endpoint.
type AnswersRequest struct {
	TaskID string `json:"task_id" validate:"required,max=64"`
}

// AnswersResponse carries the answer key of one task. Entries are ordered by
// question position; question and answer IDs are echoed so callers can match
// rendered markup by identifier instead of by order. Metadata is echoed from
// the imported task.
type AnswersResponse struct {
	TaskID   string         `json:"task_id"`
	Type     TaskType       `json:"type"`
	Metadata datatypes.JSON `json:"metadata,omitempty"`
	Answers  []QuestionKey  `json:"answers"`
}

type QuestionKey struct {
	QuestionID uint        `json:"question_id,omitempty"`
	IsTrue     *bool       `json:"is_true,omitempty"`
	Answers    []AnswerKey `json:"answers,omitempty"`
}

type AnswerKey struct {
	AnswerID  uint `json:"answer_id,omitempty"`
	IsCorrect bool `json:"is_correct"`
}

// AnswerKeyFor builds the wire key of a task. Questions and answers are
// sorted by position; the task itself is left untouched.
func AnswerKeyFor(task *Task) *AnswersResponse {
	questions := make([]Question, len(task.Questions))
	copy(questions, task.Questions)
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Position < questions[j].Position
	})

	resp := &AnswersResponse{
		TaskID:   task.ID,
		Type:     task.Type,
		Metadata: task.Metadata,
		Answers:  make([]QuestionKey, 0, len(questions)),
	}

	for _, q := range questions {
		key := QuestionKey{QuestionID: q.ID}

		switch task.Type {
		case TrueFalse:
			key.IsTrue = q.IsTrue
		default:
			answers := make([]Answer, len(q.Answers))
			copy(answers, q.Answers)
			sort.SliceStable(answers, func(i, j int) bool {
				return answers[i].Position < answers[j].Position
			})
			key.Answers = make([]AnswerKey, 0, len(answers))
			for _, a := range answers {
				key.Answers = append(key.Answers, AnswerKey{AnswerID: a.ID, IsCorrect: a.IsCorrect})
			}
		}

		resp.Answers = append(resp.Answers, key)
	}

	return resp
}
