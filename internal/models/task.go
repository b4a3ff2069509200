package models

import (
	"time"

	"gorm.io/datatypes"
)

type TaskType string

const (
	MultipleChoice TaskType = "multiple_choice"
	TrueFalse      TaskType = "true_false"
)

// Valid reports whether t is a known task type.
func (t TaskType) Valid() bool {
	return t == MultipleChoice || t == TrueFalse
}

type Task struct {
	ID       string         `json:"id" gorm:"primaryKey;size:64" validate:"required,max=64"`
	Type     TaskType       `json:"type" gorm:"not null;size:32;index" validate:"required,task_type"`
	Title    string         `json:"title" gorm:"size:200" validate:"max=200"`
	Metadata datatypes.JSON `json:"metadata,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Questions []Question `json:"questions" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" validate:"dive"`
}

type Question struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	TaskID   string `json:"task_id" gorm:"not null;size:64;index"`
	Position int    `json:"position" gorm:"not null" validate:"min=0"`
	Prompt   string `json:"prompt" gorm:"type:text"`

	// IsTrue is only set for true/false tasks
	IsTrue *bool `json:"is_true,omitempty"`

	Answers []Answer `json:"answers" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" validate:"dive"`
}

type Answer struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	QuestionID uint   `json:"question_id" gorm:"not null;index"`
	Position   int    `json:"position" gorm:"not null" validate:"min=0"`
	Text       string `json:"text" gorm:"type:text"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
}

func (Task) TableName() string {
	return "tasks"
}

func (Question) TableName() string {
	return "task_questions"
}

func (Answer) TableName() string {
	return "task_answers"
}
