package events

import (
	"time"

	"github.com/SAP-F-2025/quizmark/internal/grading"
	"github.com/SAP-F-2025/quizmark/internal/models"
	"github.com/google/uuid"
)

// EventType names the events quizmark publishes
type EventType string

const (
	EventTaskReviewed EventType = "task.reviewed"
	EventPageShared   EventType = "page.shared"
)

const (
	eventSource  = "quizmark"
	eventVersion = "1.0"
)

// Event is the envelope of every published event
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type TaskReviewedEvent struct {
	TaskID     string          `json:"task_id"`
	Type       models.TaskType `json:"type"`
	Summary    grading.Summary `json:"summary"`
	ReviewedAt time.Time       `json:"reviewed_at"`
}

type PageSharedEvent struct {
	URL      string    `json:"url"`
	Title    string    `json:"title,omitempty"`
	SharedAt time.Time `json:"shared_at"`
}

// NewEvent wraps data in an envelope with a fresh ID
func NewEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}
