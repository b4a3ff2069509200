package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/SAP-F-2025/quizmark/internal/grading"
	"github.com/SAP-F-2025/quizmark/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryPublisherDeliversEnvelope(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	publisher, pubSub := NewInMemoryEventPublisher(PublisherConfig{TopicName: "quizmark", Logger: logger})
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := pubSub.Subscribe(ctx, "quizmark")
	require.NoError(t, err)

	event := NewEvent(EventTaskReviewed, TaskReviewedEvent{
		TaskID:  "task-1",
		Type:    models.MultipleChoice,
		Summary: grading.Summary{Correct: 2, Incorrect: 1},
	})
	require.NoError(t, publisher.Publish(ctx, event))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, event.ID, msg.UUID)
		assert.Equal(t, string(EventTaskReviewed), msg.Metadata.Get("event_type"))
		assert.Equal(t, "quizmark", msg.Metadata.Get("source"))

		var decoded struct {
			Type EventType         `json:"type"`
			Data TaskReviewedEvent `json:"data"`
		}
		require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
		assert.Equal(t, EventTaskReviewed, decoded.Type)
		assert.Equal(t, "task-1", decoded.Data.TaskID)
		assert.Equal(t, 2, decoded.Data.Summary.Correct)
	case <-ctx.Done():
		t.Fatal("event was not delivered")
	}
}

func TestMockEventPublisher(t *testing.T) {
	m := NewMockEventPublisher()
	require.NoError(t, m.Publish(context.Background(), NewEvent(EventPageShared, PageSharedEvent{URL: "https://x"})))
	require.Len(t, m.GetPublishedEvents(), 1)

	m.ClearEvents()
	assert.Empty(t, m.GetPublishedEvents())

	m.Err = errors.New("broker down")
	assert.Error(t, m.Publish(context.Background(), NewEvent(EventPageShared, nil)))
}
