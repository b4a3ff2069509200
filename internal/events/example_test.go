package events_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/SAP-F-2025/quizmark/internal/events"
	"github.com/SAP-F-2025/quizmark/internal/grading"
	"github.com/SAP-F-2025/quizmark/internal/models"
)

// A downstream consumer subscribes to the topic and decodes the envelope.
// With EVENTS_PUBLISHER=kafka the same payload arrives through a Kafka
// subscriber instead of the in-memory channel.
func ExampleNewInMemoryEventPublisher() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher, pubSub := events.NewInMemoryEventPublisher(events.PublisherConfig{
		TopicName: "quizmark",
		Logger:    logger,
	})
	defer publisher.Close()

	ctx := context.Background()
	messages, err := pubSub.Subscribe(ctx, "quizmark")
	if err != nil {
		fmt.Println(err)
		return
	}

	err = publisher.Publish(ctx, events.NewEvent(events.EventTaskReviewed, events.TaskReviewedEvent{
		TaskID:  "tf-7",
		Type:    models.TrueFalse,
		Summary: grading.Summary{Correct: 3, Incorrect: 1},
	}))
	if err != nil {
		fmt.Println(err)
		return
	}

	msg := <-messages
	msg.Ack()

	var envelope struct {
		Type events.EventType         `json:"type"`
		Data events.TaskReviewedEvent `json:"data"`
	}
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%s %s: %d/%d correct\n", envelope.Type, envelope.Data.TaskID,
		envelope.Data.Summary.Correct, envelope.Data.Summary.Total())
	// Output: task.reviewed tf-7: 3/4 correct
}
