package config

import (
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/quizmark/internal/events"
)

// EventConfig holds configuration for event publishing
type EventConfig struct {
	Enabled      bool
	Publisher    string // kafka, memory or mock
	KafkaBrokers string
	Topic        string
}

// GetKafkaBrokers returns Kafka brokers as a slice
func (c *EventConfig) GetKafkaBrokers() []string {
	return strings.Split(c.KafkaBrokers, ",")
}

// CreateEventPublisher creates an event publisher based on configuration
func (c *EventConfig) CreateEventPublisher(logger *slog.Logger) (events.EventPublisher, error) {
	if !c.Enabled {
		logger.Info("Event publishing disabled, using mock publisher")
		return events.NewMockEventPublisher(), nil
	}

	cfg := events.PublisherConfig{
		KafkaBrokers: c.GetKafkaBrokers(),
		TopicName:    c.Topic,
		Logger:       logger,
	}

	switch c.Publisher {
	case "kafka":
		logger.Info("Creating Kafka event publisher",
			"brokers", c.KafkaBrokers,
			"topic", c.Topic)
		return events.NewKafkaEventPublisher(cfg)
	case "memory":
		logger.Info("Using in-memory event publisher", "topic", c.Topic)
		publisher, _ := events.NewInMemoryEventPublisher(cfg)
		return publisher, nil
	case "mock":
		logger.Info("Using mock event publisher")
		return events.NewMockEventPublisher(), nil
	default:
		logger.Warn("Unknown event publisher type, falling back to mock", "publisher", c.Publisher)
		return events.NewMockEventPublisher(), nil
	}
}
