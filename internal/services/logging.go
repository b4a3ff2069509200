package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ServiceLogger provides structured logging for service layer operations
type ServiceLogger struct {
	logger *slog.Logger
}

func NewServiceLogger(logger *slog.Logger, component string) *ServiceLogger {
	return &ServiceLogger{
		logger: logger.With("service", "quizmark", "component", component),
	}
}

// LogOperation records the outcome of one service call. Expected failures
// log below error level.
func (l *ServiceLogger) LogOperation(ctx context.Context, operation, taskID string, duration time.Duration, err error) {
	level := slog.LevelInfo
	status := "success"

	if err != nil {
		level = slog.LevelError
		status = "error"

		switch {
		case IsValidation(err):
			level = slog.LevelWarn
			status = "validation_error"
		case IsNotFound(err):
			status = "not_found"
		case IsConflict(err):
			level = slog.LevelWarn
			status = "conflict"
		}
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("task_id", taskID),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	l.logger.LogAttrs(ctx, level, fmt.Sprintf("%s operation %s", operation, status), attrs...)
}

func (l *ServiceLogger) LogCache(ctx context.Context, key string, hit bool, err error) {
	if err != nil {
		l.logger.LogAttrs(ctx, slog.LevelWarn, "Cache unavailable",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return
	}
	l.logger.LogAttrs(ctx, slog.LevelDebug, "Cache lookup",
		slog.String("key", key),
		slog.Bool("hit", hit))
}

func (l *ServiceLogger) LogValidationError(ctx context.Context, operation string, errs ValidationErrors) {
	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.Int("error_count", len(errs)),
	}
	for i, err := range errs {
		if i == 5 {
			break
		}
		attrs = append(attrs, slog.Group(fmt.Sprintf("error_%d", i+1),
			slog.String("field", err.Field),
			slog.String("message", err.Message),
		))
	}
	l.logger.LogAttrs(ctx, slog.LevelWarn, "Validation failed", attrs...)
}
