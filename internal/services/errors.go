package services

import (
	"errors"

	apperrors "github.com/SAP-F-2025/quizmark/internal/errors"
)

var (
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskTypeMismatch = errors.New("task type does not match requested grading")

	ErrImportEmpty       = errors.New("import file contains no tasks")
	ErrImportUnsupported = errors.New("unsupported import format")
)

type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrTaskNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) || errors.Is(err, ErrBadRequest) {
		return true
	}
	var ves ValidationErrors
	if errors.As(err, &ves) {
		return true
	}
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict checks if error represents a mismatch between request and stored state
func IsConflict(err error) bool {
	return errors.Is(err, ErrTaskTypeMismatch)
}
