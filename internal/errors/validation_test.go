package errors

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("task_id", "is required", "")

	assert.Equal(t, "task_id", err.Field)
	assert.Equal(t, "validation error on field 'task_id': is required", err.Error())
}

func TestValidationErrors_Error(t *testing.T) {
	var errs ValidationErrors
	assert.Equal(t, "validation failed", errs.Error())

	errs = append(errs, *NewValidationError("task_id", "is required", nil))
	assert.Equal(t, "validation failed: task_id is required", errs.Error())

	errs = append(errs, *NewValidationError("type", "is required", nil))
	assert.Equal(t, "validation failed: 2 field errors", errs.Error())
}

func TestToValidationErrors(t *testing.T) {
	type payload struct {
		TaskID string `validate:"required"`
		Title  string `validate:"max=3"`
	}

	err := validator.New().Struct(payload{Title: "too long"})
	require.Error(t, err)

	errs := ToValidationErrors(err)
	require.Len(t, errs, 2)
	assert.Equal(t, "required", errs[0].Rule)
	assert.Equal(t, "is required", errs[0].Message)
	assert.Equal(t, "must be at most 3", errs[1].Message)

	assert.Nil(t, ToValidationErrors(assert.AnError))
}
