package validator

import (
	"reflect"
	"strings"

	apperrors "github.com/SAP-F-2025/quizmark/internal/errors"
	"github.com/SAP-F-2025/quizmark/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with the quizmark rules
type Validator struct {
	structValidator *validator.Validate
}

func New() *Validator {
	v := validator.New()
	registerCustomValidators(v)
	return &Validator{structValidator: v}
}

// Validate checks struct tags and converts failures to ValidationErrors
func (v *Validator) Validate(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if errs := apperrors.ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("task_type", validateTaskType)

	// report json names in errors
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateTaskType(fl validator.FieldLevel) bool {
	return models.TaskType(fl.Field().String()).Valid()
}
