package validation

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/RichTeaMan/timer/errors"
	"github.com/RichTeaMan/timer/util"
)

// FieldError names one field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator accumulates field errors so a caller can report every problem
// in one response. Checks chain and never stop early.
type Validator struct {
	fields []FieldError
}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) AddError(field, message string) {
	v.fields = append(v.fields, FieldError{Field: field, Message: message})
}

func (v *Validator) HasErrors() bool {
	return len(v.fields) > 0
}

// Errors returns a copy of the collected field errors.
func (v *Validator) Errors() []FieldError {
	return slices.Clone(v.fields)
}

// Validate folds the collected errors into one INVALID_INPUT AppError. It
// returns nil when every check passed.
func (v *Validator) Validate() *errors.AppError {
	return invalid(v.fields)
}

// Err is Validate as a plain error, so that success compares equal to nil.
func (v *Validator) Err() error {
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// Check records message against field when ok is false.
func (v *Validator) Check(ok bool, field, message string) *Validator {
	if !ok {
		v.AddError(field, message)
	}
	return v
}

func (v *Validator) Required(field, value string) *Validator {
	return v.Check(strings.TrimSpace(value) != "", field, "is required")
}

// Positive checks a count of seconds.
func (v *Validator) Positive(field string, value int64) *Validator {
	return v.Check(value > 0, field, "must be greater than 0")
}

// NonNegative checks a configured wait. Zero usually means "disabled".
func (v *Validator) NonNegative(field string, d time.Duration) *Validator {
	return v.Check(d >= 0, field, "must be non-negative")
}

// OneOf checks value against an allowed set. Empty is accepted.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" {
		return v
	}
	return v.Check(slices.Contains(allowed, value), field,
		fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
}

func invalid(fields []FieldError) *errors.AppError {
	if len(fields) == 0 {
		return nil
	}
	messages := util.Map(fields, func(f FieldError) string {
		return f.Field + ": " + f.Message
	})
	appErr := errors.Validation(strings.Join(messages, "; "))
	appErr.Details = map[string]any{"fields": slices.Clone(fields)}
	return appErr
}
