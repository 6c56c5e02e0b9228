package errors

import (
	"fmt"
	"maps"
	"strings"
)

// AppError is the error type every package returns across its API.
type AppError struct {
	Code       ErrorCode      `json:"code"`
	Message    string         `json:"message"`
	Retryable  bool           `json:"retryable"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

// New builds an AppError whose status and retryability follow code.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Retryable:  code.Retryable(),
		HTTPStatus: code.HTTPStatus(),
	}
}

// newf is New with a formatted message and key/value details.
func newf(code ErrorCode, details map[string]any, format string, args ...any) *AppError {
	e := New(code, fmt.Sprintf(format, args...))
	if len(details) > 0 {
		e.Details = details
	}
	return e
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Is matches another *AppError by code, and by message when the target
// has one.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code && (t.Message == "" || t.Message == e.Message)
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges details in, overwriting existing keys.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	maps.Copy(e.Details, details)
	return e
}

func (e *AppError) WithDetail(key string, value any) *AppError {
	return e.WithDetails(map[string]any{key: value})
}

func NotFound(resource, id string) *AppError {
	if id == "" {
		return newf(ErrCodeNotFound, map[string]any{"resource": resource},
			"The requested %s was not found.", resource)
	}
	return newf(ErrCodeNotFound, map[string]any{"resource": resource, "id": id},
		"%s %q not found.", capitalize(resource), id)
}

func Conflict(reason string) *AppError {
	return New(ErrCodeConflict, reason)
}

// ServiceUnavailable is returned while a component is starting or stopping.
func ServiceUnavailable(service string) *AppError {
	return newf(ErrCodeServiceUnavailable, map[string]any{"service": service},
		"The %s is temporarily unavailable. Please try again.", service)
}

func InvalidInput(field, reason string) *AppError {
	e := newf(ErrCodeInvalidInput, nil, "Invalid input: %s", reason)
	if field != "" {
		e.WithDetail("field", field)
	}
	return e
}

// Validation carries an already formatted list of field problems.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message)
}

func MissingField(field string) *AppError {
	return newf(ErrCodeMissingField, map[string]any{"field": field},
		"Missing required field: %s", field)
}

func InvalidFormat(field, expected string) *AppError {
	return newf(ErrCodeInvalidFormat, map[string]any{"field": field, "expected_format": expected},
		"Invalid format for %s. Expected: %s", field, expected)
}

// Internal hides cause from the client and keeps it for logs.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "An unexpected error occurred. Please try again or contact support.").
		WithCause(cause)
}

func InvalidDuration(text, reason string) *AppError {
	return newf(ErrCodeInvalidFormat, map[string]any{"value": text, "expected_format": "[[[D:]H:]M:]S"},
		"Invalid duration %q: %s", text, reason)
}

func DuplicateName(name string) *AppError {
	return newf(ErrCodeDuplicateName, map[string]any{"event": name},
		"Event names must be unique, %s is duplicated.", name)
}

func UnknownDependency(dependency, dependent string) *AppError {
	return newf(ErrCodeUnknownDependency, map[string]any{"dependency": dependency, "event": dependent},
		"Dependency '%s' for event '%s' could not be found.", dependency, dependent)
}

func NoRoot(timer string) *AppError {
	return newf(ErrCodeNoRoot, map[string]any{"timer": timer}, "No events with no dependencies.")
}

// CyclicDependency names the event that reaches itself. path, when known,
// is the walk from the event back round to it.
func CyclicDependency(name string, path []string) *AppError {
	if len(path) == 0 {
		return newf(ErrCodeCyclicDependency, map[string]any{"event": name}, "%s has a cyclic dependency", name)
	}
	return newf(ErrCodeCyclicDependency, map[string]any{"event": name, "path": path},
		"%s has a cyclic dependency: %s", name, strings.Join(path, " -> "))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
