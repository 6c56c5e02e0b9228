package errors

import "net/http"

// ErrorCode is the machine-readable part of an AppError.
type ErrorCode string

const (
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeConflict           ErrorCode = "CONFLICT"
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"

	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField  ErrorCode = "MISSING_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"

	// Raised while building a timer. Each one rejects the whole definition.
	ErrCodeDuplicateName     ErrorCode = "DUPLICATE_NAME"
	ErrCodeUnknownDependency ErrorCode = "UNKNOWN_DEPENDENCY"
	ErrCodeNoRoot            ErrorCode = "NO_ROOT"
	ErrCodeCyclicDependency  ErrorCode = "CYCLIC_DEPENDENCY"
)

type codeTraits struct {
	status     int
	retryable  bool
	definition bool
}

var traits = map[ErrorCode]codeTraits{
	ErrCodeNotFound:           {status: http.StatusNotFound},
	ErrCodeConflict:           {status: http.StatusConflict},
	ErrCodeServiceUnavailable: {status: http.StatusServiceUnavailable, retryable: true},
	ErrCodeInternal:           {status: http.StatusInternalServerError},
	ErrCodeInvalidInput:       {status: http.StatusBadRequest},
	ErrCodeMissingField:       {status: http.StatusBadRequest, definition: true},
	ErrCodeInvalidFormat:      {status: http.StatusBadRequest, definition: true},
	ErrCodeDuplicateName:      {status: http.StatusUnprocessableEntity, definition: true},
	ErrCodeUnknownDependency:  {status: http.StatusUnprocessableEntity, definition: true},
	ErrCodeNoRoot:             {status: http.StatusUnprocessableEntity, definition: true},
	ErrCodeCyclicDependency:   {status: http.StatusUnprocessableEntity, definition: true},
}

// HTTPStatus is the status a code answers with. Unknown codes answer 500.
func (c ErrorCode) HTTPStatus() int {
	if t, ok := traits[c]; ok {
		return t.status
	}
	return http.StatusInternalServerError
}

// Retryable reports whether the same call may succeed later unchanged.
func (c ErrorCode) Retryable() bool { return traits[c].retryable }

// Definition reports whether the code rejects a timer definition.
func (c ErrorCode) Definition() bool { return traits[c].definition }
