package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestNew_FollowsCodeTraits(t *testing.T) {
	err := New(ErrCodeNotFound, "not found")
	if err.HTTPStatus != http.StatusNotFound || err.Retryable {
		t.Errorf("NOT_FOUND: status %d retryable %v", err.HTTPStatus, err.Retryable)
	}
	if !New(ErrCodeServiceUnavailable, "busy").Retryable {
		t.Error("SERVICE_UNAVAILABLE should be retryable")
	}
	if got := New("MADE_UP", "x").HTTPStatus; got != http.StatusInternalServerError {
		t.Errorf("unknown code status = %d, want 500", got)
	}
}

func TestAppError_NotFound_Success(t *testing.T) {
	err := NotFound("timer", "christmas-dinner")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", err.Code)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected 404, got %d", err.HTTPStatus)
	}
	if err.Message != `Timer "christmas-dinner" not found.` {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.Details["resource"] != "timer" {
		t.Errorf("expected resource=timer, got %v", err.Details["resource"])
	}
	if err.Details["id"] != "christmas-dinner" {
		t.Errorf("expected id=christmas-dinner, got %v", err.Details["id"])
	}
}

func TestAppError_NotFound_EmptyID(t *testing.T) {
	err := NotFound("run", "")
	if _, ok := err.Details["id"]; ok {
		t.Error("expected no 'id' key in details when id is empty")
	}
	if err.Message != "The requested run was not found." {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestAppError_Internal_Success(t *testing.T) {
	cause := fmt.Errorf("forecast diverged")
	err := Internal(cause)
	if err.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", err.Code)
	}
	if err.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", err.HTTPStatus)
	}
	if err.Cause != cause {
		t.Error("expected cause to be set")
	}
	if err.Retryable {
		t.Error("Internal should NOT be retryable by default")
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("strconv: bad digit")
	err := InvalidDuration("1:x", "not a number").WithCause(cause)
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if !strings.Contains(err.Error(), "cause: strconv: bad digit") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := NotFound("event", "gravy")
	err.WithDetails(map[string]any{"timer": "sunday-roast", "id": "stuffing"})
	if err.Details["timer"] != "sunday-roast" {
		t.Errorf("expected timer detail, got %v", err.Details["timer"])
	}
	if err.Details["id"] != "stuffing" {
		t.Errorf("expected id to be overwritten, got %v", err.Details["id"])
	}
	if err.Details["resource"] != "event" {
		t.Errorf("expected resource kept, got %v", err.Details["resource"])
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := Conflict("run already completed")
	err.WithDetail("run_id", "abc")
	if err.Details["run_id"] != "abc" {
		t.Errorf("expected run_id=abc, got %v", err.Details["run_id"])
	}
}

func TestAppError_Error_Format(t *testing.T) {
	err := NoRoot("loop")
	if got := err.Error(); got != "NO_ROOT: No events with no dependencies." {
		t.Errorf("unexpected Error() %q", got)
	}
}

func TestAppError_DefinitionConstructors(t *testing.T) {
	dup := DuplicateName("gravy")
	if dup.Message != "Event names must be unique, gravy is duplicated." {
		t.Errorf("unexpected message %q", dup.Message)
	}

	unknown := UnknownDependency("oven", "turkey")
	if unknown.Message != "Dependency 'oven' for event 'turkey' could not be found." {
		t.Errorf("unexpected message %q", unknown.Message)
	}
	if unknown.Details["dependency"] != "oven" || unknown.Details["event"] != "turkey" {
		t.Errorf("unexpected details %v", unknown.Details)
	}

	cyclic := CyclicDependency("a", nil)
	if cyclic.Message != "a has a cyclic dependency" {
		t.Errorf("unexpected message %q", cyclic.Message)
	}
	if _, ok := cyclic.Details["path"]; ok {
		t.Error("expected no path detail without a path")
	}

	withPath := CyclicDependency("a", []string{"a", "b", "a"})
	if withPath.Message != "a has a cyclic dependency: a -> b -> a" {
		t.Errorf("unexpected message %q", withPath.Message)
	}

	invalid := InvalidDuration("1:2:3:4:5", "too many fields")
	if invalid.Code != ErrCodeInvalidFormat {
		t.Errorf("expected INVALID_FORMAT, got %s", invalid.Code)
	}
	if invalid.Details["value"] != "1:2:3:4:5" {
		t.Errorf("expected value detail, got %v", invalid.Details["value"])
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name      string
		err       *AppError
		code      ErrorCode
		status    int
		retryable bool
	}{
		{"ServiceUnavailable", ServiceUnavailable("run manager"), ErrCodeServiceUnavailable, http.StatusServiceUnavailable, true},
		{"NotFound", NotFound("run", "1"), ErrCodeNotFound, http.StatusNotFound, false},
		{"Internal", Internal(nil), ErrCodeInternal, http.StatusInternalServerError, false},
		{"Conflict", Conflict("run completed"), ErrCodeConflict, http.StatusConflict, false},
		{"InvalidInput", InvalidInput("seconds", "must be positive"), ErrCodeInvalidInput, http.StatusBadRequest, false},
		{"MissingField", MissingField("name"), ErrCodeMissingField, http.StatusBadRequest, false},
		{"InvalidFormat", InvalidFormat("duration", "M:S"), ErrCodeInvalidFormat, http.StatusBadRequest, false},
		{"Validation", Validation("bad input"), ErrCodeInvalidInput, http.StatusBadRequest, false},
		{"InvalidDuration", InvalidDuration("x", "bad"), ErrCodeInvalidFormat, http.StatusBadRequest, false},
		{"DuplicateName", DuplicateName("a"), ErrCodeDuplicateName, http.StatusUnprocessableEntity, false},
		{"UnknownDependency", UnknownDependency("a", "b"), ErrCodeUnknownDependency, http.StatusUnprocessableEntity, false},
		{"NoRoot", NoRoot("t"), ErrCodeNoRoot, http.StatusUnprocessableEntity, false},
		{"CyclicDependency", CyclicDependency("a", nil), ErrCodeCyclicDependency, http.StatusUnprocessableEntity, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.HTTPStatus != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, tc.err.HTTPStatus)
			}
			if tc.err.Retryable != tc.retryable {
				t.Errorf("expected retryable=%v, got %v", tc.retryable, tc.err.Retryable)
			}
		})
	}
}

func TestErrorCode_Traits(t *testing.T) {
	definition := []ErrorCode{ErrCodeInvalidFormat, ErrCodeMissingField, ErrCodeDuplicateName, ErrCodeUnknownDependency, ErrCodeNoRoot, ErrCodeCyclicDependency}
	for _, code := range definition {
		if !code.Definition() {
			t.Errorf("expected %s to reject a definition", code)
		}
		if code.Retryable() {
			t.Errorf("expected %s to NOT be retryable", code)
		}
	}
	for _, code := range []ErrorCode{ErrCodeNotFound, ErrCodeConflict, ErrCodeInternal, ErrCodeServiceUnavailable} {
		if code.Definition() {
			t.Errorf("expected %s to NOT be a definition code", code)
		}
	}
	if !ErrCodeServiceUnavailable.Retryable() {
		t.Error("expected SERVICE_UNAVAILABLE to be retryable")
	}
}

func TestAppError_ToResponse_Success(t *testing.T) {
	resp := NotFound("timer", "42").ToResponse()
	if resp.Error.Code != ErrCodeNotFound {
		t.Errorf("expected code NOT_FOUND in response, got %s", resp.Error.Code)
	}
	if resp.Error.Retryable {
		t.Error("expected retryable=false in response")
	}
	if resp.Error.Details["resource"] != "timer" {
		t.Error("expected resource=timer in response details")
	}
}

func TestAppError_IsAppError_Success(t *testing.T) {
	appErr := NotFound("x", "")
	if !IsAppError(appErr) {
		t.Error("expected IsAppError to return true for AppError")
	}
	if !IsAppError(fmt.Errorf("wrapped: %w", appErr)) {
		t.Error("expected IsAppError to return true for wrapped AppError")
	}
	if IsAppError(fmt.Errorf("plain error")) {
		t.Error("expected IsAppError to return false for plain error")
	}
}

func TestAppError_AsAppError_Success(t *testing.T) {
	wrapped := fmt.Errorf("wrap: %w", Internal(nil))
	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed for wrapped AppError")
	}
	if got.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", got.Code)
	}
	if _, ok = AsAppError(fmt.Errorf("not an app error")); ok {
		t.Error("expected AsAppError to return false for non-AppError")
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("build christmas-dinner: %w", CyclicDependency("gravy", nil))
	if !HasCode(err, ErrCodeCyclicDependency) {
		t.Error("expected HasCode to find CYCLIC_DEPENDENCY through wrapping")
	}
	if HasCode(err, ErrCodeNoRoot) {
		t.Error("expected HasCode to reject a different code")
	}
	if HasCode(fmt.Errorf("plain"), ErrCodeInternal) {
		t.Error("expected HasCode to be false for a plain error")
	}
}

func TestAppError_Is_MatchesByCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", DuplicateName("gravy"))
	if !stderrors.Is(err, &AppError{Code: ErrCodeDuplicateName}) {
		t.Error("errors.Is should match on code")
	}
	if stderrors.Is(err, &AppError{Code: ErrCodeNoRoot}) {
		t.Error("errors.Is should not match a different code")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}

	orig := NotFound("run", "1")
	if Wrap(orig) != orig {
		t.Error("Wrap should return the original AppError unchanged")
	}
	if got := Wrap(fmt.Errorf("outer: %w", orig)); got.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", got.Code)
	}

	plain := fmt.Errorf("something broke")
	got := Wrap(plain)
	if got.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", got.Code)
	}
	if got.Cause != plain {
		t.Error("expected cause to be the original error")
	}
}
