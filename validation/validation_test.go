package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/RichTeaMan/timer/errors"
	"github.com/RichTeaMan/timer/timer"
)

func TestValidatorRequired(t *testing.T) {
	v := New()
	v.Required("name", "Roast turkey")
	if v.HasErrors() {
		t.Error("expected no errors for valid input")
	}

	v2 := New()
	v2.Required("name", "")
	if !v2.HasErrors() {
		t.Error("expected error for empty required field")
	}

	v3 := New()
	v3.Required("name", "   ")
	if !v3.HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorNonNegative(t *testing.T) {
	v := New().NonNegative("server.keep_alive", 0).NonNegative("server.idle_timeout", -time.Second)
	errs := v.Errors()
	if len(errs) != 1 || errs[0].Field != "server.idle_timeout" {
		t.Errorf("unexpected errors %v", errs)
	}
}

func TestValidatorPositive(t *testing.T) {
	if New().Positive("seconds", 1).HasErrors() {
		t.Error("expected 1 to be positive")
	}
	if !New().Positive("seconds", 0).HasErrors() {
		t.Error("expected 0 to be rejected")
	}
	if !New().Positive("seconds", -5).HasErrors() {
		t.Error("expected -5 to be rejected")
	}
}

func TestValidatorOneOf(t *testing.T) {
	allowed := []string{"json", "console", "text"}
	if New().OneOf("format", "json", allowed).HasErrors() {
		t.Error("expected json to be allowed")
	}
	if New().OneOf("format", "", allowed).HasErrors() {
		t.Error("expected empty value to be skipped")
	}
	v := New().OneOf("format", "xml", allowed)
	if !v.HasErrors() {
		t.Fatal("expected xml to be rejected")
	}
	if !strings.Contains(v.Errors()[0].Message, "json, console, text") {
		t.Errorf("unexpected message %q", v.Errors()[0].Message)
	}
}

func TestValidatorCheck(t *testing.T) {
	if New().Check(true, "speed", "must be positive").HasErrors() {
		t.Error("expected passing check to add no error")
	}
	v := New().Check(false, "speed", "must be positive")
	if len(v.Errors()) != 1 || v.Errors()[0].Field != "speed" {
		t.Errorf("unexpected errors %v", v.Errors())
	}
}

func TestValidatorValidate(t *testing.T) {
	if New().Validate() != nil {
		t.Error("expected nil AppError without errors")
	}
	if New().Err() != nil {
		t.Error("expected nil error without errors")
	}

	appErr := New().Required("name", "").Positive("seconds", 0).Validate()
	if appErr == nil {
		t.Fatal("expected AppError")
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	if appErr.Message != "name: is required; seconds: must be greater than 0" {
		t.Errorf("unexpected message %q", appErr.Message)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Errorf("expected 2 field errors, got %v", appErr.Details["fields"])
	}
}

func TestStructValidate_Definition(t *testing.T) {
	valid := timer.Definition{
		Name: "Boiled egg",
		Events: []timer.EventDefinition{
			{Name: "Boil water", Duration: "5:00"},
			{Name: "Cook egg", Duration: "6:00", StartDelay: "0:30", Dependencies: []string{"Boil water"}},
		},
	}
	if err := Validate(valid); err != nil {
		t.Fatalf("expected valid definition, got %v", err)
	}
}

func TestStructValidate_DefinitionErrors(t *testing.T) {
	tests := []struct {
		name  string
		def   timer.Definition
		field string
	}{
		{"missing name", timer.Definition{Events: []timer.EventDefinition{{Name: "a"}}}, "name"},
		{"no events", timer.Definition{Name: "t"}, "events"},
		{"event without name", timer.Definition{Name: "t", Events: []timer.EventDefinition{{Duration: "1"}}}, "events[0].name"},
		{"bad duration", timer.Definition{Name: "t", Events: []timer.EventDefinition{{Name: "a"}, {Name: "b", Duration: "x"}}}, "events[1].duration"},
		{"bad start delay", timer.Definition{Name: "t", Events: []timer.EventDefinition{{Name: "a", StartDelay: "1::"}}}, "events[0].startDelay"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.def)
			appErr, ok := errors.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %v", err)
			}
			if appErr.Code != errors.ErrCodeInvalidInput {
				t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
			}
			fields, _ := appErr.Details["fields"].([]FieldError)
			found := false
			for _, f := range fields {
				if f.Field == tc.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected field %q in %v", tc.field, fields)
			}
		})
	}
}

func TestStructValidate_Messages(t *testing.T) {
	type request struct {
		Seconds int64  `json:"seconds" validate:"gt=0"`
		Format  string `json:"format" validate:"oneof=json text"`
	}
	err := Validate(request{Seconds: 0, Format: "xml"})
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "seconds: must be greater than 0") {
		t.Errorf("missing gt message in %q", msg)
	}
	if !strings.Contains(msg, "format: must be one of: json text") {
		t.Errorf("missing oneof message in %q", msg)
	}
}
