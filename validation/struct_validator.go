package validation

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/RichTeaMan/timer/duration"
	"github.com/RichTeaMan/timer/errors"
)

const durationMessage = "must be a duration like [[[D:]H:]M:]S"

var (
	validate *validator.Validate
	once     sync.Once
)

// engine builds the shared validator on first use. Field names in errors
// follow json tags and the "duration" tag is registered.
func engine() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(jsonName)

		_ = validate.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
			_, err := duration.Parse(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// Validate checks s against its `validate` struct tags and reports every
// failing field in one INVALID_INPUT error.
func Validate(s any) error {
	err := engine().Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Validation("validation failed").WithCause(err)
	}

	fields := make([]FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, FieldError{Field: fieldPath(e), Message: describe(e)})
	}
	return invalid(fields)
}

// fieldPath drops the root struct name from the namespace, so nested
// fields read as "events[2].duration".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

// describe renders the failed tag of e as a short phrase.
func describe(e validator.FieldError) string {
	p := e.Param()
	switch e.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		switch e.Kind() {
		case reflect.Slice:
			return "must contain at least " + p + " item(s)"
		case reflect.String:
			return "must be at least " + p + " characters"
		}
		return "must be at least " + p
	case "max", "lte":
		if e.Kind() == reflect.String {
			return "must be at most " + p + " characters"
		}
		return "must be at most " + p
	case "gt":
		return "must be greater than " + p
	case "oneof":
		return "must be one of: " + p
	case "duration":
		return durationMessage
	}
	return "fails " + e.Tag()
}

// jsonName is the field's json tag name, or its Go name in snake_case.
func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name != "" && name != "-" {
		return name
	}
	var b strings.Builder
	for i, r := range fld.Name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
