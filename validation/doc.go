// Package validation validates timer definitions, configuration and API
// request bodies.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. The custom "duration" tag
// accepts any string the duration package can parse, including "".
//
// # Struct Tag Validation
//
//	type ExtendRequest struct {
//	    Duration string `json:"duration" validate:"required,duration"`
//	}
//	err := validation.Validate(req)
//
// # Programmatic Validation
//
//	err := validation.New().
//	    Positive("seconds", secs).
//	    NonNegative("server.keep_alive", cfg.KeepAlive).
//	    Err()
package validation
