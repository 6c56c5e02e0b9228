// Package errors provides the structured error type shared by the timer
// packages. Every failure carries a machine-readable code, a recommended
// HTTP status and optional details, and renders to an RFC 7807 style body.
package errors
