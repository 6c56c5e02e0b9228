// Package logger wraps zerolog for the timer service and CLI.
//
// Loggers carry the service name and are derived rather than mutated:
// WithComponent, WithFields, WithError and WithContext all return a new
// Logger. WithContext picks up request and run IDs stored with
// ContextWithRequestID and ContextWithRunID, and the trace of the active
// OpenTelemetry span.
//
// Components fetch their logger by name:
//
//	log := logger.Get("runner")
//	log.Info("run started", logger.Fields(logger.FieldRunID, id, logger.FieldTimer, name))
//
// The console format prints "[TIM][INF]" style tags and is coloured on a
// terminal unless logging.no_color is set.
package logger
