package logger

import (
	"fmt"
	"time"
)

// Field keys shared by every package, so log queries can rely on them.
const (
	FieldComponent = "component"
	FieldTraceID   = "trace_id"
	FieldSpanID    = "span_id"
	FieldRequestID = "request_id"
	FieldOperation = "operation"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldDuration  = "duration_ms"

	FieldTimer   = "timer"
	FieldEvent   = "event"
	FieldRunID   = "run_id"
	FieldClock   = "clock_seconds"
	FieldSeconds = "seconds"
)

// Fields pairs up alternating keys and values:
//
//	logger.Fields(logger.FieldEvent, "gravy", logger.FieldSeconds, 60)
//
// A non-string key is formatted with fmt. A trailing key without a value is
// kept with a nil value so the mistake shows up in the log.
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, (len(kvs)+1)/2)
	for i := 0; i < len(kvs); i += 2 {
		key, ok := kvs[i].(string)
		if !ok {
			key = fmt.Sprint(kvs[i])
		}
		var val interface{}
		if i+1 < len(kvs) {
			val = kvs[i+1]
		}
		m[key] = val
	}
	return m
}

// Timed describes an operation that began at start.
func Timed(op string, start time.Time) map[string]interface{} {
	return Fields(FieldOperation, op, FieldDuration, time.Since(start).Milliseconds())
}
