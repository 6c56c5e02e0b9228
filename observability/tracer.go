package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/RichTeaMan/timer/observability"

// Span names.
const (
	SpanHTTPRequest = "http.request"
	SpanForecast    = "timer.forecast"
	SpanTick        = "runner.tick"
	SpanMutation    = "runner.mutation"
	SpanRun         = "runner.run"
)

// Attribute keys.
const (
	AttrServiceName    = "service.name"
	AttrServiceVersion = "service.version"
	AttrEnvironment    = "deployment.environment"
	AttrOperationName  = "operation.name"
	AttrRequestID      = "request.id"
	AttrRunID          = "run.id"
	AttrTimer          = "timer.name"
	AttrEvent          = "timer.event"
	AttrClock          = "timer.clock_seconds"
	AttrState          = "timer.state"
	AttrDurationMs     = "duration_ms"
	AttrStatus         = "status"
	AttrErrorMessage   = "error.message"
)

// Tracer returns a named tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// StartSpan starts a span on the package tracer. Until Setup installs a
// provider the span does not record.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer(instrumentationName).Start(ctx, name, opts...)
}

// SetSpanError marks the span in ctx failed. A nil err is ignored.
func SetSpanError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if err == nil || !span.IsRecording() {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
