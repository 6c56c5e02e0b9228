package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/RichTeaMan/timer/errors"
	"github.com/RichTeaMan/timer/logger"
)

// OperationContext describes one traced edit to a run.
type OperationContext struct {
	Operation string
	RunID     string
	Timer     string
	Event     string
	RequestID string
	StartTime time.Time
	Metrics   *Metrics
}

// NewOperationContext creates an operation context. If metrics is nil,
// metric recording is skipped.
func NewOperationContext(operation, runID, timerName, event string, metrics *Metrics) *OperationContext {
	return &OperationContext{
		Operation: operation,
		RunID:     runID,
		Timer:     timerName,
		Event:     event,
		StartTime: time.Now(),
		Metrics:   metrics,
	}
}

// Start opens a runner.mutation span. The request ID is taken from ctx
// when the context carries one.
func (oc *OperationContext) Start(ctx context.Context) (context.Context, trace.Span) {
	if oc.RequestID == "" {
		oc.RequestID = logger.RequestIDFromContext(ctx)
	}
	ctx, span := StartSpan(ctx, SpanMutation)
	span.SetAttributes(
		attribute.String(AttrOperationName, oc.Operation),
		attribute.String(AttrRunID, oc.RunID),
		attribute.String(AttrTimer, oc.Timer),
	)
	if oc.Event != "" {
		span.SetAttributes(attribute.String(AttrEvent, oc.Event))
	}
	if oc.RequestID != "" {
		span.SetAttributes(attribute.String(AttrRequestID, oc.RequestID))
	}
	return ctx, span
}

// End closes the span and records the mutation with its outcome.
func (oc *OperationContext) End(ctx context.Context, span trace.Span, err error) {
	elapsed := oc.Duration()
	status := Status(err)

	if err != nil {
		SetSpanError(trace.ContextWithSpan(ctx, span), err)
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	}
	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, elapsed.Milliseconds()),
	)
	span.End()

	oc.Metrics.RecordMutation(ctx, oc.Timer, oc.Operation, status)
}

// Duration returns the elapsed time since the operation started.
func (oc *OperationContext) Duration() time.Duration {
	return time.Since(oc.StartTime)
}

// Status returns "ok" for nil, the error code for an AppError and "error" otherwise.
func Status(err error) string {
	if err == nil {
		return "ok"
	}
	if appErr, ok := errors.AsAppError(err); ok {
		return string(appErr.Code)
	}
	return "error"
}
