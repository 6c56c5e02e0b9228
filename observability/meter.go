package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments for runs, forecasts and HTTP requests.
// A nil *Metrics records nothing.
type Metrics struct {
	ticks            metric.Int64Counter
	transitions      metric.Int64Counter
	mutations        metric.Int64Counter
	forecasts        metric.Int64Counter
	forecastDuration metric.Float64Histogram
	activeRuns       metric.Int64UpDownCounter
	requestTotal     metric.Int64Counter
	requestDuration  metric.Float64Histogram
	errorTotal       metric.Int64Counter
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var (
		m   Metrics
		err error
	)

	if m.ticks, err = meter.Int64Counter("timer.ticks",
		metric.WithDescription("Engine steps taken by runners"),
	); err != nil {
		return nil, fmt.Errorf("creating timer.ticks counter: %w", err)
	}
	if m.transitions, err = meter.Int64Counter("timer.transitions",
		metric.WithDescription("Event state transitions by source and target state"),
	); err != nil {
		return nil, fmt.Errorf("creating timer.transitions counter: %w", err)
	}
	if m.mutations, err = meter.Int64Counter("timer.mutations",
		metric.WithDescription("Extend, reduce, complete and pause operations"),
	); err != nil {
		return nil, fmt.Errorf("creating timer.mutations counter: %w", err)
	}
	if m.forecasts, err = meter.Int64Counter("timer.forecasts",
		metric.WithDescription("Forecast runs, including those skipped while paused"),
	); err != nil {
		return nil, fmt.Errorf("creating timer.forecasts counter: %w", err)
	}
	if m.forecastDuration, err = meter.Float64Histogram("timer.forecast.duration",
		metric.WithDescription("Wall time spent simulating a forecast"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating timer.forecast.duration histogram: %w", err)
	}
	if m.activeRuns, err = meter.Int64UpDownCounter("timer.runs.active",
		metric.WithDescription("Runs currently ticking"),
	); err != nil {
		return nil, fmt.Errorf("creating timer.runs.active counter: %w", err)
	}
	if m.requestTotal, err = meter.Int64Counter("http.requests",
		metric.WithDescription("HTTP requests by route and status"),
	); err != nil {
		return nil, fmt.Errorf("creating http.requests counter: %w", err)
	}
	if m.requestDuration, err = meter.Float64Histogram("http.request.duration",
		metric.WithDescription("HTTP request latency"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating http.request.duration histogram: %w", err)
	}
	if m.errorTotal, err = meter.Int64Counter("errors",
		metric.WithDescription("Errors by code and component"),
	); err != nil {
		return nil, fmt.Errorf("creating errors counter: %w", err)
	}

	return &m, nil
}

// RecordTick counts one engine step.
func (m *Metrics) RecordTick(ctx context.Context, timerName string) {
	if m == nil {
		return
	}
	m.ticks.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrTimer, timerName)))
}

// RecordTransition counts an event moving between states.
func (m *Metrics) RecordTransition(ctx context.Context, timerName, from, to string) {
	if m == nil {
		return
	}
	m.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrTimer, timerName),
		attribute.String("from", from),
		attribute.String("to", to),
	))
}

// RecordMutation counts a user edit. status is "ok" or an error code.
func (m *Metrics) RecordMutation(ctx context.Context, timerName, op, status string) {
	if m == nil {
		return
	}
	m.mutations.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrTimer, timerName),
		attribute.String(AttrOperationName, op),
		attribute.String(AttrStatus, status),
	))
}

// RecordForecast records a forecast attempt. A skipped forecast (paused
// timer) is counted but not timed.
func (m *Metrics) RecordForecast(ctx context.Context, timerName string, ran bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	status := "skipped"
	if ran {
		status = "ok"
		m.forecastDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String(AttrTimer, timerName)))
	}
	m.forecasts.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrTimer, timerName),
		attribute.String(AttrStatus, status),
	))
}

// RunStarted increments the active run gauge.
func (m *Metrics) RunStarted(ctx context.Context) {
	if m == nil {
		return
	}
	m.activeRuns.Add(ctx, 1)
}

// RunEnded decrements the active run gauge.
func (m *Metrics) RunEnded(ctx context.Context) {
	if m == nil {
		return
	}
	m.activeRuns.Add(ctx, -1)
}

// RecordRequest records a completed HTTP request.
func (m *Metrics) RecordRequest(ctx context.Context, method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int(AttrStatus, status),
	))
	m.requestDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
	))
}

// RecordError counts an error by code and component.
func (m *Metrics) RecordError(ctx context.Context, code, component string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
		attribute.String("component", component),
	))
}
