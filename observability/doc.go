// Package observability wires OpenTelemetry tracing and metrics for timer
// runs, forecasts and the HTTP API.
//
// Setup:
//
//	shutdown, err := observability.Setup(ctx, cfg, "timer", version.Version)
//	defer shutdown(ctx)
//
// Spans:
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanForecast)
//	defer span.End()
//
// Metrics:
//
//	metrics, err := observability.NewMetrics(observability.Meter("timer"))
//	metrics.RecordTick(ctx, "Christmas dinner")
//
// When observability is disabled the global no-op providers are left in
// place, so spans and instruments cost next to nothing.
package observability
