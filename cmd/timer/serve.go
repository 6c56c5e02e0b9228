package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RichTeaMan/timer/api"
	"github.com/RichTeaMan/timer/bootstrap"
	"github.com/RichTeaMan/timer/catalog"
	"github.com/RichTeaMan/timer/logger"
	"github.com/RichTeaMan/timer/observability"
	"github.com/RichTeaMan/timer/runner"
	"github.com/RichTeaMan/timer/server"
	"github.com/RichTeaMan/timer/sse"
)

// streamPath is the route of the per-run event stream.
const streamPath = "/runs/:id/stream"

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve timers and runs over HTTP",
		Long: `Serve starts the HTTP API: list and forecast timers, start runs,
adjust their events and follow them over Server-Sent Events.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(false)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			app, err := bootstrap.NewApp(cfg)
			if err != nil {
				return err
			}
			if err := wireServer(cmd.Context(), app); err != nil {
				return err
			}
			return app.Run(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&flagPort, "port", 0, "Listen port (default from config, 8080)")
	cmd.Flags().StringVar(&flagHost, "host", "", "Listen host (default from config, localhost)")
	cmd.Flags().Float64Var(&flagSpeed, "speed", 0, "Simulated seconds per tick interval for every run")
	cmd.Flags().DurationVar(&flagTick, "tick", 0, "Wall time of one simulated second at speed 1")
	return cmd
}

// wireServer registers the SSE hub, run manager and HTTP server on app, in
// that start order.
func wireServer(ctx context.Context, app *bootstrap.App[*AppConfig]) error {
	cfg := app.Cfg

	metrics, err := setupTelemetry(ctx, app)
	if err != nil {
		return err
	}

	reg, err := catalog.New(cfg.Catalog)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	hub := sse.NewComponent(streamPath)
	runs := runner.NewManager(reg, cfg.Runner, runner.WithMetrics(metrics))
	runs.OnLaunch(api.Bridge(hub.Hub(), cfg.Runner.EventBuffer, cfg.Server.StreamTickGap))

	srv := server.New(cfg.Server, logger.Get("server"), metrics)
	srv.RegisterDefaultEndpoints(cfg.Name, app.Health)
	api.NewHandler(reg, runs, hub.Hub(), api.WithKeepAlive(cfg.Server.KeepAlive)).Register(srv.Engine())

	if err := app.RegisterComponent(hub); err != nil {
		return err
	}
	if err := app.RegisterComponent(runs); err != nil {
		return err
	}
	if err := app.RegisterComponent(server.NewComponent(srv)); err != nil {
		return err
	}

	app.Logger.Info("catalog loaded", logger.Fields("timers", reg.Len()))
	return nil
}

// setupTelemetry starts the OTLP exporters when enabled and returns the
// instruments runners and the server record into.
func setupTelemetry(ctx context.Context, app *bootstrap.App[*AppConfig]) (*observability.Metrics, error) {
	shutdown, err := observability.Setup(ctx, app.Cfg.Observability, app.Name, app.Version)
	if err != nil {
		return nil, fmt.Errorf("observability: %w", err)
	}
	app.OnStop(bootstrap.Hook(shutdown))

	metrics, err := observability.NewMetrics(observability.Meter(serviceName))
	if err != nil {
		return nil, fmt.Errorf("observability: %w", err)
	}
	return metrics, nil
}
