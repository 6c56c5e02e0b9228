package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/RichTeaMan/timer/bootstrap"
	"github.com/RichTeaMan/timer/catalog"
	"github.com/RichTeaMan/timer/display"
	"github.com/RichTeaMan/timer/duration"
	"github.com/RichTeaMan/timer/runner"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <key|file>",
		Short: "Tick a timer in real time until every event completes",
		Long: `Run ticks a timer once per simulated second and prints every state
change. --speed 60 runs a minute per wall-clock second. Interrupt to stop.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(true)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			every, err := parseEvery(flagEvery)
			if err != nil {
				return err
			}

			app, err := bootstrap.NewApp(cfg, bootstrap.WithQuietSummary())
			if err != nil {
				return err
			}
			metrics, err := setupTelemetry(cmd.Context(), app)
			if err != nil {
				return err
			}

			reg, err := catalog.New(cfg.Catalog)
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			_, t, err := resolveTimer(reg, args[0])
			if err != nil {
				return err
			}
			r := runner.New(t, cfg.Runner, runner.WithMetrics(metrics))

			return app.RunTask(cmd.Context(), func(ctx context.Context) error {
				return runToCompletion(ctx, cmd.OutOrStdout(), r, every)
			})
		},
	}

	cmd.Flags().Float64Var(&flagSpeed, "speed", 0, "Simulated seconds per tick interval (default from config, 1)")
	cmd.Flags().DurationVar(&flagTick, "tick", 0, "Wall time of one simulated second at speed 1 (default from config, 1s)")
	cmd.Flags().StringVar(&flagEvery, "every", "", "Reprint the whole timer every simulated duration, e.g. 5:00")
	return cmd
}

// parseEvery accepts any duration the codec accepts. Empty disables it.
func parseEvery(text string) (int64, error) {
	if text == "" {
		return 0, nil
	}
	secs, err := duration.Parse(text)
	if err != nil {
		return 0, fmt.Errorf("--every: %w", err)
	}
	return secs, nil
}

// runToCompletion forecasts, ticks r until it completes or ctx is done, and
// renders its events to out.
func runToCompletion(ctx context.Context, out io.Writer, r *runner.Runner, every int64) error {
	events, unsubscribe := r.Subscribe(0)
	defer unsubscribe()

	r.Forecast(ctx)
	if !flagJSON {
		display.PrintSnapshot(out, r.Snapshot())
		fmt.Fprintln(out)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		renderEvents(out, events, every)
	}()

	err := r.Run(ctx)
	r.Close()
	<-done
	if err != nil {
		return err
	}

	if flagJSON {
		return nil
	}
	snap := r.Snapshot()
	fmt.Fprintln(out)
	display.PrintSnapshot(out, snap)
	fmt.Fprintf(out, "\n%s completed in %s\n", display.Bold(snap.Name), display.Green(duration.Format(snap.ClockSeconds)))
	return nil
}

// renderEvents writes one JSON line per event with --json, otherwise the
// state changes and, every `every` seconds, the whole timer.
func renderEvents(out io.Writer, events <-chan runner.Event, every int64) {
	enc := json.NewEncoder(out)
	for e := range events {
		if flagJSON {
			_ = enc.Encode(e)
			continue
		}
		display.PrintRunEvent(out, e)
		if every > 0 && e.Type == runner.EventTick && e.Snapshot != nil && e.ClockSeconds%every == 0 {
			display.PrintSnapshot(out, *e.Snapshot)
		}
	}
}
