package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/RichTeaMan/timer/catalog"
	"github.com/RichTeaMan/timer/display"
	"github.com/RichTeaMan/timer/logger"
	"github.com/RichTeaMan/timer/timer"
	"github.com/RichTeaMan/timer/version"
)

var (
	flagConfig  string
	flagDirs    []string
	flagJSON    bool
	flagNoColor bool
	flagSpeed   float64
	flagTick    time.Duration
	flagEvery   string
	flagPort    int
	flagHost    string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "timer",
		Short: "Run timers made of dependent events",
		Long: `Timer runs recipes and other activities made of timed events that
depend on each other. It forecasts when every event will start and finish,
ticks a run in real time, and serves runs over HTTP for other front ends.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagNoColor || flagJSON {
				display.SetColor(false)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path")
	rootCmd.PersistentFlags().StringSliceVar(&flagDirs, "dir", nil, "Extra directory of timer definitions (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Machine-readable JSON output")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(forecastCmd())
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered timers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, _, err := openCatalog()
			if err != nil {
				return err
			}
			if flagJSON {
				return outputJSON(cmd.OutOrStdout(), reg.Entries())
			}
			display.PrintTimers(cmd.OutOrStdout(), reg.Entries())
			return nil
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <key|file>",
		Short: "Show a timer's events and dependency levels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, _, err := openCatalog()
			if err != nil {
				return err
			}
			def, t, err := resolveTimer(reg, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if flagJSON {
				return outputJSON(out, def)
			}

			fmt.Fprintf(out, "%s %s\n\n", display.BoldCyan("⏱"), display.Bold(t.Name()))
			for _, ev := range t.Events() {
				fmt.Fprintln(out, ev.String())
			}
			fmt.Fprintln(out)
			display.PrintLevels(out, t)
			return nil
		},
	}
}

func forecastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forecast <key|file>",
		Short: "Print when every event is expected to start and finish",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, _, err := openCatalog()
			if err != nil {
				return err
			}
			_, t, err := resolveTimer(reg, args[0])
			if err != nil {
				return err
			}
			t.Forecast()
			snap := t.Snapshot()
			if flagJSON {
				return outputJSON(cmd.OutOrStdout(), snap)
			}
			display.PrintSnapshot(cmd.OutOrStdout(), snap)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.GetVersionInfo()
			if flagJSON {
				return outputJSON(cmd.OutOrStdout(), info)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "timer %s\n", info)
			return nil
		},
	}
}

// openCatalog loads config and the timer catalog for the terminal commands.
func openCatalog() (*catalog.Registry, *AppConfig, error) {
	cfg, err := loadConfig(true)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Logging, cfg.Name)
	reg, err := catalog.New(cfg.Catalog)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}
	return reg, cfg, nil
}

// resolveTimer accepts a catalog key or a definition file path.
func resolveTimer(reg *catalog.Registry, ref string) (*timer.Definition, *timer.Timer, error) {
	def, err := reg.Resolve(ref)
	if err != nil {
		return nil, nil, err
	}
	t, err := timer.Build(*def)
	if err != nil {
		return nil, nil, err
	}
	return def, t, nil
}

func outputJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(data))
	return nil
}
