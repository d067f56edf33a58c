package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/hhakhilesh/DamperMassSpring/internal/storage"
	"github.com/hhakhilesh/DamperMassSpring/internal/viz"
)

var (
	dataDir  string
	logLevel string
	logger   = slog.Default()
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, viz.RenderError(err))
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "msdsim",
		Short:         "mass-spring-damper simulation with a fixed-step RK4 integrator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(logLevel)
			if err != nil {
				return err
			}
			logger = l
			slog.SetDefault(l)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".msdsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newRunCmd(),
		newSweepCmd(),
		newPresetsCmd(),
		newBenchCmd(),
		&cobra.Command{
			Use:   "list",
			Short: "list runs",
			Args:  cobra.NoArgs,
			RunE:  listRuns,
		},
		newPlotCmd(),
		&cobra.Command{
			Use:   "export [run_id]",
			Short: "export run metadata and samples as JSON",
			Args:  cobra.ExactArgs(1),
			RunE:  exportJSON,
		},
		&cobra.Command{
			Use:   "export-csv [run_id]",
			Short: "export run samples as CSV",
			Args:  cobra.ExactArgs(1),
			RunE:  exportCSV,
		},
		&cobra.Command{
			Use:   "analyze [run_id]",
			Short: "frequency analysis of the position signal",
			Args:  cobra.ExactArgs(1),
			RunE:  analyzeRun,
		},
		&cobra.Command{
			Use:   "phase [run_id]",
			Short: "phase portrait (x against x_dot)",
			Args:  cobra.ExactArgs(1),
			RunE:  phasePlot,
		},
		&cobra.Command{
			Use:   "view [run_id]",
			Short: "replay a run in the terminal",
			Args:  cobra.ExactArgs(1),
			RunE:  viewRun,
		},
	)

	return rootCmd
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: "15:04:05",
	})), nil
}

func openStore() (*storage.Store, error) {
	st := storage.New(dataDir, logger)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}
