package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/hhakhilesh/DamperMassSpring/internal/analysis"
	"github.com/hhakhilesh/DamperMassSpring/internal/dynamo"
	"github.com/hhakhilesh/DamperMassSpring/internal/physics"
	"github.com/hhakhilesh/DamperMassSpring/internal/plot"
	"github.com/hhakhilesh/DamperMassSpring/internal/storage"
	"github.com/hhakhilesh/DamperMassSpring/internal/viz"
)

// loadRun opens the store and reads both files of a run.
func loadRun(runID string) (*storage.RunMetadata, *dynamo.Trajectory, error) {
	st, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, nil, err
	}
	if traj.Len() == 0 {
		return nil, nil, fmt.Errorf("run %s: no samples", runID)
	}
	return meta, traj, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPARAMS\tTIME\tAGE\tWINDOW\tDT\tSAMPLES")

	for _, run := range runs {
		params, err := run.Config.ModelParams()
		desc := "?"
		if err == nil {
			desc = params.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t[%g, %g]\t%g\t%s\n",
			run.ID,
			desc,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			humanize.Time(run.Timestamp),
			run.Config.Window.Start,
			run.Config.Window.End,
			run.Config.Dt,
			humanize.Comma(int64(run.Metrics["samples"])),
		)
	}

	return w.Flush()
}

func newPlotCmd() *cobra.Command {
	var pngPath string
	var velocity bool
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, traj, err := loadRun(args[0])
			if err != nil {
				return err
			}

			fig := plot.DefaultFigure()
			if params, err := meta.Config.ModelParams(); err == nil {
				fig.Legend = params.String()
			}

			ys := traj.Position
			if velocity {
				ys = traj.Velocity
				fig.YLabel = "x-velocity"
			}

			if pngPath != "" {
				if err := plot.Save(pngPath, traj.Time, ys, fig); err != nil {
					return err
				}
				logger.Info("plot written", "run", meta.ID, "path", pngPath)
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run: %s\n", meta.ID)
			fmt.Fprintf(out, "samples: %d\n\n", traj.Len())
			fmt.Fprintln(out, plot.ASCII(ys, fig.YLabel+" vs "+fig.XLabel, 80, 12))
			return nil
		},
	}
	cmd.Flags().StringVar(&pngPath, "png", "", "write a PNG (or .svg) file instead of a terminal plot")
	cmd.Flags().BoolVar(&velocity, "velocity", false, "plot velocity instead of position")
	return cmd
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(cmd.OutOrStdout(), meta, traj)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(cmd.OutOrStdout(), traj)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}

	freq, err := analysis.DominantFrequency(traj)
	if err != nil {
		return fmt.Errorf("run %s: %w", meta.ID, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "frequency analysis: %s\n\n", meta.ID)

	ps := analysis.PowerSpectrum(analysis.PadPow2(dynamo.Float64(traj.Position)))
	plotData := ps[:max(len(ps)/4, 1)]
	fmt.Fprintln(out, asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (x)"),
	))
	fmt.Fprintln(out)

	fmt.Fprintf(out, "dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Fprintf(out, "period: %.3f s\n", 1.0/freq)
	}

	if params, err := meta.Config.ModelParams(); err == nil {
		if model, err := physics.New(params); err == nil {
			fmt.Fprintf(out, "damped natural frequency: %.3f hz\n", float64(model.DampedFrequency())/(2*math.Pi))
		}
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "phase portrait: %s\n", meta.ID)
	fmt.Fprintf(out, "x-axis: x, y-axis: x_dot\n\n")
	fmt.Fprintln(out, analysis.NewPhasePortrait(traj).ASCII(70, 25))
	return nil
}

func viewRun(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}
	title := meta.ID
	if params, err := meta.Config.ModelParams(); err == nil {
		title = params.String()
	}
	return viz.RunPlayback(title, traj)
}
