package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/hhakhilesh/DamperMassSpring/internal/analysis"
	"github.com/hhakhilesh/DamperMassSpring/internal/config"
	"github.com/hhakhilesh/DamperMassSpring/internal/integrators"
	"github.com/hhakhilesh/DamperMassSpring/internal/metrics"
	"github.com/hhakhilesh/DamperMassSpring/internal/physics"
	"github.com/hhakhilesh/DamperMassSpring/internal/sim"
)

func newSweepCmd() *cobra.Command {
	var (
		m, k, x0, v0, end, dt float32
		damping               []float32
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "compare several damping coefficients on the same setup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := make([]physics.Params, len(damping))
			for i, c := range damping {
				params[i] = physics.Physical{M: m, C: c, K: k}
			}

			setup := &sim.Setup{}
			setup.SetInitialState(x0, v0)
			if err := setup.SetTimeWindow(end, 0); err != nil {
				return err
			}

			started := time.Now()
			results, err := sim.Sweep(cmd.Context(), integrators.NewRK4(), params, setup, dt)
			if err != nil {
				return err
			}
			logger.Info("sweep completed", "models", len(results), "elapsed", time.Since(started))

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PARAMS\tZETA\tFINAL X\tPEAK\tOSC\tFREQ HZ\tENERGY DRIFT")
			for _, r := range results {
				s := metrics.Summarize(r.Model, r.Trajectory)
				freq, err := analysis.DominantFrequency(r.Trajectory)
				if err != nil {
					freq = 0
				}
				fmt.Fprintf(w, "%s\t%.4g\t%+.5f\t%.4f\t%d\t%.3f\t%.4f\n",
					r.Model.Params(),
					r.Model.Modal().Zeta,
					s.FinalPosition,
					s.PeakAmplitude,
					s.Oscillations,
					freq,
					s.EnergyDrift,
				)
			}
			return w.Flush()
		},
	}

	fl := cmd.Flags()
	fl.Float32Var(&m, "m", config.DefaultMass, "mass")
	fl.Float32Var(&k, "k", config.DefaultStiff, "spring stiffness")
	fl.Float32SliceVar(&damping, "c", []float32{0.1, 0.5, 1, 2, 4}, "damping coefficients to compare")
	fl.Float32Var(&x0, "x0", config.DefaultPos, "initial position")
	fl.Float32Var(&v0, "v0", 0, "initial velocity")
	fl.Float32Var(&end, "end", config.DefaultEnd, "window end time")
	fl.Float32Var(&dt, "dt", integrators.DefaultStepSize, "step size")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [name]",
		Short: "list presets, or print one as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				cfg := config.GetPreset(args[0])
				if cfg == nil {
					return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
				}
				data, err := config.Marshal(cfg)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}

			fmt.Fprintln(out, "presets:")
			for _, name := range config.ListPresets() {
				fmt.Fprintf(out, "  %s\n", name)
			}
			return nil
		},
	}
}

func newBenchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench",
		Short: "measure integrator throughput",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := physics.NewPhysical(config.DefaultMass, config.DefaultDamp, config.DefaultStiff)
			if err != nil {
				return err
			}
			integ := integrators.NewRK4()

			durations := []float32{1, 10, 100}
			dts := []float32{0.0001, 0.001, 0.01}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DURATION\tDT\tSAMPLES\tTIME\tSAMPLES/SEC")

			for _, dur := range durations {
				for _, dt := range dts {
					setup := &sim.Setup{}
					setup.SetInitialState(config.DefaultPos, 0)
					if err := setup.SetTimeWindow(dur, 0); err != nil {
						return err
					}

					started := time.Now()
					traj, err := integ.Integrate(model, setup, dt)
					if err != nil {
						return err
					}
					elapsed := time.Since(started)

					fmt.Fprintf(w, "%gs\t%gs\t%d\t%v\t%.0f\n",
						dur, dt, traj.Len(), elapsed, float64(traj.Len())/elapsed.Seconds())
				}
			}
			return w.Flush()
		},
	}
}
