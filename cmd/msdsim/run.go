package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hhakhilesh/DamperMassSpring/internal/config"
	"github.com/hhakhilesh/DamperMassSpring/internal/dynamo"
	"github.com/hhakhilesh/DamperMassSpring/internal/integrators"
	"github.com/hhakhilesh/DamperMassSpring/internal/metrics"
	"github.com/hhakhilesh/DamperMassSpring/internal/plot"
	"github.com/hhakhilesh/DamperMassSpring/internal/viz"
)

type runFlags struct {
	m, c, k    float32
	zeta, wn   float32
	x0, v0     float32
	start      float32
	end        float32
	dt         float32
	config     string
	preset     string
	label      string
	save       bool
	png        string
	ascii      bool
	saveConfig string
}

func newRunCmd() *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "integrate one model and report the trajectory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd, f)
		},
	}

	fl := cmd.Flags()
	fl.Float32Var(&f.m, "m", config.DefaultMass, "mass")
	fl.Float32Var(&f.c, "c", config.DefaultDamp, "damping coefficient")
	fl.Float32Var(&f.k, "k", config.DefaultStiff, "spring stiffness")
	fl.Float32Var(&f.zeta, "zeta", 0, "damping ratio (modal parameterization)")
	fl.Float32Var(&f.wn, "wn", 0, "natural frequency in rad/s (modal parameterization)")
	fl.Float32Var(&f.x0, "x0", config.DefaultPos, "initial position")
	fl.Float32Var(&f.v0, "v0", 0, "initial velocity")
	fl.Float32Var(&f.start, "start", 0, "window start time")
	fl.Float32Var(&f.end, "end", config.DefaultEnd, "window end time")
	fl.Float32Var(&f.dt, "dt", integrators.DefaultStepSize, "step size")
	fl.StringVar(&f.config, "config", "", "config file path (yaml)")
	fl.StringVar(&f.preset, "preset", "", "use preset configuration")
	fl.StringVar(&f.label, "label", "msd", "run label used in the run id")
	fl.BoolVar(&f.save, "save", true, "store the run under --data")
	fl.StringVar(&f.png, "png", "", "write a position plot to this PNG (or .svg) file")
	fl.BoolVar(&f.ascii, "ascii", true, "print a terminal plot of the position")
	fl.StringVar(&f.saveConfig, "save-config", "", "write the resolved config to this yaml file")
	cmd.MarkFlagsMutuallyExclusive("preset", "config")

	return cmd
}

// resolveConfig layers defaults, then preset or config file, then any flag
// the user set explicitly.
func resolveConfig(cmd *cobra.Command, f *runFlags) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if f.preset != "" {
		cfg = config.GetPreset(f.preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", f.preset, config.ListPresets())
		}
	}
	if f.config != "" {
		loaded, err := config.Load(f.config)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	physical := changed("m") || changed("c") || changed("k")
	modal := changed("zeta") || changed("wn")
	if physical && modal {
		return nil, fmt.Errorf("%w: --m/--c/--k and --zeta/--wn are exclusive", dynamo.ErrInvalidParameter)
	}

	if physical {
		if cfg.Params.Kind == config.KindModal {
			cfg.Params = config.ParamsConfig{M: config.DefaultMass, C: config.DefaultDamp, K: config.DefaultStiff}
		}
		cfg.Params.Kind = config.KindPhysical
		if changed("m") {
			cfg.Params.M = f.m
		}
		if changed("c") {
			cfg.Params.C = f.c
		}
		if changed("k") {
			cfg.Params.K = f.k
		}
	}
	if modal {
		if cfg.Params.Kind != config.KindModal {
			cfg.Params = config.ParamsConfig{}
		}
		cfg.Params.Kind = config.KindModal
		if changed("zeta") {
			cfg.Params.Zeta = f.zeta
		}
		if changed("wn") {
			cfg.Params.Wn = f.wn
		}
	}

	if changed("x0") {
		cfg.InitState.Pos = f.x0
	}
	if changed("v0") {
		cfg.InitState.Vel = f.v0
	}
	if changed("start") {
		cfg.Window.Start = f.start
	}
	if changed("end") {
		cfg.Window.End = f.end
	}
	if changed("dt") {
		cfg.Dt = f.dt
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, f *runFlags) error {
	cfg, err := resolveConfig(cmd, f)
	if err != nil {
		return err
	}

	osc, setup, err := cfg.Build()
	if err != nil {
		return err
	}

	if f.saveConfig != "" {
		if err := config.Save(f.saveConfig, cfg); err != nil {
			return err
		}
	}

	logger.Debug("integrating", "model", osc.Params(), "window", fmt.Sprintf("[%g, %g]", cfg.Window.Start, cfg.Window.End), "dt", cfg.Dt)
	started := time.Now()

	ready, err := setup.Ready()
	if err != nil {
		return err
	}
	traj, err := integrators.NewRK4().IntegrateContext(cmd.Context(), osc, ready, cfg.Dt)
	if err != nil {
		return err
	}

	elapsed := time.Since(started)
	if i := traj.FirstNonFinite(); i >= 0 {
		return fmt.Errorf("%w: sample %d at t=%g (dt=%g may be too large for wn=%g)",
			dynamo.ErrDiverged, i, traj.Time[i], cfg.Dt, osc.Modal().Wn)
	}
	logger.Info("run completed", "samples", traj.Len(), "elapsed", elapsed)

	summary := metrics.Summarize(osc, traj)
	out := cmd.OutOrStdout()

	if f.save {
		st, err := openStore()
		if err != nil {
			return err
		}
		runID, err := st.Save(f.label, *cfg, summary.Map(), traj)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "run id: %s\n", runID)
	}

	fmt.Fprintln(out, viz.RenderSummary("mass-spring-damper", osc.Params().String(), summary.Map()))

	if f.ascii {
		fmt.Fprintln(out)
		fmt.Fprintln(out, plot.ASCII(traj.Position, plot.DefaultYLabel+" vs "+plot.DefaultXLabel, 70, 15))
	}

	if f.png != "" {
		fig := plot.DefaultFigure()
		fig.Legend = osc.Params().String()
		if err := plot.Save(f.png, traj.Time, traj.Position, fig); err != nil {
			return err
		}
		logger.Info("plot written", "path", f.png)
	}

	return nil
}
