package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/hhakhilesh/DamperMassSpring/internal/dynamo"
	"github.com/hhakhilesh/DamperMassSpring/internal/physics"
)

// SweepResult pairs a model with its trajectory.
type SweepResult struct {
	Model      *physics.Oscillator
	Trajectory *dynamo.Trajectory
}

// Sweep integrates one model per parameter set over the same setup. Each run
// gets its own goroutine and reads a shared value snapshot, so the setup may
// be changed once Sweep returns. Results keep the input order; the first
// failing index determines the returned error. Cancelling ctx stops every
// run.
func Sweep(ctx context.Context, integ Integrator, params []physics.Params, setup *Setup, dt float32) ([]SweepResult, error) {
	ready, err := setup.Ready()
	if err != nil {
		return nil, err
	}

	models := make([]*physics.Oscillator, len(params))
	for i, p := range params {
		m, err := physics.New(p)
		if err != nil {
			return nil, fmt.Errorf("sweep entry %d (%v): %w", i, p, err)
		}
		models[i] = m
	}

	results := make([]SweepResult, len(models))
	errs := make([]error, len(models))

	var wg sync.WaitGroup
	for i := range models {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			traj, err := integ.IntegrateContext(ctx, models[idx], ready, dt)
			results[idx] = SweepResult{Model: models[idx], Trajectory: traj}
			errs[idx] = err
		}(i)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("sweep entry %d: %w", i, err)
		}
	}

	return results, nil
}
