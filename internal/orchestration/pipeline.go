package orchestration

import (
	"fmt"
	"time"

	"github.com/genomix-mpc/genomix/internal/metrics"
)

// Phase defines one step of a lifecycle run.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Run executes the phase against the shared context.
	Run(ctx *Context) error
}

// RunPhases executes all phases sequentially, stopping at the first failure.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Printf("Starting run with %d phases...", len(phases))

	for i, phase := range phases {
		phaseStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", phase.Name(), i+1, len(phases))

		ctx.Observer.Printf("[%s] starting", name)

		err := phase.Run(ctx)
		metrics.ObservePhase(phase.Name(), time.Since(phaseStart), err)
		if err != nil {
			ctx.Observer.Printf("[%s] failed: %v", name, err)
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		ctx.Observer.Printf("[%s] completed in %v", name, time.Since(phaseStart).Round(time.Millisecond))
	}

	ctx.Observer.Printf("Run completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
