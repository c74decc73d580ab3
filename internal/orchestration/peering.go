package orchestration

import (
	"fmt"

	"github.com/genomix-mpc/genomix/internal/util/retry"
)

// peeringPhase connects every project's study network to every other
// project's, forming a full mesh. Existing peerings are skipped, so reruns
// create nothing.
type peeringPhase struct{}

func (peeringPhase) Name() string { return "peerings" }

func (peeringPhase) Run(ctx *Context) error {
	projects := distinctProjects(ctx.State.Projects)
	for _, project := range projects {
		existing, err := ctx.Compute.ListPeerings(ctx, project)
		if err != nil {
			return fmt.Errorf("failed to list peerings in %s: %w", project, err)
		}
		peered := make(map[string]struct{}, len(existing))
		for _, peering := range existing {
			peered[peeringRemoteProject(peering)] = struct{}{}
		}

		for _, remote := range projects {
			if remote == project {
				continue
			}
			if _, ok := peered[remote]; ok {
				continue
			}
			err := retry.WithFixedBackoff(ctx, func() error {
				return ctx.Compute.AddPeering(ctx, project, remote)
			}, ctx.Timeouts.PeeringAttempts, ctx.Timeouts.PeeringDelay)
			if err != nil {
				return fmt.Errorf("failed to peer %s with %s: %w", project, remote, err)
			}
		}
		ctx.Observer.Printf("peering mesh ready for %s", project)
	}
	return nil
}
