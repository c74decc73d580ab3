package orchestration

import (
	"fmt"
	"strings"
	"time"

	"github.com/genomix-mpc/genomix/internal/metrics"
	"github.com/genomix-mpc/genomix/internal/platform/gcp"
	"github.com/genomix-mpc/genomix/internal/util/naming"
	"github.com/genomix-mpc/genomix/internal/util/netutil"
	"github.com/genomix-mpc/genomix/internal/util/retry"

	"google.golang.org/api/compute/v1"
)

// subnetPhase brings each project's slice of the study address plan into
// existence: foreign peerings and overlapping subnets are pruned first, then
// the role subnet is created.
//
// Peerings go before subnets because exchanged routes pin the address ranges
// they cover; a subnet overlapping a peered range cannot be deleted until
// the peering is gone.
type subnetPhase struct{}

func (subnetPhase) Name() string { return "subnets" }

func (subnetPhase) Run(ctx *Context) error {
	projects := ctx.State.Projects
	for role, project := range projects {
		if err := removeConflictingPeerings(ctx, project, projects); err != nil {
			return fmt.Errorf("project %s: %w", project, err)
		}
		if err := removeConflictingSubnets(ctx, project, projects); err != nil {
			return fmt.Errorf("project %s: %w", project, err)
		}
		if err := ensureRoleSubnet(ctx, project, role); err != nil {
			return fmt.Errorf("project %s: %w", project, err)
		}
	}
	return nil
}

// removeConflictingPeerings drops peerings of the study network that point
// at projects outside the study.
func removeConflictingPeerings(ctx *Context, project string, allowed []string) error {
	peerings, err := ctx.Compute.ListPeerings(ctx, project)
	if err != nil {
		return err
	}

	allowedSet := make(map[string]struct{}, len(allowed))
	for _, p := range allowed {
		allowedSet[p] = struct{}{}
	}

	for _, peering := range peerings {
		remote := peeringRemoteProject(peering)
		if _, ok := allowedSet[remote]; ok {
			continue
		}
		ctx.Observer.Printf("removing foreign peering %s in %s (remote %s)", peering.Name, project, remote)
		err := retry.WithFixedBackoff(ctx, func() error {
			return ctx.Compute.RemovePeering(ctx, project, peering.Name)
		}, ctx.Timeouts.PeeringAttempts, ctx.Timeouts.PeeringDelay)
		if err != nil {
			return fmt.Errorf("failed to remove peering %s: %w", peering.Name, err)
		}
		metrics.CountConflictRemoval("peering")
	}
	return nil
}

// removeConflictingSubnets deletes subnets on the study network whose ranges
// collide with an address claim this project holds. Claims are the /24
// ranges of every role the project occupies, so a project hosting several
// roles defends all of them; ranges claimed by other projects are not this
// project's to prune. Every owned role's subnet is spared, not just the one
// being reconciled, so sibling roles in a shared project keep each other's
// subnets intact.
func removeConflictingSubnets(ctx *Context, project string, projects []string) error {
	subnets, err := ctx.Compute.ListSubnets(ctx, project)
	if err != nil {
		return err
	}

	var claims []string
	owned := make(map[string]struct{})
	for i, p := range projects {
		if p != project {
			continue
		}
		claim, err := netutil.RoleClaimRange(i)
		if err != nil {
			return err
		}
		claims = append(claims, claim)
		owned[naming.Subnet(i)] = struct{}{}
	}

	for _, subnet := range subnets {
		if _, ok := owned[subnet.Name]; ok {
			continue
		}
		overlaps, err := netutil.OverlapsAny(subnet.IpCidrRange, claims)
		if err != nil {
			return fmt.Errorf("subnet %s: %w", subnet.Name, err)
		}
		if !overlaps {
			continue
		}
		ctx.Observer.Printf("removing conflicting subnet %s (%s) in %s", subnet.Name, subnet.IpCidrRange, project)
		if err := deleteSubnetEvacuated(ctx, project, subnet.Name); err != nil {
			return err
		}
		metrics.CountConflictRemoval("subnet")
	}
	return nil
}

// ensureRoleSubnet creates the role's subnet if it does not exist yet.
func ensureRoleSubnet(ctx *Context, project string, role int) error {
	name := naming.Subnet(role)
	ipRange, err := netutil.RoleSubnetRange(role)
	if err != nil {
		return err
	}

	subnets, err := ctx.Compute.ListSubnets(ctx, project)
	if err != nil {
		return err
	}
	for _, subnet := range subnets {
		if subnet.Name == name {
			return nil
		}
	}

	return retry.WithFixedBackoff(ctx, func() error {
		return ctx.Compute.CreateSubnet(ctx, project, name, ipRange)
	}, ctx.Timeouts.SubnetCreateAttempts, ctx.Timeouts.SubnetCreateDelay)
}

// deleteSubnetEvacuated removes the instances attached to a subnet, deletes
// the subnet, and confirms it is gone. Deletion attempts are retried, and a
// subnet that survives the confirmation window surfaces as
// ReconciliationExhaustedError.
func deleteSubnetEvacuated(ctx *Context, project, subnet string) error {
	instances, err := ctx.Compute.ListInstances(ctx, project, subnet)
	if err != nil {
		return err
	}
	for _, instance := range instances {
		ctx.Observer.Printf("evacuating instance %s from %s", instance.Name, subnet)
		if err := ctx.Compute.DeleteInstance(ctx, project, instance.Name); err != nil {
			return fmt.Errorf("failed to evacuate instance %s: %w", instance.Name, err)
		}
	}

	err = retry.WithFixedBackoff(ctx, func() error {
		return ctx.Compute.DeleteSubnet(ctx, project, subnet)
	}, ctx.Timeouts.SubnetDeleteAttempts, ctx.Timeouts.SubnetDeleteDelay)
	if err != nil {
		return fmt.Errorf("failed to delete subnet %s: %w", subnet, err)
	}

	for attempt := 0; attempt < ctx.Timeouts.SubnetDeleteConfirmAttempts; attempt++ {
		gone, err := subnetAbsent(ctx, project, subnet)
		if err != nil {
			return err
		}
		if gone {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(ctx.Timeouts.SubnetDeleteConfirmInterval):
		}
	}
	return &gcp.ReconciliationExhaustedError{Project: project, Resource: subnet}
}

func subnetAbsent(ctx *Context, project, subnet string) (bool, error) {
	subnets, err := ctx.Compute.ListSubnets(ctx, project)
	if err != nil {
		return false, err
	}
	for _, s := range subnets {
		if s.Name == subnet {
			return false, nil
		}
	}
	return true, nil
}

// peeringRemoteProject extracts the remote project from a peering's network
// URL.
func peeringRemoteProject(peering *compute.NetworkPeering) string {
	_, after, ok := strings.Cut(peering.Network, "/projects/")
	if !ok {
		return ""
	}
	project, _, _ := strings.Cut(after, "/")
	return project
}
