package gcp

import (
	"context"
	"fmt"

	"github.com/genomix-mpc/genomix/internal/util/naming"

	"google.golang.org/api/compute/v1"
)

// ListPeerings returns the peerings configured on the study network. A
// missing network yields an empty list rather than an error, since projects
// join the mesh at different times.
func (c *RealClient) ListPeerings(ctx context.Context, project string) ([]*compute.NetworkPeering, error) {
	network, err := c.service.Networks.Get(project, naming.Network()).Context(ctx).Do()
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get network in %s: %w", project, err)
	}
	return network.Peerings, nil
}

// AddPeering peers the project's study network with the study network in the
// remote project. Subnet routes are exchanged so instances reach each other
// on their internal addresses.
func (c *RealClient) AddPeering(ctx context.Context, project, remoteProject string) error {
	name := naming.Peering(remoteProject)
	op, err := c.service.Networks.AddPeering(project, naming.Network(),
		&compute.NetworksAddPeeringRequest{
			NetworkPeering: &compute.NetworkPeering{
				Name:                 name,
				Network:              networkURL(remoteProject, naming.Network()),
				ExchangeSubnetRoutes: true,
			},
		}).Context(ctx).Do()
	if err != nil {
		if IsConflict(err) {
			// Already peered.
			return nil
		}
		return fmt.Errorf("failed to add peering %s in %s: %w", name, project, err)
	}
	return c.waitGlobal(ctx, project, op)
}

// RemovePeering drops a peering from the study network. Absent peerings are
// ignored.
func (c *RealClient) RemovePeering(ctx context.Context, project, peeringName string) error {
	op, err := c.service.Networks.RemovePeering(project, naming.Network(),
		&compute.NetworksRemovePeeringRequest{
			Name: peeringName,
		}).Context(ctx).Do()
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to remove peering %s in %s: %w", peeringName, project, err)
	}
	return c.waitGlobal(ctx, project, op)
}
