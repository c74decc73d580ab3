package gcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/genomix-mpc/genomix/internal/util/naming"

	"google.golang.org/api/compute/v1"
)

// ListSubnets returns the subnets of the study network in the project's
// configured region. Subnets of other networks are filtered out so the
// caller only ever reasons about study-owned address space.
func (c *RealClient) ListSubnets(ctx context.Context, project string) ([]*compute.Subnetwork, error) {
	var subnets []*compute.Subnetwork
	networkSuffix := "/" + naming.Network()

	err := c.service.Subnetworks.List(project, c.cfg.Region).Pages(ctx,
		func(page *compute.SubnetworkList) error {
			for _, subnet := range page.Items {
				if strings.HasSuffix(subnet.Network, networkSuffix) {
					subnets = append(subnets, subnet)
				}
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list subnets in %s: %w", project, err)
	}
	return subnets, nil
}

// CreateSubnet creates a subnet on the study network with the given range.
func (c *RealClient) CreateSubnet(ctx context.Context, project, name, ipRange string) error {
	op, err := c.service.Subnetworks.Insert(project, c.cfg.Region, &compute.Subnetwork{
		Name:        name,
		Network:     networkURL(project, naming.Network()),
		IpCidrRange: ipRange,
		Region:      c.cfg.Region,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to create subnet %s: %w", name, err)
	}
	return c.waitRegion(ctx, project, op)
}

// DeleteSubnet removes a subnet. Absent subnets are ignored; the caller is
// responsible for evacuating instances first.
func (c *RealClient) DeleteSubnet(ctx context.Context, project, name string) error {
	op, err := c.service.Subnetworks.Delete(project, c.cfg.Region, name).Context(ctx).Do()
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete subnet %s: %w", name, err)
	}
	return c.waitRegion(ctx, project, op)
}
