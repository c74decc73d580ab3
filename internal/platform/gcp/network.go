package gcp

import (
	"context"
	"fmt"

	"github.com/genomix-mpc/genomix/internal/config"
	"github.com/genomix-mpc/genomix/internal/util/naming"

	"google.golang.org/api/compute/v1"
)

// EnsureNetwork creates the study network in the project if missing and
// returns it. The network carries no automatic subnets; role subnets are
// created explicitly so their address ranges stay under our control.
func (c *RealClient) EnsureNetwork(ctx context.Context, project string) (*compute.Network, error) {
	name := naming.Network()

	network, err := c.service.Networks.Get(project, name).Context(ctx).Do()
	if err == nil {
		return network, nil
	}
	if !IsNotFound(err) {
		return nil, fmt.Errorf("failed to get network %s: %w", name, err)
	}

	op, err := c.service.Networks.Insert(project, &compute.Network{
		Name:                  name,
		AutoCreateSubnetworks: false,
		// AutoCreateSubnetworks is omitted from the request when false
		// unless force-sent, and omitting it means legacy-mode.
		ForceSendFields: []string{"AutoCreateSubnetworks"},
		RoutingConfig: &compute.NetworkRoutingConfig{
			RoutingMode: "GLOBAL",
		},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create network %s: %w", name, err)
	}
	if err := c.waitGlobal(ctx, project, op); err != nil {
		return nil, fmt.Errorf("failed to wait for network creation: %w", err)
	}

	network, err = c.service.Networks.Get(project, name).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get network %s after creation: %w", name, err)
	}
	return network, nil
}

// DeleteNetwork removes the study network. Absent networks are ignored.
func (c *RealClient) DeleteNetwork(ctx context.Context, project string) error {
	name := naming.Network()
	op, err := c.service.Networks.Delete(project, name).Context(ctx).Do()
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete network %s: %w", name, err)
	}
	return c.waitGlobal(ctx, project, op)
}

// EnsureFirewall installs the ingress rule admitting the protocol port range
// and SSH from anywhere on the study network.
func (c *RealClient) EnsureFirewall(ctx context.Context, project string) error {
	name := naming.Firewall(naming.Network())

	_, err := c.service.Firewalls.Get(project, name).Context(ctx).Do()
	if err == nil {
		return nil
	}
	if !IsNotFound(err) {
		return fmt.Errorf("failed to get firewall %s: %w", name, err)
	}

	op, err := c.service.Firewalls.Insert(project, &compute.Firewall{
		Name:    name,
		Network: networkURL(project, naming.Network()),
		Allowed: []*compute.FirewallAllowed{
			{
				IPProtocol: "tcp",
				Ports:      []string{config.ProtocolPortRange, config.SSHPort},
			},
		},
		Direction:    "INGRESS",
		SourceRanges: []string{"0.0.0.0/0"},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to create firewall %s: %w", name, err)
	}
	return c.waitGlobal(ctx, project, op)
}

// DeleteFirewall removes the ingress rule. Absent firewalls are ignored.
func (c *RealClient) DeleteFirewall(ctx context.Context, project string) error {
	name := naming.Firewall(naming.Network())
	op, err := c.service.Firewalls.Delete(project, name).Context(ctx).Do()
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete firewall %s: %w", name, err)
	}
	return c.waitGlobal(ctx, project, op)
}
