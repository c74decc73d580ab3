// Package gcp provides a wrapper around the Google Compute Engine API.
package gcp

import (
	"context"

	"google.golang.org/api/compute/v1"
)

// InstanceCreateOpts holds all parameters for creating a compute instance.
type InstanceCreateOpts struct {
	Name           string
	NumCPUs        int
	BootDiskSizeGB int64

	// Subnet and NetworkIP pin the instance to its role's address claim.
	Subnet    string
	NetworkIP string

	// Metadata entries attached to the instance, including the boot-time
	// startup script.
	Metadata map[string]string
}

// NetworkManager defines the interface for managing the shared VPC network
// and its ingress firewall.
type NetworkManager interface {
	// EnsureNetwork creates the study network in the project if it does
	// not already exist and returns it.
	EnsureNetwork(ctx context.Context, project string) (*compute.Network, error)
	DeleteNetwork(ctx context.Context, project string) error

	// EnsureFirewall installs the ingress rule admitting the protocol
	// port range and SSH on the study network.
	EnsureFirewall(ctx context.Context, project string) error
	DeleteFirewall(ctx context.Context, project string) error
}

// SubnetManager defines the interface for managing role subnets.
type SubnetManager interface {
	ListSubnets(ctx context.Context, project string) ([]*compute.Subnetwork, error)
	CreateSubnet(ctx context.Context, project, name, ipRange string) error
	// DeleteSubnet removes the subnet after its instances are gone.
	// Deleting an absent subnet is not an error.
	DeleteSubnet(ctx context.Context, project, name string) error
}

// PeeringManager defines the interface for managing VPC peerings on the
// study network.
type PeeringManager interface {
	ListPeerings(ctx context.Context, project string) ([]*compute.NetworkPeering, error)
	AddPeering(ctx context.Context, project, remoteProject string) error
	RemovePeering(ctx context.Context, project, peeringName string) error
}

// InstanceManager defines the interface for managing compute instances in
// the configured zone.
type InstanceManager interface {
	// CreateInstance replaces any existing instance of the same name and
	// creates a fresh one from the given options.
	CreateInstance(ctx context.Context, project string, opts InstanceCreateOpts) error
	DeleteInstance(ctx context.Context, project, name string) error
	StopInstance(ctx context.Context, project, name string) error

	// ListInstances returns the instances in the zone. A non-empty subnet
	// restricts the result to instances attached to that subnet.
	ListInstances(ctx context.Context, project, subnet string) ([]*compute.Instance, error)

	InstanceExternalIP(ctx context.Context, project, name string) (string, error)
	InstanceServiceAccount(ctx context.Context, project, name string) (string, error)
}

// ComputeManager combines all compute-platform interfaces.
type ComputeManager interface {
	NetworkManager
	SubnetManager
	PeeringManager
	InstanceManager
}
