package gcp

import (
	"context"

	"google.golang.org/api/compute/v1"
)

// MockClient is a mock implementation of ComputeManager. Each method
// delegates to its Func field when set and returns a benign default
// otherwise.
type MockClient struct {
	// Network
	EnsureNetworkFunc  func(ctx context.Context, project string) (*compute.Network, error)
	DeleteNetworkFunc  func(ctx context.Context, project string) error
	EnsureFirewallFunc func(ctx context.Context, project string) error
	DeleteFirewallFunc func(ctx context.Context, project string) error

	// Subnet
	ListSubnetsFunc  func(ctx context.Context, project string) ([]*compute.Subnetwork, error)
	CreateSubnetFunc func(ctx context.Context, project, name, ipRange string) error
	DeleteSubnetFunc func(ctx context.Context, project, name string) error

	// Peering
	ListPeeringsFunc  func(ctx context.Context, project string) ([]*compute.NetworkPeering, error)
	AddPeeringFunc    func(ctx context.Context, project, remoteProject string) error
	RemovePeeringFunc func(ctx context.Context, project, peeringName string) error

	// Instance
	CreateInstanceFunc         func(ctx context.Context, project string, opts InstanceCreateOpts) error
	DeleteInstanceFunc         func(ctx context.Context, project, name string) error
	StopInstanceFunc           func(ctx context.Context, project, name string) error
	ListInstancesFunc          func(ctx context.Context, project, subnet string) ([]*compute.Instance, error)
	InstanceExternalIPFunc     func(ctx context.Context, project, name string) (string, error)
	InstanceServiceAccountFunc func(ctx context.Context, project, name string) (string, error)
}

// Ensure interface compliance
var _ ComputeManager = (*MockClient)(nil)

// EnsureNetwork mocks network creation.
func (m *MockClient) EnsureNetwork(ctx context.Context, project string) (*compute.Network, error) {
	if m.EnsureNetworkFunc != nil {
		return m.EnsureNetworkFunc(ctx, project)
	}
	return &compute.Network{Name: "mock-network"}, nil
}

// DeleteNetwork mocks network deletion.
func (m *MockClient) DeleteNetwork(ctx context.Context, project string) error {
	if m.DeleteNetworkFunc != nil {
		return m.DeleteNetworkFunc(ctx, project)
	}
	return nil
}

// EnsureFirewall mocks firewall creation.
func (m *MockClient) EnsureFirewall(ctx context.Context, project string) error {
	if m.EnsureFirewallFunc != nil {
		return m.EnsureFirewallFunc(ctx, project)
	}
	return nil
}

// DeleteFirewall mocks firewall deletion.
func (m *MockClient) DeleteFirewall(ctx context.Context, project string) error {
	if m.DeleteFirewallFunc != nil {
		return m.DeleteFirewallFunc(ctx, project)
	}
	return nil
}

// ListSubnets mocks subnet listing.
func (m *MockClient) ListSubnets(ctx context.Context, project string) ([]*compute.Subnetwork, error) {
	if m.ListSubnetsFunc != nil {
		return m.ListSubnetsFunc(ctx, project)
	}
	return nil, nil
}

// CreateSubnet mocks subnet creation.
func (m *MockClient) CreateSubnet(ctx context.Context, project, name, ipRange string) error {
	if m.CreateSubnetFunc != nil {
		return m.CreateSubnetFunc(ctx, project, name, ipRange)
	}
	return nil
}

// DeleteSubnet mocks subnet deletion.
func (m *MockClient) DeleteSubnet(ctx context.Context, project, name string) error {
	if m.DeleteSubnetFunc != nil {
		return m.DeleteSubnetFunc(ctx, project, name)
	}
	return nil
}

// ListPeerings mocks peering listing.
func (m *MockClient) ListPeerings(ctx context.Context, project string) ([]*compute.NetworkPeering, error) {
	if m.ListPeeringsFunc != nil {
		return m.ListPeeringsFunc(ctx, project)
	}
	return nil, nil
}

// AddPeering mocks peering creation.
func (m *MockClient) AddPeering(ctx context.Context, project, remoteProject string) error {
	if m.AddPeeringFunc != nil {
		return m.AddPeeringFunc(ctx, project, remoteProject)
	}
	return nil
}

// RemovePeering mocks peering removal.
func (m *MockClient) RemovePeering(ctx context.Context, project, peeringName string) error {
	if m.RemovePeeringFunc != nil {
		return m.RemovePeeringFunc(ctx, project, peeringName)
	}
	return nil
}

// CreateInstance mocks instance creation.
func (m *MockClient) CreateInstance(ctx context.Context, project string, opts InstanceCreateOpts) error {
	if m.CreateInstanceFunc != nil {
		return m.CreateInstanceFunc(ctx, project, opts)
	}
	return nil
}

// DeleteInstance mocks instance deletion.
func (m *MockClient) DeleteInstance(ctx context.Context, project, name string) error {
	if m.DeleteInstanceFunc != nil {
		return m.DeleteInstanceFunc(ctx, project, name)
	}
	return nil
}

// StopInstance mocks stopping an instance.
func (m *MockClient) StopInstance(ctx context.Context, project, name string) error {
	if m.StopInstanceFunc != nil {
		return m.StopInstanceFunc(ctx, project, name)
	}
	return nil
}

// ListInstances mocks instance listing.
func (m *MockClient) ListInstances(ctx context.Context, project, subnet string) ([]*compute.Instance, error) {
	if m.ListInstancesFunc != nil {
		return m.ListInstancesFunc(ctx, project, subnet)
	}
	return nil, nil
}

// InstanceExternalIP mocks external address lookup.
func (m *MockClient) InstanceExternalIP(ctx context.Context, project, name string) (string, error) {
	if m.InstanceExternalIPFunc != nil {
		return m.InstanceExternalIPFunc(ctx, project, name)
	}
	return "203.0.113.10", nil
}

// InstanceServiceAccount mocks service-account lookup.
func (m *MockClient) InstanceServiceAccount(ctx context.Context, project, name string) (string, error) {
	if m.InstanceServiceAccountFunc != nil {
		return m.InstanceServiceAccountFunc(ctx, project, name)
	}
	return "default@mock.iam.gserviceaccount.com", nil
}
