package orchestration

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/genomix-mpc/genomix/internal/platform/gcp"
	"github.com/genomix-mpc/genomix/internal/study"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/compute/v1"
)

func peeringTo(project string) *compute.NetworkPeering {
	return &compute.NetworkPeering{
		Name:    "peering-" + project,
		Network: "https://www.googleapis.com/compute/v1/projects/" + project + "/global/networks/genomix",
	}
}

func TestRemoveConflictingPeerings(t *testing.T) {
	var removed []string
	mock := &gcp.MockClient{
		ListPeeringsFunc: func(_ context.Context, project string) ([]*compute.NetworkPeering, error) {
			return []*compute.NetworkPeering{
				peeringTo("alice-project"),
				peeringTo("old-project"),
				peeringTo("stale-project"),
			}, nil
		},
		RemovePeeringFunc: func(_ context.Context, project, name string) error {
			removed = append(removed, name)
			return nil
		},
	}
	ctx := newTestContext(mock, study.NewMemoryStore())

	allowed := []string{"server-project", "alice-project", "bob-project"}
	require.NoError(t, removeConflictingPeerings(ctx, "server-project", allowed))
	assert.Equal(t, []string{"peering-old-project", "peering-stale-project"}, removed)
}

func TestPeeringMembershipChange(t *testing.T) {
	// a-project was peered with b and c; the study now spans {a, c, d}.
	// Reconciliation drops b, keeps c, and adds d.
	var mu sync.Mutex
	current := map[string]bool{"b-project": true, "c-project": true}
	var added []string

	mock := &gcp.MockClient{
		ListPeeringsFunc: func(_ context.Context, project string) ([]*compute.NetworkPeering, error) {
			mu.Lock()
			defer mu.Unlock()
			var peerings []*compute.NetworkPeering
			for remote, present := range current {
				if present {
					peerings = append(peerings, peeringTo(remote))
				}
			}
			return peerings, nil
		},
		RemovePeeringFunc: func(_ context.Context, project, name string) error {
			mu.Lock()
			defer mu.Unlock()
			current[strings.TrimPrefix(name, "peering-")] = false
			return nil
		},
		AddPeeringFunc: func(_ context.Context, project, remote string) error {
			mu.Lock()
			defer mu.Unlock()
			added = append(added, remote)
			current[remote] = true
			return nil
		},
	}
	ctx := newTestContext(mock, study.NewMemoryStore())
	projects := []string{"a-project", "c-project", "d-project"}
	ctx.State.Projects = projects

	require.NoError(t, removeConflictingPeerings(ctx, "a-project", projects))
	assert.False(t, current["b-project"])
	assert.True(t, current["c-project"])

	var phase peeringPhase
	require.NoError(t, phase.Run(ctx))
	assert.NotContains(t, added, "c-project", "existing peering must not be recreated")
	assert.Contains(t, added, "d-project")
}

func TestSubnetPhaseSharedProjectKeepsSiblingSubnets(t *testing.T) {
	// alice-project hosts the coordinating server (role 0) and alice
	// (role 1). Role 1's reconciliation must not prune role 0's subnet.
	var mu sync.Mutex
	existing := map[string][]*compute.Subnetwork{}

	mock := &gcp.MockClient{
		ListSubnetsFunc: func(_ context.Context, project string) ([]*compute.Subnetwork, error) {
			mu.Lock()
			defer mu.Unlock()
			return append([]*compute.Subnetwork(nil), existing[project]...), nil
		},
		CreateSubnetFunc: func(_ context.Context, project, name, ipRange string) error {
			mu.Lock()
			defer mu.Unlock()
			existing[project] = append(existing[project], &compute.Subnetwork{Name: name, IpCidrRange: ipRange})
			return nil
		},
		DeleteSubnetFunc: func(_ context.Context, project, name string) error {
			mu.Lock()
			defer mu.Unlock()
			kept := existing[project][:0]
			for _, s := range existing[project] {
				if s.Name != name {
					kept = append(kept, s)
				}
			}
			existing[project] = kept
			return nil
		},
	}
	ctx := newTestContext(mock, study.NewMemoryStore())
	ctx.State.Projects = []string{"alice-project", "alice-project", "bob-project"}

	var phase subnetPhase
	require.NoError(t, phase.Run(ctx))

	var names []string
	for _, s := range existing["alice-project"] {
		names = append(names, s.Name)
	}
	assert.ElementsMatch(t, []string{"genomix-subnet0", "genomix-subnet1"}, names)

	names = nil
	for _, s := range existing["bob-project"] {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"genomix-subnet2"}, names)
}

func TestRemoveConflictingSubnetsEvacuatesAndDeletes(t *testing.T) {
	var mu sync.Mutex
	deleted := false
	var evacuated []string

	mock := &gcp.MockClient{
		ListSubnetsFunc: func(_ context.Context, project string) ([]*compute.Subnetwork, error) {
			mu.Lock()
			defer mu.Unlock()
			if deleted {
				return nil, nil
			}
			return []*compute.Subnetwork{
				{Name: "legacy", IpCidrRange: "10.0.0.0/24"},
			}, nil
		},
		ListInstancesFunc: func(_ context.Context, project, subnet string) ([]*compute.Instance, error) {
			if subnet == "legacy" {
				return []*compute.Instance{{Name: "legacy-vm"}}, nil
			}
			return nil, nil
		},
		DeleteInstanceFunc: func(_ context.Context, project, name string) error {
			mu.Lock()
			defer mu.Unlock()
			evacuated = append(evacuated, name)
			return nil
		},
		DeleteSubnetFunc: func(_ context.Context, project, name string) error {
			mu.Lock()
			defer mu.Unlock()
			deleted = true
			return nil
		},
	}
	ctx := newTestContext(mock, study.NewMemoryStore())

	require.NoError(t, removeConflictingSubnets(ctx, "p1", []string{"p1", "p2", "p3"}))
	assert.Equal(t, []string{"legacy-vm"}, evacuated)
	assert.True(t, deleted)
}

func TestRemoveConflictingSubnetsKeepsDisjointRanges(t *testing.T) {
	deleteCalled := false
	mock := &gcp.MockClient{
		ListSubnetsFunc: func(_ context.Context, project string) ([]*compute.Subnetwork, error) {
			return []*compute.Subnetwork{
				{Name: "other", IpCidrRange: "10.5.0.0/24"},
			}, nil
		},
		DeleteSubnetFunc: func(_ context.Context, project, name string) error {
			deleteCalled = true
			return nil
		},
	}
	ctx := newTestContext(mock, study.NewMemoryStore())

	require.NoError(t, removeConflictingSubnets(ctx, "p1", []string{"p1", "p2", "p3"}))
	assert.False(t, deleteCalled, "disjoint subnet must be left alone")
}

func TestRemoveConflictingSubnetsLeavesForeignClaims(t *testing.T) {
	deleteCalled := false
	mock := &gcp.MockClient{
		ListSubnetsFunc: func(_ context.Context, project string) ([]*compute.Subnetwork, error) {
			// Role 1's range belongs to p2; p1 has no business pruning it.
			return []*compute.Subnetwork{
				{Name: "genomix-subnet1", IpCidrRange: "10.0.1.0/28"},
			}, nil
		},
		DeleteSubnetFunc: func(_ context.Context, project, name string) error {
			deleteCalled = true
			return nil
		},
	}
	ctx := newTestContext(mock, study.NewMemoryStore())

	require.NoError(t, removeConflictingSubnets(ctx, "p1", []string{"p1", "p2", "p3"}))
	assert.False(t, deleteCalled)
}

func TestRemoveConflictingSubnetsContainmentBothDirections(t *testing.T) {
	var mu sync.Mutex
	gone := map[string]bool{}

	mock := &gcp.MockClient{
		ListSubnetsFunc: func(_ context.Context, project string) ([]*compute.Subnetwork, error) {
			mu.Lock()
			defer mu.Unlock()
			all := []*compute.Subnetwork{
				{Name: "big", IpCidrRange: "10.0.0.0/16"},
				{Name: "small", IpCidrRange: "10.0.0.64/28"},
				{Name: "genomix-subnet0", IpCidrRange: "10.0.0.0/28"},
			}
			var out []*compute.Subnetwork
			for _, s := range all {
				if !gone[s.Name] {
					out = append(out, s)
				}
			}
			return out, nil
		},
		DeleteSubnetFunc: func(_ context.Context, project, name string) error {
			mu.Lock()
			defer mu.Unlock()
			gone[name] = true
			return nil
		},
	}
	ctx := newTestContext(mock, study.NewMemoryStore())

	require.NoError(t, removeConflictingSubnets(ctx, "p1", []string{"p1", "p2", "p3"}))
	assert.True(t, gone["big"], "range containing the claim must be pruned")
	assert.True(t, gone["small"], "range inside the claim must be pruned")
	assert.False(t, gone["genomix-subnet0"], "the role's own subnet survives")
}

func TestDeleteSubnetExhaustionSurfacesTypedError(t *testing.T) {
	mock := &gcp.MockClient{
		ListSubnetsFunc: func(_ context.Context, project string) ([]*compute.Subnetwork, error) {
			// The subnet never goes away.
			return []*compute.Subnetwork{
				{Name: "stuck", IpCidrRange: "10.0.2.0/24"},
			}, nil
		},
	}
	ctx := newTestContext(mock, study.NewMemoryStore())

	err := deleteSubnetEvacuated(ctx, "p1", "stuck")
	var exhausted *gcp.ReconciliationExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, "p1", exhausted.Project)
	assert.Equal(t, "stuck", exhausted.Resource)
}

func TestPeeringRemoteProject(t *testing.T) {
	tests := []struct {
		name    string
		network string
		want    string
	}{
		{
			name:    "full url",
			network: "https://www.googleapis.com/compute/v1/projects/p2/global/networks/genomix",
			want:    "p2",
		},
		{
			name:    "partial url",
			network: "projects/p3/global/networks/genomix",
			want:    "p3",
		},
		{
			name:    "malformed",
			network: "not-a-url",
			want:    "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := peeringRemoteProject(&compute.NetworkPeering{Network: tt.network})
			assert.Equal(t, tt.want, got)
		})
	}
}
