package naming

import "testing"

func TestNamingFunctions(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{
			name:     "Network",
			got:      Network(),
			expected: "genomix",
		},
		{
			name:     "Firewall",
			got:      Firewall(Network()),
			expected: "genomix-vm-ingress",
		},
		{
			name:     "Subnet role 0",
			got:      Subnet(0),
			expected: "genomix-subnet0",
		},
		{
			name:     "Subnet role 12",
			got:      Subnet(12),
			expected: "genomix-subnet12",
		},
		{
			name:     "Instance",
			got:      Instance("d2f3a9b1", 1),
			expected: "genomix-d2f3a9b1-role1",
		},
		{
			name:     "Peering",
			got:      Peering("partner-project"),
			expected: "peering-partner-project",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %q, expected %q", tt.got, tt.expected)
			}
		})
	}
}

func TestBelongsToStudy(t *testing.T) {
	name := Instance("abc123", 2)

	if !BelongsToStudy(name, "abc123") {
		t.Errorf("%q should belong to study abc123", name)
	}
	if BelongsToStudy(name, "abc") {
		t.Errorf("%q should not match the study-ID prefix abc", name)
	}
	if BelongsToStudy("unrelated-vm", "abc123") {
		t.Error("unrelated instance should not belong to the study")
	}
}

func TestPeeringRemoteProject(t *testing.T) {
	project, ok := PeeringRemoteProject("peering-partner-project")
	if !ok || project != "partner-project" {
		t.Errorf("got (%q, %v), expected (partner-project, true)", project, ok)
	}

	if _, ok := PeeringRemoteProject("manual-link"); ok {
		t.Error("non-generated peering name should not parse")
	}
	if _, ok := PeeringRemoteProject("peering-"); ok {
		t.Error("empty remote project should not parse")
	}
}
