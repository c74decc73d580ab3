// Package naming provides consistent naming functions for study cloud resources.
//
// The shared network carries a fixed name so one project can host it across
// studies; subnets are indexed by role; instances encode study and role so a
// teardown scan can safely identify "this study's instances" inside a project
// that hosts other workloads too.
package naming

import (
	"fmt"
	"strings"
)

const (
	// networkName is the fixed name of the shared study network within a project.
	networkName = "genomix"

	// subnetPrefix prefixes role-indexed subnet names.
	subnetPrefix = "genomix-subnet"

	// instanceRoot prefixes every instance this system manages.
	instanceRoot = "genomix"

	// peeringPrefix prefixes peering names; the remainder is the remote project ID.
	peeringPrefix = "peering-"
)

// Network returns the shared network name.
func Network() string {
	return networkName
}

// Firewall returns the ingress firewall name for the given network.
func Firewall(network string) string {
	return fmt.Sprintf("%s-vm-ingress", network)
}

// Subnet returns the subnet name for a role.
func Subnet(role int) string {
	return fmt.Sprintf("%s%d", subnetPrefix, role)
}

// Instance returns the instance name for a study and role.
func Instance(studyID string, role int) string {
	return fmt.Sprintf("%s-%s-role%d", instanceRoot, studyID, role)
}

// BelongsToStudy reports whether an instance name was generated for the study.
func BelongsToStudy(instanceName, studyID string) bool {
	return strings.HasPrefix(instanceName, fmt.Sprintf("%s-%s-", instanceRoot, studyID))
}

// Peering returns the peering name for a remote project.
func Peering(remoteProject string) string {
	return peeringPrefix + remoteProject
}

// PeeringRemoteProject extracts the remote project ID from a peering name.
// The second return is false when the name was not generated by Peering.
func PeeringRemoteProject(peeringName string) (string, bool) {
	project, ok := strings.CutPrefix(peeringName, peeringPrefix)
	if !ok || project == "" {
		return "", false
	}
	return project, true
}
