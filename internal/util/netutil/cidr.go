// Package netutil provides CIDR arithmetic for the role-indexed address plan.
//
// Every role claims the /24 block 10.0.<role>.0/24; the subnet actually
// created inside that claim is the /28 at its base, and the instance for the
// role sits at host .10. Conflict detection between subnets must use network
// containment, not string comparison, because a stale subnet may carry any
// prefix length inside a claimed block.
package netutil

import (
	"fmt"
	"net"
)

// MaxRoles bounds the role index; the third octet of the address plan
// cannot exceed one byte.
const MaxRoles = 256

// RoleClaimRange returns the /24 block claimed by a role.
func RoleClaimRange(role int) (string, error) {
	if err := validateRole(role); err != nil {
		return "", err
	}
	return fmt.Sprintf("10.0.%d.0/24", role), nil
}

// RoleSubnetRange returns the /28 range of the subnet created for a role.
func RoleSubnetRange(role int) (string, error) {
	if err := validateRole(role); err != nil {
		return "", err
	}
	return fmt.Sprintf("10.0.%d.0/28", role), nil
}

// RoleInternalIP returns the fixed internal address of a role's instance.
func RoleInternalIP(role int) (string, error) {
	if err := validateRole(role); err != nil {
		return "", err
	}
	return fmt.Sprintf("10.0.%d.10", role), nil
}

func validateRole(role int) error {
	if role < 0 || role >= MaxRoles {
		return fmt.Errorf("role %d outside address plan (0..%d)", role, MaxRoles-1)
	}
	return nil
}

// Overlaps reports whether two CIDR ranges share any address.
func Overlaps(a, b string) (bool, error) {
	_, netA, err := net.ParseCIDR(a)
	if err != nil {
		return false, fmt.Errorf("invalid CIDR %q: %w", a, err)
	}
	_, netB, err := net.ParseCIDR(b)
	if err != nil {
		return false, fmt.Errorf("invalid CIDR %q: %w", b, err)
	}
	return netA.Contains(netB.IP) || netB.Contains(netA.IP), nil
}

// OverlapsAny reports whether the range overlaps any of the given ranges.
func OverlapsAny(cidr string, ranges []string) (bool, error) {
	for _, r := range ranges {
		overlap, err := Overlaps(cidr, r)
		if err != nil {
			return false, err
		}
		if overlap {
			return true, nil
		}
	}
	return false, nil
}
