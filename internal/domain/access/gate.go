package access

import "strings"

// Gate is the resolved, read-only capability set of the process. The zero
// value enables nothing.
type Gate struct {
	role         Role
	capabilities map[Capability]struct{}
}

// NewGate builds a gate holding exactly caps, reported under role.
func NewGate(role Role, caps ...Capability) Gate {
	set := make(map[Capability]struct{}, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return Gate{role: role, capabilities: set}
}

// GateForRole builds the gate of a single role.
func GateForRole(role Role) Gate {
	return NewGate(role, RoleCapabilities[role]...)
}

// Resolve turns the startup selection into one canonical capability set.
// Role, preset and legacy flags combine by union. With nothing configured the
// role defaults to employee.
func Resolve(sel Selection) (Gate, error) {
	var (
		caps []Capability
		name Role
	)

	if strings.TrimSpace(sel.Role) != "" {
		role, err := ParseRole(sel.Role)
		if err != nil {
			return Gate{}, err
		}
		name = role
		caps = append(caps, RoleCapabilities[role]...)
	}

	if strings.TrimSpace(sel.Preset) != "" {
		preset, err := ParsePreset(sel.Preset)
		if err != nil {
			return Gate{}, err
		}
		role := presetRoles[preset]
		if name == "" {
			name = role
		}
		caps = append(caps, RoleCapabilities[role]...)
	}

	if sel.Flags.any() {
		if name == "" {
			name = RoleCustom
		}
		caps = append(caps, sel.Flags.capabilities()...)
	}

	if name == "" {
		name = RoleEmployee
		caps = append(caps, RoleCapabilities[RoleEmployee]...)
	}

	return NewGate(name, caps...), nil
}

// Role is the name the capability set is reported under.
func (g Gate) Role() Role {
	return g.role
}

// IsEnabled reports whether capability c is part of the set.
func (g Gate) IsEnabled(c Capability) bool {
	_, ok := g.capabilities[c]
	return ok
}

// Require returns a CapabilityDeniedError naming operation when c is disabled.
func (g Gate) Require(c Capability, operation string) error {
	if g.IsEnabled(c) {
		return nil
	}
	return &CapabilityDeniedError{Capability: c, Operation: operation}
}

// Capabilities lists the enabled capabilities in display order.
func (g Gate) Capabilities() []Capability {
	caps := make([]Capability, 0, len(g.capabilities))
	for _, c := range AllCapabilities {
		if g.IsEnabled(c) {
			caps = append(caps, c)
		}
	}
	return caps
}
