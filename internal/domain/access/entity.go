package access

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleEmployee    Role = "employee"     // Own time tracking
	RoleTeamLeader  Role = "team_leader"  // Employee plus team management
	RoleHRAnalytics Role = "hr_analytics" // Read-only compliance analytics
	RoleAdmin       Role = "admin"        // Everything

	// RoleCustom is reported when capabilities come from legacy flags only.
	RoleCustom Role = "custom"
)

type Capability string

const (
	CapabilityHRRead    Capability = "hr_read"
	CapabilityUserRead  Capability = "user_read"
	CapabilityUserEdit  Capability = "user_edit"
	CapabilityTeamRead  Capability = "team_read"
	CapabilityTeamEdit  Capability = "team_edit"
	CapabilityAdminRead Capability = "admin_read"
	CapabilityAdminEdit Capability = "admin_edit"
)

// AllCapabilities lists every capability tag in display order.
var AllCapabilities = []Capability{
	CapabilityHRRead,
	CapabilityUserRead,
	CapabilityUserEdit,
	CapabilityTeamRead,
	CapabilityTeamEdit,
	CapabilityAdminRead,
	CapabilityAdminEdit,
}

var employeeCapabilities = []Capability{
	CapabilityUserRead,
	CapabilityUserEdit,
}

// RoleCapabilities maps roles to their capabilities.
// admin ⊇ team_leader ⊇ employee; hr_analytics is disjoint.
var RoleCapabilities = map[Role][]Capability{
	RoleEmployee:    employeeCapabilities,
	RoleTeamLeader:  append(append([]Capability{}, employeeCapabilities...), CapabilityTeamRead, CapabilityTeamEdit),
	RoleHRAnalytics: {CapabilityHRRead},
	RoleAdmin:       AllCapabilities,
}

// Preset is a deprecated shorthand for a role.
type Preset string

const (
	PresetReadonly Preset = "readonly"
	PresetUser     Preset = "user"
	PresetAdmin    Preset = "admin"
)

var presetRoles = map[Preset]Role{
	PresetReadonly: RoleHRAnalytics,
	PresetUser:     RoleEmployee,
	PresetAdmin:    RoleAdmin,
}

// LegacyFlags are the deprecated per-feature switches. Only enabled flags
// contribute; a disabled flag never removes a capability.
type LegacyFlags struct {
	HRReadonly bool
	UserRead   bool
	UserEdit   bool
	TeamLeader bool
	AdminRead  bool
	AdminEdit  bool
}

func (f LegacyFlags) capabilities() []Capability {
	var caps []Capability
	if f.HRReadonly {
		caps = append(caps, CapabilityHRRead)
	}
	if f.UserRead {
		caps = append(caps, CapabilityUserRead)
	}
	if f.UserEdit {
		caps = append(caps, CapabilityUserEdit)
	}
	if f.TeamLeader {
		caps = append(caps, CapabilityTeamRead, CapabilityTeamEdit)
	}
	if f.AdminRead {
		caps = append(caps, CapabilityAdminRead)
	}
	if f.AdminEdit {
		caps = append(caps, CapabilityAdminEdit)
	}
	return caps
}

func (f LegacyFlags) any() bool {
	return len(f.capabilities()) > 0
}

// Selection is the raw access configuration read at startup.
type Selection struct {
	Role   string
	Preset string
	Flags  LegacyFlags
}

// ParseRole resolves a case-insensitive role name.
func ParseRole(name string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := RoleCapabilities[role]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, name)
	}
	return role, nil
}

// ParsePreset resolves a case-insensitive legacy preset name.
func ParsePreset(name string) (Preset, error) {
	preset := Preset(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := presetRoles[preset]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return preset, nil
}
