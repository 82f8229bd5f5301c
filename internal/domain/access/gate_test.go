package access

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Roles(t *testing.T) {
	cases := []struct {
		role string
		want []Capability
	}{
		{"employee", []Capability{CapabilityUserRead, CapabilityUserEdit}},
		{"team_leader", []Capability{CapabilityUserRead, CapabilityUserEdit, CapabilityTeamRead, CapabilityTeamEdit}},
		{"hr_analytics", []Capability{CapabilityHRRead}},
		{"admin", AllCapabilities},
	}
	for _, c := range cases {
		t.Run(c.role, func(t *testing.T) {
			gate, err := Resolve(Selection{Role: c.role})
			require.NoError(t, err)
			assert.Equal(t, Role(c.role), gate.Role())
			assert.Equal(t, c.want, gate.Capabilities())
		})
	}
}

func TestResolve_RoleNesting(t *testing.T) {
	employee := GateForRole(RoleEmployee)
	leader := GateForRole(RoleTeamLeader)
	admin := GateForRole(RoleAdmin)
	hr := GateForRole(RoleHRAnalytics)

	for _, c := range employee.Capabilities() {
		assert.True(t, leader.IsEnabled(c), "team_leader should include %s", c)
	}
	for _, c := range leader.Capabilities() {
		assert.True(t, admin.IsEnabled(c), "admin should include %s", c)
	}
	for _, c := range hr.Capabilities() {
		assert.False(t, employee.IsEnabled(c), "hr_analytics should be disjoint from employee")
		assert.False(t, leader.IsEnabled(c), "hr_analytics should be disjoint from team_leader")
	}
}

func TestResolve_CaseInsensitive(t *testing.T) {
	gate, err := Resolve(Selection{Role: "Team_Leader"})
	require.NoError(t, err)
	assert.Equal(t, RoleTeamLeader, gate.Role())

	gate, err = Resolve(Selection{Role: "EMPLOYEE"})
	require.NoError(t, err)
	assert.Equal(t, RoleEmployee, gate.Role())
}

func TestResolve_DefaultIsEmployee(t *testing.T) {
	gate, err := Resolve(Selection{})
	require.NoError(t, err)
	assert.Equal(t, RoleEmployee, gate.Role())
	assert.True(t, gate.IsEnabled(CapabilityUserRead))
	assert.True(t, gate.IsEnabled(CapabilityUserEdit))
	assert.False(t, gate.IsEnabled(CapabilityHRRead))
	assert.False(t, gate.IsEnabled(CapabilityTeamEdit))
}

func TestResolve_LegacyPreset(t *testing.T) {
	gate, err := Resolve(Selection{Preset: "readonly"})
	require.NoError(t, err)
	assert.Equal(t, RoleHRAnalytics, gate.Role())
	assert.Equal(t, []Capability{CapabilityHRRead}, gate.Capabilities())

	gate, err = Resolve(Selection{Preset: "user"})
	require.NoError(t, err)
	assert.Equal(t, RoleEmployee, gate.Role())
	assert.False(t, gate.IsEnabled(CapabilityHRRead))
}

func TestResolve_LegacyFlagsOnly(t *testing.T) {
	gate, err := Resolve(Selection{Flags: LegacyFlags{HRReadonly: true, TeamLeader: true}})
	require.NoError(t, err)
	assert.Equal(t, RoleCustom, gate.Role())
	assert.Equal(t, []Capability{CapabilityHRRead, CapabilityTeamRead, CapabilityTeamEdit}, gate.Capabilities())
	assert.False(t, gate.IsEnabled(CapabilityUserRead))
}

func TestResolve_RoleAndFlagsUnion(t *testing.T) {
	gate, err := Resolve(Selection{
		Role:  "hr_analytics",
		Flags: LegacyFlags{UserEdit: true},
	})
	require.NoError(t, err)
	assert.Equal(t, RoleHRAnalytics, gate.Role())
	assert.True(t, gate.IsEnabled(CapabilityHRRead))
	assert.True(t, gate.IsEnabled(CapabilityUserEdit))
	assert.False(t, gate.IsEnabled(CapabilityUserRead))
}

func TestResolve_RoleAndPresetUnion(t *testing.T) {
	gate, err := Resolve(Selection{Role: "employee", Preset: "readonly"})
	require.NoError(t, err)
	assert.Equal(t, RoleEmployee, gate.Role())
	assert.Equal(t, []Capability{CapabilityHRRead, CapabilityUserRead, CapabilityUserEdit}, gate.Capabilities())
}

func TestResolve_UnknownNames(t *testing.T) {
	_, err := Resolve(Selection{Role: "superuser"})
	assert.ErrorIs(t, err, ErrUnknownRole)

	_, err = Resolve(Selection{Preset: "everything"})
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestGate_Require(t *testing.T) {
	gate := GateForRole(RoleHRAnalytics)

	assert.NoError(t, gate.Require(CapabilityHRRead, "get_hr_summary"))

	err := gate.Require(CapabilityUserEdit, "add_my_entry")
	var denied *CapabilityDeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, CapabilityUserEdit, denied.Capability)
	assert.Equal(t, "add_my_entry", denied.Operation)
}

func TestGate_ZeroValueDeniesEverything(t *testing.T) {
	var gate Gate
	for _, c := range AllCapabilities {
		assert.False(t, gate.IsEnabled(c))
	}
	assert.Empty(t, gate.Capabilities())
}
