package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSignupRoleFallsBackToSeller(t *testing.T) {
	assert.Equal(t, RoleSeller, ParseSignupRole(""))
	assert.Equal(t, RoleSeller, ParseSignupRole("superuser"))
	assert.Equal(t, RoleSeller, ParseSignupRole("Agent")) // case sensitive on purpose
	assert.Equal(t, RoleBuyer, ParseSignupRole("buyer"))
	assert.Equal(t, RoleAgent, ParseSignupRole("agent"))
}

func TestParseSignupRoleNeverMintsStaffOrAdmin(t *testing.T) {
	assert.Equal(t, RoleSeller, ParseSignupRole("admin"))
	assert.Equal(t, RoleSeller, ParseSignupRole("staff"))
	assert.False(t, ParseSignupRole("admin").IsStaff())
	assert.False(t, ParseSignupRole("admin").Can(CapManageUsers))
	assert.False(t, ParseSignupRole("staff").Can(CapBackoffice))
}

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, RoleSeller.Can(CapPostProperty))
	assert.False(t, RoleBuyer.Can(CapPostProperty))
	assert.True(t, RoleAdmin.Can(CapManageUsers))
	assert.False(t, RoleStaff.Can(CapManageUsers))
	assert.True(t, RoleStaff.Can(CapManageContent))
	assert.False(t, Role("ghost").Can(CapListProperties))
}

func TestIsStaff(t *testing.T) {
	assert.True(t, RoleAdmin.IsStaff())
	assert.True(t, RoleStaff.IsStaff())
	assert.False(t, RoleSeller.IsStaff())
	assert.False(t, RoleBuyer.IsStaff())
	assert.False(t, RoleAgent.IsStaff())
}

func TestRoleLabel(t *testing.T) {
	assert.Equal(t, "Administrator", RoleAdmin.Label())
	assert.Equal(t, "Staff Member", RoleStaff.Label())
	assert.Equal(t, "weird", Role("weird").Label())
}
