package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crewshift/internal/config"
)

func TestCoverageReportsUnderstaffedShifts(t *testing.T) {
	env := newTestEnv(t, config.SchedulingConfig{})

	env.createMember(t, "Alice", locDowntown, []uint{roleCashier}, 40, 3)
	shift := env.createShift(t, "Morning", testDay, "09:00:00", "17:00:00", locDowntown,
		req(roleCashier, 1), req(roleCook, 1))

	// Only the cashier slot can be filled; the cook slot stays open
	_, err := env.assignSvc.AutoAssign(shift.ID)
	require.NoError(t, err)

	coverage, err := env.dashSvc.Coverage(testDay)
	require.NoError(t, err)
	require.Len(t, coverage, 1)

	entry := coverage[0]
	assert.Equal(t, shift.ID, entry.ShiftID)
	assert.True(t, entry.Understaffed)
	require.Len(t, entry.Roles, 2)
	assert.Equal(t, RoleCoverage{RoleID: roleCashier, Required: 1, Active: 1}, entry.Roles[0])
	assert.Equal(t, RoleCoverage{RoleID: roleCook, Required: 1, Active: 0}, entry.Roles[1])
}

func TestCoverageFullyStaffed(t *testing.T) {
	env := newTestEnv(t, config.SchedulingConfig{})

	env.createMember(t, "Alice", locDowntown, []uint{roleCashier}, 40, 3)
	shift := env.createShift(t, "Morning", testDay, "09:00:00", "17:00:00", locDowntown,
		req(roleCashier, 1))
	_, err := env.assignSvc.AutoAssign(shift.ID)
	require.NoError(t, err)

	coverage, err := env.dashSvc.Coverage(testDay)
	require.NoError(t, err)
	require.Len(t, coverage, 1)
	assert.Equal(t, shift.ID, coverage[0].ShiftID)
	assert.False(t, coverage[0].Understaffed)
}
