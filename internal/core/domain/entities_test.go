package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttendanceIsActive(t *testing.T) {
	assert.True(t, AttendanceScheduled.IsActive())
	assert.True(t, AttendancePresent.IsActive())
	assert.True(t, AttendanceAbsent.IsActive())
	assert.False(t, AttendanceLeave.IsActive())
}

func TestMemberCanWork(t *testing.T) {
	member := &Member{FeasibleRoles: []uint{1, 3}}
	assert.True(t, member.CanWork(1))
	assert.True(t, member.CanWork(3))
	assert.False(t, member.CanWork(2))

	none := &Member{}
	assert.False(t, none.CanWork(1))
}

func TestShiftRequiredFor(t *testing.T) {
	shift := &Shift{Requirements: []RoleRequirement{
		{RoleID: 1, Count: 2},
		{RoleID: 2, Count: 1},
	}}
	assert.Equal(t, 2, shift.RequiredFor(1))
	assert.Equal(t, 1, shift.RequiredFor(2))
	assert.Equal(t, 0, shift.RequiredFor(9))
}
