package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crewshift/internal/config"
	"crewshift/internal/core/domain"
)

func TestMemberLifecycle(t *testing.T) {
	env := newTestEnv(t, config.SchedulingConfig{})

	member, err := env.memberSvc.Create(&MemberInput{
		Name:              "Alice",
		WorksAt:           locDowntown,
		FeasibleRoles:     []uint{roleCashier, roleServer},
		AllowedHours:      40,
		AllowedPaidLeaves: 3,
	})
	require.NoError(t, err)
	assert.True(t, member.IsActive)

	loaded, err := env.memberSvc.Get(member.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{roleCashier, roleServer}, loaded.FeasibleRoles)

	updated, err := env.memberSvc.Update(member.ID, &MemberInput{
		Name:          "Alice B",
		WorksAt:       locRiverside,
		FeasibleRoles: []uint{roleCook},
	})
	require.NoError(t, err)
	assert.Equal(t, locRiverside, updated.WorksAt)
	assert.Equal(t, []uint{roleCook}, updated.FeasibleRoles)

	require.NoError(t, env.memberSvc.Delete(member.ID))
	_, err = env.memberSvc.Get(member.ID)
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestMemberMasterChecks(t *testing.T) {
	env := newTestEnv(t, config.SchedulingConfig{})

	_, err := env.memberSvc.Create(&MemberInput{Name: "Ghost", WorksAt: 999})
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)

	_, err = env.memberSvc.Create(&MemberInput{
		Name:          "Ghost",
		WorksAt:       locDowntown,
		FeasibleRoles: []uint{999},
	})
	assert.ErrorIs(t, err, domain.ErrRoleNotFound)

	_, err = env.memberSvc.Get(999)
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)

	err = env.memberSvc.Delete(999)
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

// Soft-deleted members must vanish from the candidate pool as well
func TestDeletedMemberIsNotACandidate(t *testing.T) {
	env := newTestEnv(t, config.SchedulingConfig{})

	alice := env.createMember(t, "Alice", locDowntown, []uint{roleCashier}, 40, 3)
	shift := env.createShift(t, "Morning", testDay, "09:00:00", "17:00:00", locDowntown,
		req(roleCashier, 1))

	require.NoError(t, env.memberSvc.Delete(alice.ID))

	created, err := env.assignSvc.AutoAssign(shift.ID)
	require.NoError(t, err)
	assert.Empty(t, created)
}
