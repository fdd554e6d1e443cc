package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crewshift/internal/config"
	"crewshift/internal/core/domain"
)

func TestNotificationSequencePerMember(t *testing.T) {
	env := newTestEnv(t, config.SchedulingConfig{})

	alice := env.createMember(t, "Alice", locDowntown, []uint{roleCashier}, 40, 3)
	bob := env.createMember(t, "Bob", locDowntown, []uint{roleCashier}, 40, 3)

	morning := env.createShift(t, "Morning", testDay, "09:00:00", "13:00:00", locDowntown,
		req(roleCashier, 2))
	evening := env.createShift(t, "Evening", testDay, "16:00:00", "20:00:00", locDowntown,
		req(roleCashier, 1))

	_, err := env.assignSvc.AutoAssign(morning.ID)
	require.NoError(t, err)
	_, err = env.assignSvc.AutoAssign(evening.ID)
	require.NoError(t, err)

	// Alice got both slots: her sequence runs 1, 2. Bob only the first.
	aliceNotifs, err := env.notifySvc.ListForMember(alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceNotifs, 2)
	seqs := []int{aliceNotifs[0].NotifSeq, aliceNotifs[1].NotifSeq}
	assert.ElementsMatch(t, []int{1, 2}, seqs)

	bobNotifs, err := env.notifySvc.ListForMember(bob.ID)
	require.NoError(t, err)
	require.Len(t, bobNotifs, 1)
	assert.Equal(t, 1, bobNotifs[0].NotifSeq)
}

func TestMarkViewedStampsOnce(t *testing.T) {
	env := newTestEnv(t, config.SchedulingConfig{})

	alice := env.createMember(t, "Alice", locDowntown, []uint{roleCashier}, 40, 3)
	shift := env.createShift(t, "Morning", testDay, "09:00:00", "17:00:00", locDowntown,
		req(roleCashier, 1))
	_, err := env.assignSvc.ManualAssign(shift.ID, alice.ID, roleCashier)
	require.NoError(t, err)

	viewed, err := env.notifySvc.MarkViewed(alice.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, viewed.ViewTime)
	first := *viewed.ViewTime

	// A second view keeps the original timestamp
	viewed, err = env.notifySvc.MarkViewed(alice.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, viewed.ViewTime)
	assert.Equal(t, first, *viewed.ViewTime)

	_, err = env.notifySvc.MarkViewed(alice.ID, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNotifyShiftAssignmentsSkipsLeaveRows(t *testing.T) {
	env := newTestEnv(t, config.SchedulingConfig{})

	alice := env.createMember(t, "Alice", locDowntown, []uint{roleCashier}, 40, 3)
	bob := env.createMember(t, "Bob", locDowntown, []uint{roleCashier}, 40, 3)
	shift := env.createShift(t, "Morning", testDay, "09:00:00", "17:00:00", locDowntown,
		req(roleCashier, 2))

	_, err := env.assignSvc.AutoAssign(shift.ID)
	require.NoError(t, err)

	// Alice goes on leave; only Bob is still on the roster
	_, err = env.leaveSvc.Submit(alice.ID, shift.ID, "")
	require.NoError(t, err)
	_, err = env.leaveSvc.Handle(alice.ID, shift.ID, true, "")
	require.NoError(t, err)

	created, err := env.notifySvc.NotifyShiftAssignments(shift.ID)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, bob.ID, created[0].MemberID)

	_, err = env.notifySvc.NotifyShiftAssignments(999)
	assert.ErrorIs(t, err, domain.ErrShiftNotFound)
}
