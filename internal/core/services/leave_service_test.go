package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crewshift/internal/config"
	"crewshift/internal/core/domain"
)

// ============================================================
// Submit
// ============================================================

func TestSubmitLeaveRequest(t *testing.T) {
	env := newTestEnv(t, config.SchedulingConfig{})

	alice := env.createMember(t, "Alice", locDowntown, []uint{roleCashier}, 40, 3)
	shift := env.createShift(t, "Morning", testDay, "09:00:00", "17:00:00", locDowntown,
		req(roleCashier, 1))
	_, err := env.assignSvc.ManualAssign(shift.ID, alice.ID, roleCashier)
	require.NoError(t, err)

	request, err := env.leaveSvc.Submit(alice.ID, shift.ID, "family emergency")
	require.NoError(t, err)
	assert.Equal(t, string(domain.ApprovalPending), request.Approval)
	assert.Equal(t, "family emergency", request.Reason)
	assert.NotEmpty(t, request.Code)
	// The shift day is denormalized onto the request for listing
	assert.Equal(t, testDay.Format("2006-01-02"), request.ShiftDay.Format("2006-01-02"))
}

func TestSubmitRequiresLiveAssignment(t *testing.T) {
	env := newTestEnv(t, config.SchedulingConfig{})

	alice := env.createMember(t, "Alice", locDowntown, []uint{roleCashier}, 40, 3)
	shift := env.createShift(t, "Morning", testDay, "09:00:00", "17:00:00", locDowntown,
		req(roleCashier, 1))

	_, err := env.leaveSvc.Submit(alice.ID, shift.ID, "")
	assert.ErrorIs(t, err, domain.ErrNotAssigned)

	_, err = env.leaveSvc.Submit(999, shift.ID, "")
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)

	_, err = env.leaveSvc.Submit(alice.ID, 999, "")
	assert.ErrorIs(t, err, domain.ErrShiftNotFound)
}

func TestSubmitRejectsDuplicatePending(t *testing.T) {
	env := newTestEnv(t, config.SchedulingConfig{})

	alice := env.createMember(t, "Alice", locDowntown, []uint{roleCashier}, 40, 3)
	shift := env.createShift(t, "Morning", testDay, "09:00:00", "17:00:00", locDowntown,
		req(roleCashier, 1))
	_, err := env.assignSvc.ManualAssign(shift.ID, alice.ID, roleCashier)
	require.NoError(t, err)

	_, err = env.leaveSvc.Submit(alice.ID, shift.ID, "first")
	require.NoError(t, err)

	_, err = env.leaveSvc.Submit(alice.ID, shift.ID, "second")
	assert.ErrorIs(t, err, domain.ErrDuplicatePending)
}

// ============================================================
// Approve
// ============================================================

func TestApproveBackfillsFreedSlot(t *testing.T) {
	env := newTestEnv(t, config.SchedulingConfig{})

	alice := env.createMember(t, "Alice", locDowntown, []uint{roleCashier}, 40, 3)
	bob := env.createMember(t, "Bob", locDowntown, []uint{roleCashier}, 40, 3)
	shift := env.createShift(t, "Morning", testDay, "09:00:00", "17:00:00", locDowntown,
		req(roleCashier, 1))
	_, err := env.assignSvc.ManualAssign(shift.ID, alice.ID, roleCashier)
	require.NoError(t, err)
	_, err = env.leaveSvc.Submit(alice.ID, shift.ID, "sick")
	require.NoError(t, err)

	result, err := env.leaveSvc.Handle(alice.ID, shift.ID, true, "get well")
	require.NoError(t, err)
	assert.Equal(t, string(domain.ApprovalApproved), result.Request.Approval)
	assert.Equal(t, "get well", result.Request.DecisionNote)
	require.NotNil(t, result.Request.DecidedAt)

	// Exactly one replacement, same role, never the leaver
	require.Len(t, result.Reassignments, 1)
	assert.Equal(t, bob.ID, result.Reassignments[0].MemberID)
	assert.Equal(t, roleCashier, result.Reassignments[0].RoleID)

	// The leaver's row persists as LEAVE for audit
	rows := env.assignmentsOn(t, shift.ID)
	require.Len(t, rows, 2)
	assert.Equal(t, string(domain.AttendanceLeave), rows[0].Attendance)
	assert.Equal(t, alice.ID, rows[0].MemberID)
	assert.Equal(t, string(domain.AttendanceScheduled), rows[1].Attendance)

	// One unit of paid leave budget is spent
	assert.Equal(t, 2, env.reloadMember(t, alice.ID).AllowedPaidLeaves)
}

func TestApproveWithoutReplacementLeavesSlotOpen(t *testing.T) {
	env := newTestEnv(t, config.SchedulingConfig{})

	alice := env.createMember(t, "Alice", locDowntown, []uint{roleCashier}, 40, 3)
	shift := env.createShift(t, "Morning", testDay, "09:00:00", "17:00:00", locDowntown,
		req(roleCashier, 1))
	_, err := env.assignSvc.ManualAssign(shift.ID, alice.ID, roleCashier)
	require.NoError(t, err)
	_, err = env.leaveSvc.Submit(alice.ID, shift.ID, "sick")
	require.NoError(t, err)

	// Nobody else works downtown: approval still succeeds, zero
	// reassignments, the shift stays understaffed
	result, err := env.leaveSvc.Handle(alice.ID, shift.ID, true, "")
	require.NoError(t, err)
	assert.Equal(t, string(domain.ApprovalApproved), result.Request.Approval)
	assert.Empty(t, result.Reassignments)

	rows := env.assignmentsOn(t, shift.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, string(domain.AttendanceLeave), rows[0].Attendance)
}

func TestApproveClampsLeaveBudgetAtZero(t *testing.T) {
	env := newTestEnv(t, config.SchedulingConfig{})

	alice := env.createMember(t, "Alice", locDowntown, []uint{roleCashier}, 40, 0)
	shift := env.createShift(t, "Morning", testDay, "09:00:00", "17:00:00", locDowntown,
		req(roleCashier, 1))
	_, err := env.assignSvc.ManualAssign(shift.ID, alice.ID, roleCashier)
	require.NoError(t, err)
	_, err = env.leaveSvc.Submit(alice.ID, shift.ID, "")
	require.NoError(t, err)

	_, err = env.leaveSvc.Handle(alice.ID, shift.ID, true, "")
	require.NoError(t, err)
	assert.Equal(t, 0, env.reloadMember(t, alice.ID).AllowedPaidLeaves)
}

// ============================================================
// Reject
// ============================================================

func TestRejectMutatesNothing(t *testing.T) {
	env := newTestEnv(t, config.SchedulingConfig{})

	alice := env.createMember(t, "Alice", locDowntown, []uint{roleCashier}, 40, 3)
	env.createMember(t, "Bob", locDowntown, []uint{roleCashier}, 40, 3)
	shift := env.createShift(t, "Morning", testDay, "09:00:00", "17:00:00", locDowntown,
		req(roleCashier, 1))
	_, err := env.assignSvc.ManualAssign(shift.ID, alice.ID, roleCashier)
	require.NoError(t, err)
	_, err = env.leaveSvc.Submit(alice.ID, shift.ID, "")
	require.NoError(t, err)

	result, err := env.leaveSvc.Handle(alice.ID, shift.ID, false, "short staffed")
	require.NoError(t, err)
	assert.Equal(t, string(domain.ApprovalRejected), result.Request.Approval)
	assert.Equal(t, "short staffed", result.Request.DecisionNote)
	assert.Empty(t, result.Reassignments)

	// Assignment and budget are untouched
	rows := env.assignmentsOn(t, shift.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, string(domain.AttendanceScheduled), rows[0].Attendance)
	assert.Equal(t, alice.ID, rows[0].MemberID)
	assert.Equal(t, 3, env.reloadMember(t, alice.ID).AllowedPaidLeaves)

	// The decided request no longer blocks a fresh submission
	_, err = env.leaveSvc.Submit(alice.ID, shift.ID, "retry")
	assert.NoError(t, err)
}

// An assignment already marked ABSENT must never transition to LEAVE,
// and the paid leave budget must stay untouched
func TestApproveRejectsAbsentAssignment(t *testing.T) {
	env := newTestEnv(t, config.SchedulingConfig{})

	alice := env.createMember(t, "Alice", locDowntown, []uint{roleCashier}, 40, 3)
	shift := env.createShift(t, "Morning", testDay, "09:00:00", "17:00:00", locDowntown,
		req(roleCashier, 1))
	_, err := env.assignSvc.ManualAssign(shift.ID, alice.ID, roleCashier)
	require.NoError(t, err)
	_, err = env.leaveSvc.Submit(alice.ID, shift.ID, "")
	require.NoError(t, err)

	// Alice no-shows before the request is decided
	_, err = env.assignSvc.MarkAttendance(shift.ID, alice.ID, domain.AttendanceAbsent)
	require.NoError(t, err)

	_, err = env.leaveSvc.Handle(alice.ID, shift.ID, true, "")
	assert.ErrorIs(t, err, domain.ErrNotAssigned)

	rows := env.assignmentsOn(t, shift.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, string(domain.AttendanceAbsent), rows[0].Attendance)
	assert.Equal(t, 3, env.reloadMember(t, alice.ID).AllowedPaidLeaves)
}

// A request may be decided exactly once, regardless of decision order
func TestHandleDecidesRequestOnlyOnce(t *testing.T) {
	env := newTestEnv(t, config.SchedulingConfig{})

	alice := env.createMember(t, "Alice", locDowntown, []uint{roleCashier}, 40, 3)
	bob := env.createMember(t, "Bob", locDowntown, []uint{roleCashier}, 40, 3)
	shift := env.createShift(t, "Morning", testDay, "09:00:00", "17:00:00", locDowntown,
		req(roleCashier, 2))
	_, err := env.assignSvc.ManualAssign(shift.ID, alice.ID, roleCashier)
	require.NoError(t, err)
	_, err = env.assignSvc.ManualAssign(shift.ID, bob.ID, roleCashier)
	require.NoError(t, err)

	_, err = env.leaveSvc.Submit(alice.ID, shift.ID, "")
	require.NoError(t, err)
	_, err = env.leaveSvc.Handle(alice.ID, shift.ID, true, "")
	require.NoError(t, err)

	// The approved request is gone from the pending set
	_, err = env.leaveSvc.Handle(alice.ID, shift.ID, false, "")
	assert.ErrorIs(t, err, domain.ErrLeaveNotFound)

	// Same the other way round
	_, err = env.leaveSvc.Submit(bob.ID, shift.ID, "")
	require.NoError(t, err)
	_, err = env.leaveSvc.Handle(bob.ID, shift.ID, false, "")
	require.NoError(t, err)
	_, err = env.leaveSvc.Handle(bob.ID, shift.ID, true, "")
	assert.ErrorIs(t, err, domain.ErrLeaveNotFound)
	assert.Equal(t, 3, env.reloadMember(t, bob.ID).AllowedPaidLeaves)
}

func TestHandleWithoutPendingRequest(t *testing.T) {
	env := newTestEnv(t, config.SchedulingConfig{})

	alice := env.createMember(t, "Alice", locDowntown, []uint{roleCashier}, 40, 3)
	shift := env.createShift(t, "Morning", testDay, "09:00:00", "17:00:00", locDowntown,
		req(roleCashier, 1))

	_, err := env.leaveSvc.Handle(alice.ID, shift.ID, true, "")
	assert.ErrorIs(t, err, domain.ErrLeaveNotFound)

	_, err = env.leaveSvc.Handle(alice.ID, shift.ID, false, "")
	assert.ErrorIs(t, err, domain.ErrLeaveNotFound)
}

// ============================================================
// Queries
// ============================================================

func TestPendingForManagerFiltersByLocation(t *testing.T) {
	env := newTestEnv(t, config.SchedulingConfig{})

	alice := env.createMember(t, "Alice", locDowntown, []uint{roleCashier}, 40, 3)
	rita := env.createMember(t, "Rita", locRiverside, []uint{roleCashier}, 40, 3)

	downtown := env.createShift(t, "Morning", testDay, "09:00:00", "17:00:00", locDowntown,
		req(roleCashier, 1))
	riverside := env.createShift(t, "Morning", testDay, "09:00:00", "17:00:00", locRiverside,
		req(roleCashier, 1))

	_, err := env.assignSvc.ManualAssign(downtown.ID, alice.ID, roleCashier)
	require.NoError(t, err)
	_, err = env.assignSvc.ManualAssign(riverside.ID, rita.ID, roleCashier)
	require.NoError(t, err)

	_, err = env.leaveSvc.Submit(alice.ID, downtown.ID, "")
	require.NoError(t, err)
	_, err = env.leaveSvc.Submit(rita.ID, riverside.ID, "")
	require.NoError(t, err)

	pending, err := env.leaveSvc.PendingForManager(locDowntown)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, alice.ID, pending[0].MemberID)
}

func TestListForMember(t *testing.T) {
	env := newTestEnv(t, config.SchedulingConfig{})

	alice := env.createMember(t, "Alice", locDowntown, []uint{roleCashier}, 40, 3)
	shift := env.createShift(t, "Morning", testDay, "09:00:00", "17:00:00", locDowntown,
		req(roleCashier, 1))
	_, err := env.assignSvc.ManualAssign(shift.ID, alice.ID, roleCashier)
	require.NoError(t, err)
	_, err = env.leaveSvc.Submit(alice.ID, shift.ID, "")
	require.NoError(t, err)

	history, err := env.leaveSvc.ListForMember(alice.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	_, err = env.leaveSvc.ListForMember(999)
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

// TestApproveRevokedAssignment covers the race where the assignment was
// already moved off the roster between submit and decision
func TestApproveRevokedAssignment(t *testing.T) {
	env := newTestEnv(t, config.SchedulingConfig{})

	alice := env.createMember(t, "Alice", locDowntown, []uint{roleCashier}, 40, 3)
	shift := env.createShift(t, "Morning", testDay, "09:00:00", "17:00:00", locDowntown,
		req(roleCashier, 1))
	assignment, err := env.assignSvc.ManualAssign(shift.ID, alice.ID, roleCashier)
	require.NoError(t, err)
	_, err = env.leaveSvc.Submit(alice.ID, shift.ID, "")
	require.NoError(t, err)

	// The slot was already released by a different decision path
	require.NoError(t, env.assignRepo.UpdateAttendance(assignment.ID, domain.AttendanceLeave))

	_, err = env.leaveSvc.Handle(alice.ID, shift.ID, true, "")
	assert.ErrorIs(t, err, domain.ErrNotAssigned)
}
