package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
)

// Directory / catalog errors
var (
	ErrMemberNotFound   = errors.New("member not found")
	ErrShiftNotFound    = errors.New("shift not found")
	ErrRoleNotFound     = errors.New("role not found")
	ErrLocationNotFound = errors.New("location not found")
	ErrDuplicateRole    = errors.New("duplicate role in shift requirements")
)

// Assignment engine errors
var (
	ErrNotEligible       = errors.New("member is not eligible for this role slot")
	ErrAlreadyAssigned   = errors.New("member already has an assignment for this shift")
	ErrCapacityExceeded  = errors.New("role requirement is already fully staffed")
	ErrRoleNotRequired   = errors.New("role is not part of the shift requirements")
	ErrInvalidAttendance = errors.New("invalid attendance transition")
)

// Leave engine errors
var (
	ErrNotAssigned      = errors.New("member has no active assignment on this shift")
	ErrDuplicatePending = errors.New("a pending leave request already exists for this shift")
	ErrLeaveNotFound    = errors.New("no pending leave request for this member and shift")
)
