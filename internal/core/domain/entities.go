package domain

import "time"

// Attendance represents the state of an assignment slot
type Attendance string

const (
	AttendanceScheduled Attendance = "SCHEDULED"
	AttendancePresent   Attendance = "PRESENT"
	AttendanceAbsent    Attendance = "ABSENT"
	AttendanceLeave     Attendance = "LEAVE"
)

// IsActive reports whether the assignment still counts against role capacity.
// LEAVE assignments persist for audit but free their slot.
func (a Attendance) IsActive() bool {
	return a != AttendanceLeave
}

// Approval represents the state of a leave request
type Approval string

const (
	ApprovalPending  Approval = "PENDING"
	ApprovalApproved Approval = "APPROVED"
	ApprovalRejected Approval = "REJECTED"
)

// Member represents a worker in the domain layer
type Member struct {
	ID                uint
	Name              string
	WorksAt           uint // location ID
	FeasibleRoles     []uint
	AllowedHours      float64
	AllowedPaidLeaves int
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CanWork reports whether the member is feasible for a role
func (m *Member) CanWork(roleID uint) bool {
	for _, r := range m.FeasibleRoles {
		if r == roleID {
			return true
		}
	}
	return false
}

// RoleRequirement is one unit of required headcount on a shift
type RoleRequirement struct {
	RoleID uint
	Count  int
}

// Shift represents a published shift in the domain layer.
// Shifts are immutable once created.
type Shift struct {
	ID           uint
	Code         string
	Title        string
	Day          time.Time
	StartTime    string // HH:MM:SS
	EndTime      string // HH:MM:SS
	LocationID   uint
	Requirements []RoleRequirement
	CreatedAt    time.Time
}

// RequiredFor returns the required headcount for a role
// (0 if the role is not part of the shift's requirements)
func (s *Shift) RequiredFor(roleID uint) int {
	for _, req := range s.Requirements {
		if req.RoleID == roleID {
			return req.Count
		}
	}
	return 0
}

// Assignment represents one member filling one role slot on one shift
type Assignment struct {
	ID         uint
	ShiftID    uint
	MemberID   uint
	RoleID     uint
	Attendance Attendance
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LeaveRequest represents a member's request to be released from a shift
type LeaveRequest struct {
	ID           uint
	Code         string
	MemberID     uint
	ShiftID      uint
	Approval     Approval
	Reason       string
	ShiftDay     time.Time
	DecisionNote string
	DecidedAt    *time.Time
	CreatedAt    time.Time
}

// Notification represents an in-app notification record
type Notification struct {
	MemberID  uint
	NotifSeq  int
	Timestamp time.Time
	ViewTime  *time.Time
	Title     string
	Message   string
}
