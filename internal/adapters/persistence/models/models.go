package models

import (
	"time"

	"gorm.io/gorm"

	"crewshift/internal/core/domain"
)

// ============================================================
// Master Tables
// ============================================================

// Role represents the roles master table
type Role struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"size:30;uniqueIndex;not null" json:"code"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Role) TableName() string {
	return "roles"
}

// Location represents the locations master table
type Location struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"size:30;uniqueIndex;not null" json:"code"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Location) TableName() string {
	return "locations"
}

// ============================================================
// Member Directory
// ============================================================

// Member represents the members table
type Member struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Name              string         `gorm:"size:100;not null" json:"name"`
	WorksAt           uint           `gorm:"index;not null" json:"works_at"`
	FeasibleRoles     []uint         `gorm:"serializer:json" json:"feasible_roles"`
	AllowedHours      float64        `gorm:"default:0" json:"allowed_hours"`
	AllowedPaidLeaves int            `gorm:"default:0" json:"allowed_paid_leaves"`
	IsActive          bool           `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Member) TableName() string {
	return "members"
}

// ToDomain converts the row to a domain member
func (m *Member) ToDomain() *domain.Member {
	return &domain.Member{
		ID:                m.ID,
		Name:              m.Name,
		WorksAt:           m.WorksAt,
		FeasibleRoles:     m.FeasibleRoles,
		AllowedHours:      m.AllowedHours,
		AllowedPaidLeaves: m.AllowedPaidLeaves,
		IsActive:          m.IsActive,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// MemberResponse DTO (wire format used by the web client)
type MemberResponse struct {
	ID                uint    `json:"id"`
	Name              string  `json:"name"`
	WorksAt           uint    `json:"worksAt"`
	FeasibleRoles     []uint  `json:"feasibleRoles"`
	AllowedHours      float64 `json:"allowedHours"`
	AllowedPaidLeaves int     `json:"allowedPaidLeaves"`
	IsActive          bool    `json:"isActive"`
}

func (m *Member) ToResponse() *MemberResponse {
	roles := m.FeasibleRoles
	if roles == nil {
		roles = []uint{}
	}
	return &MemberResponse{
		ID:                m.ID,
		Name:              m.Name,
		WorksAt:           m.WorksAt,
		FeasibleRoles:     roles,
		AllowedHours:      m.AllowedHours,
		AllowedPaidLeaves: m.AllowedPaidLeaves,
		IsActive:          m.IsActive,
	}
}

// ============================================================
// Shift Catalog
// ============================================================

// Shift represents the shifts table. Shifts are immutable once created.
type Shift struct {
	ID           uint               `gorm:"primaryKey" json:"id"`
	Code         string             `gorm:"size:36;uniqueIndex;not null" json:"code"`
	Title        string             `gorm:"size:100;not null" json:"title"`
	Day          time.Time          `gorm:"index;not null" json:"day"`
	StartTime    string             `gorm:"size:8;not null" json:"start_time"`
	EndTime      string             `gorm:"size:8;not null" json:"end_time"`
	LocationID   uint               `gorm:"index;not null" json:"location_id"`
	Requirements []ShiftRequirement `gorm:"foreignKey:ShiftID" json:"requirements"`
	CreatedAt    time.Time          `gorm:"autoCreateTime" json:"created_at"`
}

func (Shift) TableName() string {
	return "shifts"
}

// ShiftRequirement represents required headcount for one role on one shift.
// The composite unique index backs the duplicate-role invariant.
type ShiftRequirement struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	ShiftID uint `gorm:"uniqueIndex:idx_shift_role;not null" json:"shift_id"`
	RoleID  uint `gorm:"uniqueIndex:idx_shift_role;not null" json:"role_id"`
	Count   int  `gorm:"not null" json:"count"`
}

func (ShiftRequirement) TableName() string {
	return "shift_requirements"
}

// ToDomain converts the row (with preloaded requirements) to a domain shift
func (s *Shift) ToDomain() *domain.Shift {
	reqs := make([]domain.RoleRequirement, 0, len(s.Requirements))
	for _, r := range s.Requirements {
		reqs = append(reqs, domain.RoleRequirement{RoleID: r.RoleID, Count: r.Count})
	}
	return &domain.Shift{
		ID:           s.ID,
		Code:         s.Code,
		Title:        s.Title,
		Day:          s.Day,
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		LocationID:   s.LocationID,
		Requirements: reqs,
		CreatedAt:    s.CreatedAt,
	}
}

// RequirementResponse DTO
type RequirementResponse struct {
	RoleID uint `json:"roleId"`
	Count  int  `json:"count"`
}

// ShiftResponse DTO (wire format used by the web client)
type ShiftResponse struct {
	ID           uint                  `json:"id"`
	Code         string                `json:"code"`
	Title        string                `json:"title"`
	Day          string                `json:"day"` // YYYY-MM-DD
	StartTime    string                `json:"startTime"`
	EndTime      string                `json:"endTime"`
	LocationID   uint                  `json:"locationId"`
	Requirements []RequirementResponse `json:"requirements"`
}

func (s *Shift) ToResponse() *ShiftResponse {
	reqs := make([]RequirementResponse, 0, len(s.Requirements))
	for _, r := range s.Requirements {
		reqs = append(reqs, RequirementResponse{RoleID: r.RoleID, Count: r.Count})
	}
	return &ShiftResponse{
		ID:           s.ID,
		Code:         s.Code,
		Title:        s.Title,
		Day:          s.Day.Format("2006-01-02"),
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		LocationID:   s.LocationID,
		Requirements: reqs,
	}
}

// ============================================================
// Assignments
// ============================================================

// Assignment represents the shift_assignments table.
// At most one row exists per (shift, member).
type Assignment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ShiftID    uint      `gorm:"uniqueIndex:idx_shift_member;index;not null" json:"shift_id"`
	MemberID   uint      `gorm:"uniqueIndex:idx_shift_member;index;not null" json:"member_id"`
	RoleID     uint      `gorm:"index;not null" json:"role_id"`
	Attendance string    `gorm:"size:20;not null;default:'SCHEDULED'" json:"attendance"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Assignment) TableName() string {
	return "shift_assignments"
}

// IsActive reports whether the row still counts against role capacity
func (a *Assignment) IsActive() bool {
	return domain.Attendance(a.Attendance).IsActive()
}

// AssignmentResponse DTO (wire format used by the web client)
type AssignmentResponse struct {
	ShiftID    uint   `json:"shiftId"`
	MemberID   uint   `json:"memberId"`
	RoleID     uint   `json:"roleId"`
	Attendance string `json:"attendance"`
}

func (a *Assignment) ToResponse() *AssignmentResponse {
	return &AssignmentResponse{
		ShiftID:    a.ShiftID,
		MemberID:   a.MemberID,
		RoleID:     a.RoleID,
		Attendance: a.Attendance,
	}
}

// AssignmentResponses maps a batch of rows to DTOs (never nil)
func AssignmentResponses(rows []Assignment) []*AssignmentResponse {
	out := make([]*AssignmentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToResponse())
	}
	return out
}

// ============================================================
// Leave Requests
// ============================================================

// LeaveRequest represents the leave_requests table
type LeaveRequest struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Code         string     `gorm:"size:36;uniqueIndex;not null" json:"code"`
	MemberID     uint       `gorm:"index;not null" json:"member_id"`
	ShiftID      uint       `gorm:"index;not null" json:"shift_id"`
	Approval     string     `gorm:"size:20;not null;default:'PENDING'" json:"approval"`
	Reason       string     `gorm:"type:text" json:"reason"`
	ShiftDay     time.Time  `gorm:"not null" json:"shift_day"`
	DecisionNote string     `gorm:"type:text" json:"decision_note"`
	DecidedAt    *time.Time `json:"decided_at"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// IsPending reports whether the request is still undecided
func (lr *LeaveRequest) IsPending() bool {
	return lr.Approval == string(domain.ApprovalPending)
}

// LeaveRequestResponse DTO (wire format used by the web client)
type LeaveRequestResponse struct {
	MemberID uint   `json:"memberId"`
	ShiftID  uint   `json:"shiftId"`
	Approval string `json:"approval"`
	ShiftDay string `json:"shiftDay"` // YYYY-MM-DD
	Reason   string `json:"reason,omitempty"`
}

func (lr *LeaveRequest) ToResponse() *LeaveRequestResponse {
	return &LeaveRequestResponse{
		MemberID: lr.MemberID,
		ShiftID:  lr.ShiftID,
		Approval: lr.Approval,
		ShiftDay: lr.ShiftDay.Format("2006-01-02"),
		Reason:   lr.Reason,
	}
}

// ============================================================
// Notifications
// ============================================================

// Notification represents the notifications table.
// NotifSeq is a per-member sequence starting at 1.
type Notification struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	MemberID  uint       `gorm:"uniqueIndex:idx_member_seq;index;not null" json:"member_id"`
	NotifSeq  int        `gorm:"uniqueIndex:idx_member_seq;not null" json:"notif_seq"`
	Title     string     `gorm:"size:150;not null" json:"title"`
	Message   string     `gorm:"type:text" json:"message"`
	Timestamp time.Time  `gorm:"autoCreateTime" json:"timestamp"`
	ViewTime  *time.Time `json:"view_time"`
}

func (Notification) TableName() string {
	return "notifications"
}

// NotificationResponse DTO (wire format used by the web client)
type NotificationResponse struct {
	MemberID  uint       `json:"memberId"`
	NotifSeq  int        `json:"notifSeq"`
	Timestamp time.Time  `json:"timestamp"`
	ViewTime  *time.Time `json:"viewTime"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
}

func (n *Notification) ToResponse() *NotificationResponse {
	return &NotificationResponse{
		MemberID:  n.MemberID,
		NotifSeq:  n.NotifSeq,
		Timestamp: n.Timestamp,
		ViewTime:  n.ViewTime,
		Title:     n.Title,
		Message:   n.Message,
	}
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Masters
		&Role{},
		&Location{},
		// Directory & catalog
		&Member{},
		&Shift{},
		&ShiftRequirement{},
		// Engine tables
		&Assignment{},
		&LeaveRequest{},
		&Notification{},
	)
}
