package repositories

import (
	"time"

	"crewshift/internal/adapters/persistence/models"
	"crewshift/internal/core/domain"

	"gorm.io/gorm"
)

// AssignmentRepository handles shift assignment database operations
type AssignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *AssignmentRepository) WithTx(tx *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: tx}
}

// Create inserts a new assignment
func (r *AssignmentRepository) Create(assignment *models.Assignment) error {
	return r.db.Create(assignment).Error
}

// GetByShiftAndMember returns the assignment for a (shift, member) pair,
// or nil when none exists
func (r *AssignmentRepository) GetByShiftAndMember(shiftID, memberID uint) (*models.Assignment, error) {
	var assignment models.Assignment
	err := r.db.
		Where("shift_id = ? AND member_id = ?", shiftID, memberID).
		First(&assignment).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ListByShift returns every assignment on a shift, LEAVE rows included
func (r *AssignmentRepository) ListByShift(shiftID uint) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := r.db.
		Where("shift_id = ?", shiftID).
		Order("id ASC").
		Find(&assignments).Error
	return assignments, err
}

// ListActiveByShift returns assignments that still count against capacity
func (r *AssignmentRepository) ListActiveByShift(shiftID uint) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := r.db.
		Where("shift_id = ? AND attendance <> ?", shiftID, string(domain.AttendanceLeave)).
		Order("id ASC").
		Find(&assignments).Error
	return assignments, err
}

// CountActive returns the number of active assignments for a role on a shift
func (r *AssignmentRepository) CountActive(shiftID, roleID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Assignment{}).
		Where("shift_id = ? AND role_id = ? AND attendance <> ?",
			shiftID, roleID, string(domain.AttendanceLeave)).
		Count(&count).Error
	return count, err
}

// ListActiveShiftsForMemberOnDay returns the shifts a member is actively
// assigned to on a given day (used for overlap and hours checks)
func (r *AssignmentRepository) ListActiveShiftsForMemberOnDay(memberID uint, day time.Time) ([]models.Shift, error) {
	var shifts []models.Shift
	err := r.db.Model(&models.Shift{}).
		Joins("JOIN shift_assignments ON shift_assignments.shift_id = shifts.id").
		Where("shift_assignments.member_id = ? AND shift_assignments.attendance <> ? AND shifts.day = ?",
			memberID, string(domain.AttendanceLeave), day).
		Find(&shifts).Error
	return shifts, err
}

// UpdateAttendance sets the attendance state of an assignment
func (r *AssignmentRepository) UpdateAttendance(id uint, attendance domain.Attendance) error {
	return r.db.Model(&models.Assignment{}).
		Where("id = ?", id).
		Update("attendance", string(attendance)).Error
}
