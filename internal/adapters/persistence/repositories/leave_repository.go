package repositories

import (
	"crewshift/internal/adapters/persistence/models"
	"crewshift/internal/core/domain"

	"gorm.io/gorm"
)

// LeaveRepository handles leave request database operations
type LeaveRepository struct {
	db *gorm.DB
}

// NewLeaveRepository creates a new leave repository
func NewLeaveRepository(db *gorm.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *LeaveRepository) WithTx(tx *gorm.DB) *LeaveRepository {
	return &LeaveRepository{db: tx}
}

// Create inserts a new leave request
func (r *LeaveRepository) Create(request *models.LeaveRequest) error {
	return r.db.Create(request).Error
}

// GetPending returns the pending request for a (member, shift) pair,
// or nil when none exists
func (r *LeaveRepository) GetPending(memberID, shiftID uint) (*models.LeaveRequest, error) {
	var request models.LeaveRequest
	err := r.db.
		Where("member_id = ? AND shift_id = ? AND approval = ?",
			memberID, shiftID, string(domain.ApprovalPending)).
		First(&request).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ListPendingByLocation returns pending requests for shifts held at a
// location, oldest first (the manager approval queue)
func (r *LeaveRepository) ListPendingByLocation(locationID uint) ([]models.LeaveRequest, error) {
	var requests []models.LeaveRequest
	err := r.db.Model(&models.LeaveRequest{}).
		Joins("JOIN shifts ON shifts.id = leave_requests.shift_id").
		Where("leave_requests.approval = ? AND shifts.location_id = ?",
			string(domain.ApprovalPending), locationID).
		Order("leave_requests.id ASC").
		Find(&requests).Error
	return requests, err
}

// ListByMember returns a member's leave request history, newest first
func (r *LeaveRepository) ListByMember(memberID uint) ([]models.LeaveRequest, error) {
	var requests []models.LeaveRequest
	err := r.db.
		Where("member_id = ?", memberID).
		Order("id DESC").
		Find(&requests).Error
	return requests, err
}

// Update saves changed leave request fields
func (r *LeaveRepository) Update(request *models.LeaveRequest) error {
	return r.db.Save(request).Error
}
