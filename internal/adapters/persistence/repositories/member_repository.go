package repositories

import (
	"crewshift/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// MemberRepository handles member directory database operations
type MemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *MemberRepository) WithTx(tx *gorm.DB) *MemberRepository {
	return &MemberRepository{db: tx}
}

// Create inserts a new member
func (r *MemberRepository) Create(member *models.Member) error {
	return r.db.Create(member).Error
}

// GetByID returns a member by ID
func (r *MemberRepository) GetByID(id uint) (*models.Member, error) {
	var member models.Member
	err := r.db.First(&member, id).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// List returns a page of members with the total count
func (r *MemberRepository) List(offset, limit int) ([]models.Member, int64, error) {
	var members []models.Member
	var total int64

	if err := r.db.Model(&models.Member{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("id ASC").Offset(offset).Limit(limit).Find(&members).Error
	return members, total, err
}

// ListActiveByLocation returns active members working at a location,
// ordered by ascending ID (the deterministic candidate order used by
// the assignment engine)
func (r *MemberRepository) ListActiveByLocation(locationID uint) ([]models.Member, error) {
	var members []models.Member
	err := r.db.
		Where("works_at = ? AND is_active = ?", locationID, true).
		Order("id ASC").
		Find(&members).Error
	return members, err
}

// Update saves changed member fields
func (r *MemberRepository) Update(member *models.Member) error {
	return r.db.Save(member).Error
}

// Delete soft deletes a member
func (r *MemberRepository) Delete(id uint) error {
	return r.db.Delete(&models.Member{}, id).Error
}

// DecrementAllowedLeaves reduces the member's remaining paid leave budget
// by one. The budget never goes below zero.
func (r *MemberRepository) DecrementAllowedLeaves(id uint) error {
	return r.db.Model(&models.Member{}).
		Where("id = ? AND allowed_paid_leaves > 0", id).
		UpdateColumn("allowed_paid_leaves", gorm.Expr("allowed_paid_leaves - 1")).Error
}
