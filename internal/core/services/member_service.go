package services

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"crewshift/internal/adapters/persistence/models"
	"crewshift/internal/adapters/persistence/repositories"
	"crewshift/internal/core/domain"
)

// MemberService handles the member directory
type MemberService struct {
	memberRepo *repositories.MemberRepository
	masterRepo *repositories.MasterRepository
}

// NewMemberService creates a new member service
func NewMemberService(memberRepo *repositories.MemberRepository, masterRepo *repositories.MasterRepository) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
		masterRepo: masterRepo,
	}
}

// MemberInput represents a member create/update payload
type MemberInput struct {
	Name              string  `json:"name" validate:"required,max=100"`
	WorksAt           uint    `json:"worksAt" validate:"required"`
	FeasibleRoles     []uint  `json:"feasibleRoles"`
	AllowedHours      float64 `json:"allowedHours" validate:"gte=0"`
	AllowedPaidLeaves int     `json:"allowedPaidLeaves" validate:"gte=0"`
}

// Create registers a new member after checking the referenced masters
func (s *MemberService) Create(input *MemberInput) (*models.Member, error) {
	if err := s.checkMasters(input); err != nil {
		return nil, err
	}

	member := &models.Member{
		Name:              input.Name,
		WorksAt:           input.WorksAt,
		FeasibleRoles:     input.FeasibleRoles,
		AllowedHours:      input.AllowedHours,
		AllowedPaidLeaves: input.AllowedPaidLeaves,
		IsActive:          true,
	}
	if err := s.memberRepo.Create(member); err != nil {
		return nil, errors.Wrap(err, "create member")
	}
	return member, nil
}

// Get returns one member
func (s *MemberService) Get(id uint) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, domain.ErrMemberNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "load member")
	}
	return member, nil
}

// List returns a page of members
func (s *MemberService) List(offset, limit int) ([]models.Member, int64, error) {
	return s.memberRepo.List(offset, limit)
}

// Update overwrites a member's mutable fields
func (s *MemberService) Update(id uint, input *MemberInput) (*models.Member, error) {
	member, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkMasters(input); err != nil {
		return nil, err
	}

	member.Name = input.Name
	member.WorksAt = input.WorksAt
	member.FeasibleRoles = input.FeasibleRoles
	member.AllowedHours = input.AllowedHours
	member.AllowedPaidLeaves = input.AllowedPaidLeaves
	if err := s.memberRepo.Update(member); err != nil {
		return nil, errors.Wrap(err, "update member")
	}
	return member, nil
}

// Delete soft deletes a member
func (s *MemberService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return errors.Wrap(s.memberRepo.Delete(id), "delete member")
}

// checkMasters verifies the referenced location and roles exist
func (s *MemberService) checkMasters(input *MemberInput) error {
	if _, err := s.masterRepo.GetLocationByID(input.WorksAt); err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.ErrLocationNotFound
		}
		return errors.Wrap(err, "load location")
	}
	for _, roleID := range input.FeasibleRoles {
		if _, err := s.masterRepo.GetRoleByID(roleID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrRoleNotFound
			}
			return errors.Wrap(err, "load role")
		}
	}
	return nil
}
