package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"crewshift/internal/adapters/persistence/models"
	"crewshift/internal/adapters/persistence/repositories"
	"crewshift/internal/core/domain"
)

// ShiftService handles the shift catalog. Shifts are immutable once
// created; there is no update path.
type ShiftService struct {
	db         *gorm.DB
	shiftRepo  *repositories.ShiftRepository
	masterRepo *repositories.MasterRepository
}

// NewShiftService creates a new shift service
func NewShiftService(db *gorm.DB, shiftRepo *repositories.ShiftRepository, masterRepo *repositories.MasterRepository) *ShiftService {
	return &ShiftService{
		db:         db,
		shiftRepo:  shiftRepo,
		masterRepo: masterRepo,
	}
}

// RequirementInput is one role headcount line of a shift payload
type RequirementInput struct {
	RoleID uint `json:"roleId" validate:"required"`
	Count  int  `json:"count" validate:"required,gte=1"`
}

// ShiftInput represents a shift create payload
type ShiftInput struct {
	Title        string             `json:"title" validate:"required,max=100"`
	Day          string             `json:"day" validate:"required"` // YYYY-MM-DD
	StartTime    string             `json:"startTime" validate:"required"`
	EndTime      string             `json:"endTime" validate:"required"`
	LocationID   uint               `json:"locationId" validate:"required"`
	Requirements []RequirementInput `json:"requirements" validate:"required,min=1,dive"`
}

// WeeklyInput represents the weekly batch create payload
type WeeklyInput struct {
	PerDayShifts []ShiftInput `json:"perDayShifts" validate:"required,min=1,dive"`
}

// Create publishes one shift
func (s *ShiftService) Create(input *ShiftInput) (*models.Shift, error) {
	shift, err := s.buildShift(input)
	if err != nil {
		return nil, err
	}
	if err := s.shiftRepo.Create(shift); err != nil {
		return nil, errors.Wrap(err, "create shift")
	}
	return shift, nil
}

// CreateWeekly publishes a batch of shifts in one transaction; either
// the whole week is created or none of it
func (s *ShiftService) CreateWeekly(input *WeeklyInput) ([]models.Shift, error) {
	shifts := make([]*models.Shift, 0, len(input.PerDayShifts))
	for i := range input.PerDayShifts {
		shift, err := s.buildShift(&input.PerDayShifts[i])
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.shiftRepo.WithTx(tx)
		for _, shift := range shifts {
			if err := repo.Create(shift); err != nil {
				return errors.Wrap(err, "create shift")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created := make([]models.Shift, 0, len(shifts))
	for _, shift := range shifts {
		created = append(created, *shift)
	}
	return created, nil
}

// Get returns one shift with its requirements
func (s *ShiftService) Get(id uint) (*models.Shift, error) {
	shift, err := s.shiftRepo.GetByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, domain.ErrShiftNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "load shift")
	}
	return shift, nil
}

// List returns a page of shifts
func (s *ShiftService) List(filter repositories.ListFilter, offset, limit int) ([]models.Shift, int64, error) {
	return s.shiftRepo.List(filter, offset, limit)
}

// buildShift validates a payload and produces an unsaved shift row
func (s *ShiftService) buildShift(input *ShiftInput) (*models.Shift, error) {
	day, err := time.Parse("2006-01-02", input.Day)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	start, err := time.Parse("15:04:05", input.StartTime)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	end, err := time.Parse("15:04:05", input.EndTime)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if !end.After(start) {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.masterRepo.GetLocationByID(input.LocationID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrLocationNotFound
		}
		return nil, errors.Wrap(err, "load location")
	}

	// Roles within one shift's requirements are unique; this is a data
	// invariant of the engine, not a client-side courtesy
	seen := make(map[uint]bool, len(input.Requirements))
	requirements := make([]models.ShiftRequirement, 0, len(input.Requirements))
	for _, req := range input.Requirements {
		if seen[req.RoleID] {
			return nil, domain.ErrDuplicateRole
		}
		seen[req.RoleID] = true

		if _, err := s.masterRepo.GetRoleByID(req.RoleID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, domain.ErrRoleNotFound
			}
			return nil, errors.Wrap(err, "load role")
		}
		requirements = append(requirements, models.ShiftRequirement{
			RoleID: req.RoleID,
			Count:  req.Count,
		})
	}

	return &models.Shift{
		Code:         uuid.New().String(),
		Title:        input.Title,
		Day:          day,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
		LocationID:   input.LocationID,
		Requirements: requirements,
	}, nil
}
