package repositories

import (
	"time"

	"crewshift/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ShiftRepository handles shift catalog database operations
type ShiftRepository struct {
	db *gorm.DB
}

// NewShiftRepository creates a new shift repository
func NewShiftRepository(db *gorm.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *ShiftRepository) WithTx(tx *gorm.DB) *ShiftRepository {
	return &ShiftRepository{db: tx}
}

// Create inserts a shift together with its role requirements
func (r *ShiftRepository) Create(shift *models.Shift) error {
	return r.db.Create(shift).Error
}

// GetByID returns a shift with its requirements preloaded
func (r *ShiftRepository) GetByID(id uint) (*models.Shift, error) {
	var shift models.Shift
	err := r.db.Preload("Requirements").First(&shift, id).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

// ListFilter narrows List results
type ListFilter struct {
	LocationID uint
	Day        *time.Time
}

// List returns a page of shifts with the total count
func (r *ShiftRepository) List(filter ListFilter, offset, limit int) ([]models.Shift, int64, error) {
	var shifts []models.Shift
	var total int64

	query := r.db.Model(&models.Shift{})
	if filter.LocationID != 0 {
		query = query.Where("location_id = ?", filter.LocationID)
	}
	if filter.Day != nil {
		query = query.Where("day = ?", *filter.Day)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.
		Preload("Requirements").
		Order("day ASC, start_time ASC, id ASC").
		Offset(offset).Limit(limit).
		Find(&shifts).Error
	return shifts, total, err
}

// ListByDay returns all shifts on a day with requirements preloaded
func (r *ShiftRepository) ListByDay(day time.Time) ([]models.Shift, error) {
	var shifts []models.Shift
	err := r.db.
		Preload("Requirements").
		Where("day = ?", day).
		Order("start_time ASC, id ASC").
		Find(&shifts).Error
	return shifts, err
}
