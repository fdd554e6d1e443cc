package repositories

import (
	"crewshift/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// MasterRepository handles role and location master data
type MasterRepository struct {
	db *gorm.DB
}

// NewMasterRepository creates a new master repository
func NewMasterRepository(db *gorm.DB) *MasterRepository {
	return &MasterRepository{db: db}
}

// GetActiveRoles returns all active roles
func (r *MasterRepository) GetActiveRoles() ([]models.Role, error) {
	var roles []models.Role
	err := r.db.Where("is_active = ?", true).Order("id ASC").Find(&roles).Error
	return roles, err
}

// GetRoleByID returns a role by ID
func (r *MasterRepository) GetRoleByID(id uint) (*models.Role, error) {
	var role models.Role
	err := r.db.First(&role, id).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// GetActiveLocations returns all active locations
func (r *MasterRepository) GetActiveLocations() ([]models.Location, error) {
	var locations []models.Location
	err := r.db.Where("is_active = ?", true).Order("id ASC").Find(&locations).Error
	return locations, err
}

// GetLocationByID returns a location by ID
func (r *MasterRepository) GetLocationByID(id uint) (*models.Location, error) {
	var location models.Location
	err := r.db.First(&location, id).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}
