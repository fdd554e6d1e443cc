package config

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"crewshift/internal/adapters/persistence/models"
)

// SeedMasterData seeds initial role and location master data
func SeedMasterData(db *gorm.DB) error {
	if err := seedRoles(db); err != nil {
		return err
	}
	if err := seedLocations(db); err != nil {
		return err
	}

	log.Info("✅ Master data seeded successfully")
	return nil
}

func seedRoles(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Role{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // already seeded
	}

	roles := []models.Role{
		{Code: "CASHIER", Name: "Cashier", IsActive: true},
		{Code: "COOK", Name: "Cook", IsActive: true},
		{Code: "SERVER", Name: "Server", IsActive: true},
		{Code: "CLEANER", Name: "Cleaner", IsActive: true},
		{Code: "SUPERVISOR", Name: "Floor Supervisor", IsActive: true},
	}
	return db.Create(&roles).Error
}

func seedLocations(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Location{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // already seeded
	}

	locations := []models.Location{
		{Code: "DOWNTOWN", Name: "Downtown Branch", IsActive: true},
		{Code: "RIVERSIDE", Name: "Riverside Branch", IsActive: true},
		{Code: "AIRPORT", Name: "Airport Branch", IsActive: true},
	}
	return db.Create(&locations).Error
}

// SeedDemoData seeds a handful of demo members for local development
func SeedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Member{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // already seeded
	}

	members := []models.Member{
		{Name: "Ploy S.", WorksAt: 1, FeasibleRoles: []uint{1, 3}, AllowedHours: 40, AllowedPaidLeaves: 6, IsActive: true},
		{Name: "Anan K.", WorksAt: 1, FeasibleRoles: []uint{2}, AllowedHours: 40, AllowedPaidLeaves: 6, IsActive: true},
		{Name: "Mali T.", WorksAt: 1, FeasibleRoles: []uint{1, 2, 4}, AllowedHours: 32, AllowedPaidLeaves: 6, IsActive: true},
		{Name: "Somchai P.", WorksAt: 2, FeasibleRoles: []uint{3, 5}, AllowedHours: 40, AllowedPaidLeaves: 6, IsActive: true},
	}
	if err := db.Create(&members).Error; err != nil {
		return err
	}

	log.Info("✅ Demo data seeded successfully")
	return nil
}
