package handlers

import (
	"github.com/gofiber/fiber/v2"

	"crewshift/internal/adapters/persistence/repositories"
	"crewshift/internal/pkg/response"
)

// MasterHandler serves role and location master data
type MasterHandler struct {
	masterRepo *repositories.MasterRepository
}

// NewMasterHandler creates a new master handler
func NewMasterHandler(masterRepo *repositories.MasterRepository) *MasterHandler {
	return &MasterHandler{
		masterRepo: masterRepo,
	}
}

// GetRoles returns all active roles
func (h *MasterHandler) GetRoles(c *fiber.Ctx) error {
	roles, err := h.masterRepo.GetActiveRoles()
	if err != nil {
		return response.InternalServerError(c, "Failed to get roles")
	}
	return response.Success(c, "Roles retrieved", roles)
}

// GetLocations returns all active locations
func (h *MasterHandler) GetLocations(c *fiber.Ctx) error {
	locations, err := h.masterRepo.GetActiveLocations()
	if err != nil {
		return response.InternalServerError(c, "Failed to get locations")
	}
	return response.Success(c, "Locations retrieved", locations)
}
