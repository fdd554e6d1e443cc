package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"crewshift/internal/core/services"
	"crewshift/internal/pkg/response"
)

// DashboardHandler serves staffing overview endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Coverage returns required vs. active headcount per shift for a day
// (defaults to today)
func (h *DashboardHandler) Coverage(c *fiber.Ctx) error {
	day := time.Now().Truncate(24 * time.Hour)
	if dayStr := c.Query("day"); dayStr != "" {
		parsed, err := time.Parse("2006-01-02", dayStr)
		if err != nil {
			return response.BadRequest(c, "Invalid day (expected YYYY-MM-DD)")
		}
		day = parsed
	}

	coverage, err := h.dashboardService.Coverage(day)
	if err != nil {
		return response.InternalServerError(c, "Failed to compute coverage")
	}
	return response.Success(c, "Coverage retrieved", coverage)
}

// Summary returns headline staffing numbers for today
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.dashboardService.GetSummary(time.Now().Truncate(24 * time.Hour))
	if err != nil {
		return response.InternalServerError(c, "Failed to compute summary")
	}
	return response.Success(c, "Summary retrieved", summary)
}
