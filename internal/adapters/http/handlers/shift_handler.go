package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"crewshift/internal/adapters/persistence/models"
	"crewshift/internal/adapters/persistence/repositories"
	"crewshift/internal/core/domain"
	"crewshift/internal/core/services"
	"crewshift/internal/pkg/pagination"
	"crewshift/internal/pkg/response"
)

// ShiftHandler handles shift catalog endpoints
type ShiftHandler struct {
	shiftService *services.ShiftService
}

// NewShiftHandler creates a new shift handler
func NewShiftHandler(shiftService *services.ShiftService) *ShiftHandler {
	return &ShiftHandler{
		shiftService: shiftService,
	}
}

// Create publishes a new shift
// @Summary Create a shift with role requirements
// @Tags shifts
// @Accept json
// @Produce json
// @Param input body services.ShiftInput true "Shift"
// @Success 201 {object} response.Response
// @Router /shifts [post]
func (h *ShiftHandler) Create(c *fiber.Ctx) error {
	var input services.ShiftInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	shift, err := h.shiftService.Create(&input)
	if err != nil {
		return shiftCreateError(c, err)
	}
	return response.Created(c, "Shift created", shift.ToResponse())
}

// CreateWeekly publishes a batch of shifts atomically
func (h *ShiftHandler) CreateWeekly(c *fiber.Ctx) error {
	var input services.WeeklyInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	shifts, err := h.shiftService.CreateWeekly(&input)
	if err != nil {
		return shiftCreateError(c, err)
	}
	return response.Created(c, "Weekly shifts created", shiftResponses(shifts))
}

// Get returns one shift with its requirements
func (h *ShiftHandler) Get(c *fiber.Ctx) error {
	shiftID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid shift ID")
	}

	shift, err := h.shiftService.Get(shiftID)
	if err != nil {
		if err == domain.ErrShiftNotFound {
			return response.NotFound(c, "Shift not found")
		}
		return response.InternalServerError(c, "Failed to get shift")
	}
	return response.Success(c, "Shift retrieved", shift.ToResponse())
}

// List returns a page of shifts, optionally filtered by location and day
func (h *ShiftHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := repositories.ListFilter{
		LocationID: uint(c.QueryInt("locationId", 0)),
	}
	if dayStr := c.Query("day"); dayStr != "" {
		day, err := time.Parse("2006-01-02", dayStr)
		if err != nil {
			return response.BadRequest(c, "Invalid day (expected YYYY-MM-DD)")
		}
		filter.Day = &day
	}

	shifts, total, err := h.shiftService.List(filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list shifts")
	}
	return response.Success(c, "Shifts retrieved",
		pagination.NewResponse(shiftResponses(shifts), params, total))
}

func shiftCreateError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return response.BadRequest(c, "Invalid day or time values")
	case domain.ErrLocationNotFound:
		return response.NotFound(c, "Location not found")
	case domain.ErrRoleNotFound:
		return response.NotFound(c, "Role not found")
	case domain.ErrDuplicateRole:
		return response.UnprocessableEntity(c, "Duplicate role in shift requirements")
	default:
		return response.InternalServerError(c, "Failed to create shift")
	}
}

func shiftResponses(rows []models.Shift) []*models.ShiftResponse {
	out := make([]*models.ShiftResponse, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToResponse())
	}
	return out
}
