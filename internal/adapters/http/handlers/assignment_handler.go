package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"crewshift/internal/adapters/persistence/models"
	"crewshift/internal/core/domain"
	"crewshift/internal/core/services"
	"crewshift/internal/pkg/response"
)

// AssignmentHandler handles shift assignment endpoints
type AssignmentHandler struct {
	assignService *services.AssignmentService
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(assignService *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		assignService: assignService,
	}
}

// ManualAssignInput is the manual assignment request body
type ManualAssignInput struct {
	MemberID uint `json:"memberId" validate:"required"`
	RoleID   uint `json:"roleId" validate:"required"`
}

// AttendanceInput is the attendance-taking request body
type AttendanceInput struct {
	MemberID   uint   `json:"memberId" validate:"required"`
	Attendance string `json:"attendance" validate:"required,oneof=PRESENT ABSENT"`
}

// AutoAssign fills every open role slot on a shift
// @Summary Auto-assign eligible members to a shift
// @Tags assignments
// @Produce json
// @Param id path int true "Shift ID"
// @Success 200 {object} response.Response
// @Router /shifts/{id}/auto [post]
func (h *AssignmentHandler) AutoAssign(c *fiber.Ctx) error {
	shiftID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid shift ID")
	}

	created, err := h.assignService.AutoAssign(shiftID)
	if err != nil {
		switch err {
		case domain.ErrShiftNotFound:
			return response.NotFound(c, "Shift not found")
		case domain.ErrDuplicateRole:
			return response.UnprocessableEntity(c, "Shift has duplicate role requirements")
		case domain.ErrInvalidInput:
			return response.UnprocessableEntity(c, "Shift has invalid role requirements")
		default:
			return response.InternalServerError(c, "Failed to auto-assign shift")
		}
	}
	return response.Success(c, "Auto-assign completed", models.AssignmentResponses(created))
}

// ManualAssign assigns one member to one role slot
// @Summary Manually assign a member to a role slot
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path int true "Shift ID"
// @Param input body ManualAssignInput true "Assignment"
// @Success 201 {object} response.Response
// @Router /shifts/{id}/manual [post]
func (h *AssignmentHandler) ManualAssign(c *fiber.Ctx) error {
	shiftID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid shift ID")
	}

	var input ManualAssignInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	assignment, err := h.assignService.ManualAssign(shiftID, input.MemberID, input.RoleID)
	if err != nil {
		switch err {
		case domain.ErrShiftNotFound:
			return response.NotFound(c, "Shift not found")
		case domain.ErrMemberNotFound:
			return response.NotFound(c, "Member not found")
		case domain.ErrRoleNotRequired:
			return response.UnprocessableEntity(c, "Role is not part of the shift requirements")
		case domain.ErrNotEligible:
			return response.UnprocessableEntity(c, "Member is not eligible for this role slot")
		case domain.ErrAlreadyAssigned:
			return response.Conflict(c, "Member already has an assignment for this shift")
		case domain.ErrCapacityExceeded:
			return response.Conflict(c, "Role requirement is already fully staffed")
		default:
			return response.InternalServerError(c, "Failed to assign member")
		}
	}
	return response.Created(c, "Member assigned", assignment.ToResponse())
}

// ListByShift returns every assignment on a shift, LEAVE rows included
// @Summary List assignments of a shift
// @Tags assignments
// @Produce json
// @Param shiftId path int true "Shift ID"
// @Success 200 {object} response.Response
// @Router /shift_assignments/{shiftId} [get]
func (h *AssignmentHandler) ListByShift(c *fiber.Ctx) error {
	shiftID, err := parseIDParam(c, "shiftId")
	if err != nil {
		return response.BadRequest(c, "Invalid shift ID")
	}

	assignments, err := h.assignService.ListByShift(shiftID)
	if err != nil {
		if err == domain.ErrShiftNotFound {
			return response.NotFound(c, "Shift not found")
		}
		return response.InternalServerError(c, "Failed to list assignments")
	}
	return response.Success(c, "Assignments retrieved", models.AssignmentResponses(assignments))
}

// MarkAttendance records attendance for a scheduled assignment
func (h *AssignmentHandler) MarkAttendance(c *fiber.Ctx) error {
	shiftID, err := parseIDParam(c, "shiftId")
	if err != nil {
		return response.BadRequest(c, "Invalid shift ID")
	}

	var input AttendanceInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	assignment, err := h.assignService.MarkAttendance(shiftID, input.MemberID, domain.Attendance(input.Attendance))
	if err != nil {
		switch err {
		case domain.ErrNotAssigned:
			return response.NotFound(c, "Member has no assignment for this shift")
		case domain.ErrInvalidAttendance:
			return response.UnprocessableEntity(c, "Invalid attendance transition")
		default:
			return response.InternalServerError(c, "Failed to mark attendance")
		}
	}
	return response.Success(c, "Attendance recorded", assignment.ToResponse())
}

// parseIDParam reads a positive integer path parameter
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || value == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(value), nil
}
