package handlers

import (
	"github.com/gofiber/fiber/v2"

	"crewshift/internal/adapters/persistence/models"
	"crewshift/internal/core/domain"
	"crewshift/internal/core/services"
	"crewshift/internal/pkg/response"
)

// LeaveHandler handles leave request endpoints
type LeaveHandler struct {
	leaveService *services.LeaveService
}

// NewLeaveHandler creates a new leave handler
func NewLeaveHandler(leaveService *services.LeaveService) *LeaveHandler {
	return &LeaveHandler{
		leaveService: leaveService,
	}
}

// SubmitLeaveInput is the leave submission request body
type SubmitLeaveInput struct {
	MemberID uint   `json:"memberId" validate:"required"`
	ShiftID  uint   `json:"shiftId" validate:"required"`
	Reason   string `json:"reason" validate:"max=500"`
}

// HandleLeaveInput is the leave decision request body
type HandleLeaveInput struct {
	MemberID uint   `json:"memberId" validate:"required"`
	ShiftID  uint   `json:"shiftId" validate:"required"`
	Approve  *bool  `json:"approve" validate:"required"`
	Reason   string `json:"reason" validate:"max=500"`
}

// HandleLeaveResponse is the leave decision response body
type HandleLeaveResponse struct {
	Request       *models.LeaveRequestResponse `json:"request"`
	Reassignments []*models.AssignmentResponse `json:"reassignments"`
}

// Submit creates a pending leave request
// @Summary Submit a leave request against an assigned shift
// @Tags leaves
// @Accept json
// @Produce json
// @Param input body SubmitLeaveInput true "Leave request"
// @Success 201 {object} response.Response
// @Router /leaves/request [post]
func (h *LeaveHandler) Submit(c *fiber.Ctx) error {
	var input SubmitLeaveInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	request, err := h.leaveService.Submit(input.MemberID, input.ShiftID, input.Reason)
	if err != nil {
		switch err {
		case domain.ErrMemberNotFound:
			return response.NotFound(c, "Member not found")
		case domain.ErrShiftNotFound:
			return response.NotFound(c, "Shift not found")
		case domain.ErrNotAssigned:
			return response.UnprocessableEntity(c, "Member has no active assignment on this shift")
		case domain.ErrDuplicatePending:
			return response.Conflict(c, "A pending leave request already exists for this shift")
		default:
			return response.InternalServerError(c, "Failed to submit leave request")
		}
	}
	return response.Created(c, "Leave request submitted", request.ToResponse())
}

// Handle approves or rejects a pending leave request
// @Summary Decide a pending leave request
// @Tags leaves
// @Accept json
// @Produce json
// @Param input body HandleLeaveInput true "Decision"
// @Success 200 {object} response.Response
// @Router /leaves/handle [post]
func (h *LeaveHandler) Handle(c *fiber.Ctx) error {
	var input HandleLeaveInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := h.leaveService.Handle(input.MemberID, input.ShiftID, *input.Approve, input.Reason)
	if err != nil {
		switch err {
		case domain.ErrLeaveNotFound:
			return response.NotFound(c, "No pending leave request for this member and shift")
		case domain.ErrShiftNotFound:
			return response.NotFound(c, "Shift not found")
		case domain.ErrNotAssigned:
			return response.UnprocessableEntity(c, "Member has no active assignment on this shift")
		default:
			return response.InternalServerError(c, "Failed to handle leave request")
		}
	}

	return response.Success(c, "Leave request handled", &HandleLeaveResponse{
		Request:       result.Request.ToResponse(),
		Reassignments: models.AssignmentResponses(result.Reassignments),
	})
}

// PendingForManager returns pending requests for shifts at the manager's location
func (h *LeaveHandler) PendingForManager(c *fiber.Ctx) error {
	locationID, err := parseIDParam(c, "locationId")
	if err != nil {
		return response.BadRequest(c, "Invalid location ID")
	}

	requests, err := h.leaveService.PendingForManager(locationID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list pending leave requests")
	}
	return response.Success(c, "Pending leave requests retrieved", leaveResponses(requests))
}

// ListForMember returns a member's leave request history
func (h *LeaveHandler) ListForMember(c *fiber.Ctx) error {
	memberID, err := parseIDParam(c, "memberId")
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	requests, err := h.leaveService.ListForMember(memberID)
	if err != nil {
		if err == domain.ErrMemberNotFound {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to list leave requests")
	}
	return response.Success(c, "Leave requests retrieved", leaveResponses(requests))
}

func leaveResponses(rows []models.LeaveRequest) []*models.LeaveRequestResponse {
	out := make([]*models.LeaveRequestResponse, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToResponse())
	}
	return out
}
