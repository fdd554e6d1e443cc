package handlers

import (
	"github.com/gofiber/fiber/v2"

	"crewshift/internal/adapters/persistence/models"
	"crewshift/internal/core/domain"
	"crewshift/internal/core/services"
	"crewshift/internal/pkg/pagination"
	"crewshift/internal/pkg/response"
)

// MemberHandler handles member directory endpoints
type MemberHandler struct {
	memberService *services.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

// Create registers a new member
// @Summary Create a member
// @Tags members
// @Accept json
// @Produce json
// @Param input body services.MemberInput true "Member"
// @Success 201 {object} response.Response
// @Router /members [post]
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var input services.MemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	member, err := h.memberService.Create(&input)
	if err != nil {
		return memberWriteError(c, err)
	}
	return response.Created(c, "Member created", member.ToResponse())
}

// Get returns one member
func (h *MemberHandler) Get(c *fiber.Ctx) error {
	memberID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	member, err := h.memberService.Get(memberID)
	if err != nil {
		if err == domain.ErrMemberNotFound {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to get member")
	}
	return response.Success(c, "Member retrieved", member.ToResponse())
}

// List returns a page of members
func (h *MemberHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	members, total, err := h.memberService.List(params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}

	out := make([]*models.MemberResponse, 0, len(members))
	for i := range members {
		out = append(out, members[i].ToResponse())
	}
	return response.Success(c, "Members retrieved", pagination.NewResponse(out, params, total))
}

// Update overwrites a member's mutable fields
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	memberID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	var input services.MemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	member, err := h.memberService.Update(memberID, &input)
	if err != nil {
		return memberWriteError(c, err)
	}
	return response.Success(c, "Member updated", member.ToResponse())
}

// Delete soft deletes a member
func (h *MemberHandler) Delete(c *fiber.Ctx) error {
	memberID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	if err := h.memberService.Delete(memberID); err != nil {
		if err == domain.ErrMemberNotFound {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to delete member")
	}
	return response.Success(c, "Member deleted", nil)
}

func memberWriteError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrMemberNotFound:
		return response.NotFound(c, "Member not found")
	case domain.ErrLocationNotFound:
		return response.NotFound(c, "Location not found")
	case domain.ErrRoleNotFound:
		return response.NotFound(c, "Role not found")
	default:
		return response.InternalServerError(c, "Failed to save member")
	}
}
