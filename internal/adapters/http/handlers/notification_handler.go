package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"crewshift/internal/adapters/persistence/models"
	"crewshift/internal/core/domain"
	"crewshift/internal/core/services"
	"crewshift/internal/pkg/response"
)

// NotificationHandler handles in-app notification endpoints
type NotificationHandler struct {
	notifService *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notifService: notifService,
	}
}

// ListForMember returns a member's notifications, newest first
func (h *NotificationHandler) ListForMember(c *fiber.Ctx) error {
	memberID, err := parseIDParam(c, "memberId")
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	notifications, err := h.notifService.ListForMember(memberID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list notifications")
	}
	return response.Success(c, "Notifications retrieved", notificationResponses(notifications))
}

// MarkViewed stamps a notification as viewed
func (h *NotificationHandler) MarkViewed(c *fiber.Ctx) error {
	memberID, err := parseIDParam(c, "memberId")
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}
	seq, err := strconv.Atoi(c.Params("seq"))
	if err != nil || seq < 1 {
		return response.BadRequest(c, "Invalid notification sequence")
	}

	notification, err := h.notifService.MarkViewed(memberID, seq)
	if err != nil {
		if err == domain.ErrNotFound {
			return response.NotFound(c, "Notification not found")
		}
		return response.InternalServerError(c, "Failed to mark notification viewed")
	}
	return response.Success(c, "Notification viewed", notification.ToResponse())
}

// NotifyShiftAssignments re-announces a shift to its assigned members
func (h *NotificationHandler) NotifyShiftAssignments(c *fiber.Ctx) error {
	shiftID, err := parseIDParam(c, "shiftId")
	if err != nil {
		return response.BadRequest(c, "Invalid shift ID")
	}

	created, err := h.notifService.NotifyShiftAssignments(shiftID)
	if err != nil {
		if err == domain.ErrShiftNotFound {
			return response.NotFound(c, "Shift not found")
		}
		return response.InternalServerError(c, "Failed to notify assignments")
	}
	return response.Success(c, "Assignment notifications sent", notificationResponses(created))
}

func notificationResponses(rows []models.Notification) []*models.NotificationResponse {
	out := make([]*models.NotificationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToResponse())
	}
	return out
}
