package services

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"crewshift/internal/adapters/persistence/models"
	"crewshift/internal/adapters/persistence/repositories"
	"crewshift/internal/core/domain"
)

// NotificationService writes in-app notification records. Every dispatch
// is best-effort: failures are logged and swallowed, they never fail the
// operation that produced them.
type NotificationService struct {
	notifRepo  *repositories.NotificationRepository
	assignRepo *repositories.AssignmentRepository
	shiftRepo  *repositories.ShiftRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	notifRepo *repositories.NotificationRepository,
	assignRepo *repositories.AssignmentRepository,
	shiftRepo *repositories.ShiftRepository,
) *NotificationService {
	return &NotificationService{
		notifRepo:  notifRepo,
		assignRepo: assignRepo,
		shiftRepo:  shiftRepo,
	}
}

// ============================================================
// Dispatch (fire-and-forget)
// ============================================================

// AssignmentsCreated informs each newly assigned member about their slot
func (s *NotificationService) AssignmentsCreated(shift *models.Shift, assignments []models.Assignment) {
	for _, a := range assignments {
		s.create(a.MemberID, "New shift assignment", shiftLine(shift))
	}
}

// LeaveDecided informs the requesting member about the decision
func (s *NotificationService) LeaveDecided(memberID uint, shift *models.Shift, approved bool) {
	title := "Leave request rejected"
	if approved {
		title = "Leave request approved"
	}
	s.create(memberID, title, shiftLine(shift))
}

// ShiftReminder reminds a member about an upcoming assignment
func (s *NotificationService) ShiftReminder(memberID uint, shift *models.Shift) {
	s.create(memberID, "Upcoming shift reminder", shiftLine(shift))
}

func (s *NotificationService) create(memberID uint, title, message string) {
	notification := &models.Notification{
		MemberID: memberID,
		Title:    title,
		Message:  message,
	}
	if err := s.notifRepo.Create(notification); err != nil {
		log.WithFields(log.Fields{
			"member_id": memberID,
			"title":     title,
		}).WithError(err).Warn("notification dispatch failed")
	}
}

// shiftLine renders the one-line shift description used in messages
func shiftLine(shift *models.Shift) string {
	return fmt.Sprintf("%s on %s from %s to %s",
		shift.Title,
		shift.Day.Format("2006-01-02"),
		shift.StartTime,
		shift.EndTime,
	)
}

// ============================================================
// Queries & re-announce
// ============================================================

// ListForMember returns a member's notifications, newest first
func (s *NotificationService) ListForMember(memberID uint) ([]models.Notification, error) {
	return s.notifRepo.ListByMember(memberID)
}

// MarkViewed stamps a notification as viewed and returns it
func (s *NotificationService) MarkViewed(memberID uint, seq int) (*models.Notification, error) {
	if err := s.notifRepo.MarkViewed(memberID, seq, time.Now()); err != nil {
		return nil, errors.Wrap(err, "mark viewed")
	}
	notification, err := s.notifRepo.GetByMemberAndSeq(memberID, seq)
	if err == gorm.ErrRecordNotFound {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "load notification")
	}
	return notification, nil
}

// NotifyShiftAssignments re-announces a shift to every actively assigned
// member and returns the notifications written
func (s *NotificationService) NotifyShiftAssignments(shiftID uint) ([]models.Notification, error) {
	shift, err := s.shiftRepo.GetByID(shiftID)
	if err == gorm.ErrRecordNotFound {
		return nil, domain.ErrShiftNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "load shift")
	}

	assignments, err := s.assignRepo.ListActiveByShift(shiftID)
	if err != nil {
		return nil, errors.Wrap(err, "load assignments")
	}

	created := []models.Notification{}
	for _, a := range assignments {
		notification := &models.Notification{
			MemberID: a.MemberID,
			Title:    "Shift assignment",
			Message:  shiftLine(shift),
		}
		if err := s.notifRepo.Create(notification); err != nil {
			log.WithField("member_id", a.MemberID).WithError(err).Warn("notification dispatch failed")
			continue
		}
		created = append(created, *notification)
	}
	return created, nil
}
