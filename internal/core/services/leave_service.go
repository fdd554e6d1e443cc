package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"crewshift/internal/adapters/persistence/models"
	"crewshift/internal/adapters/persistence/repositories"
	"crewshift/internal/core/domain"
	"crewshift/internal/pkg/shiftlock"
)

// LeaveService processes leave requests and backfills vacated slots
type LeaveService struct {
	db         *gorm.DB
	leaveRepo  *repositories.LeaveRepository
	shiftRepo  *repositories.ShiftRepository
	memberRepo *repositories.MemberRepository
	assignRepo *repositories.AssignmentRepository
	assignSvc  *AssignmentService
	notify     *NotificationService
	locks      *shiftlock.Locker
}

// NewLeaveService creates a new leave service
func NewLeaveService(
	db *gorm.DB,
	leaveRepo *repositories.LeaveRepository,
	shiftRepo *repositories.ShiftRepository,
	memberRepo *repositories.MemberRepository,
	assignRepo *repositories.AssignmentRepository,
	assignSvc *AssignmentService,
	notify *NotificationService,
	locks *shiftlock.Locker,
) *LeaveService {
	return &LeaveService{
		db:         db,
		leaveRepo:  leaveRepo,
		shiftRepo:  shiftRepo,
		memberRepo: memberRepo,
		assignRepo: assignRepo,
		assignSvc:  assignSvc,
		notify:     notify,
		locks:      locks,
	}
}

// ============================================================
// Submit
// ============================================================

// Submit creates a pending leave request for one of the member's own
// assigned shifts
func (s *LeaveService) Submit(memberID, shiftID uint, reason string) (*models.LeaveRequest, error) {
	if _, err := s.memberRepo.GetByID(memberID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrMemberNotFound
		}
		return nil, errors.Wrap(err, "load member")
	}

	shift, err := s.shiftRepo.GetByID(shiftID)
	if err == gorm.ErrRecordNotFound {
		return nil, domain.ErrShiftNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "load shift")
	}

	// Leave can only be requested against a live assignment
	assignment, err := s.assignRepo.GetByShiftAndMember(shiftID, memberID)
	if err != nil {
		return nil, errors.Wrap(err, "load assignment")
	}
	if assignment == nil || !isLeaveRequestable(assignment.Attendance) {
		return nil, domain.ErrNotAssigned
	}

	pending, err := s.leaveRepo.GetPending(memberID, shiftID)
	if err != nil {
		return nil, errors.Wrap(err, "check pending request")
	}
	if pending != nil {
		return nil, domain.ErrDuplicatePending
	}

	request := &models.LeaveRequest{
		Code:     uuid.New().String(),
		MemberID: memberID,
		ShiftID:  shiftID,
		Approval: string(domain.ApprovalPending),
		Reason:   reason,
		ShiftDay: shift.Day,
	}
	if err := s.leaveRepo.Create(request); err != nil {
		return nil, errors.Wrap(err, "create leave request")
	}

	log.WithFields(log.Fields{
		"member_id": memberID,
		"shift_id":  shiftID,
	}).Info("leave request submitted")
	return request, nil
}

// ============================================================
// Handle (approve / reject)
// ============================================================

// HandleResult describes the outcome of a leave decision
type HandleResult struct {
	Request       *models.LeaveRequest
	Reassignments []models.Assignment
}

// Handle decides a pending leave request. Rejection mutates no
// assignments. Approval marks the member's assignment LEAVE, decrements
// the paid leave budget and backfills the freed slot with at most one
// replacement. Approval succeeds even when no replacement exists; the
// shift is simply left understaffed and the result carries zero
// reassignments.
func (s *LeaveService) Handle(memberID, shiftID uint, approve bool, note string) (*HandleResult, error) {
	if !approve {
		return s.reject(memberID, shiftID, note)
	}

	result, shift, replacement, err := s.approveLocked(memberID, shiftID, note)
	if err != nil {
		return nil, err
	}

	// Notify outside the capacity lock, best-effort
	s.notify.LeaveDecided(memberID, shift, true)
	if replacement != nil {
		s.notify.AssignmentsCreated(shift, []models.Assignment{*replacement})
	}
	return result, nil
}

func (s *LeaveService) reject(memberID, shiftID uint, note string) (*HandleResult, error) {
	request, err := s.rejectLocked(memberID, shiftID, note)
	if err != nil {
		return nil, err
	}

	shift, err := s.shiftRepo.GetByID(shiftID)
	if err == nil {
		s.notify.LeaveDecided(memberID, shift, false)
	}

	log.WithFields(log.Fields{
		"member_id": memberID,
		"shift_id":  shiftID,
	}).Info("leave request rejected")
	return &HandleResult{Request: request, Reassignments: []models.Assignment{}}, nil
}

func (s *LeaveService) rejectLocked(memberID, shiftID uint, note string) (*models.LeaveRequest, error) {
	s.locks.Lock(shiftID)
	defer s.locks.Unlock(shiftID)

	var request *models.LeaveRequest

	// Re-read under the lock so a concurrent decision on the same
	// request cannot decide it twice
	err := s.db.Transaction(func(tx *gorm.DB) error {
		leaveRepo := s.leaveRepo.WithTx(tx)

		var err error
		request, err = leaveRepo.GetPending(memberID, shiftID)
		if err != nil {
			return errors.Wrap(err, "load pending request")
		}
		if request == nil {
			return domain.ErrLeaveNotFound
		}

		now := time.Now()
		request.Approval = string(domain.ApprovalRejected)
		request.DecisionNote = note
		request.DecidedAt = &now
		return errors.Wrap(leaveRepo.Update(request), "update leave request")
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

func (s *LeaveService) approveLocked(memberID, shiftID uint, note string) (*HandleResult, *models.Shift, *models.Assignment, error) {
	s.locks.Lock(shiftID)
	defer s.locks.Unlock(shiftID)

	var request *models.LeaveRequest
	var shift *models.Shift
	var replacement *models.Assignment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		leaveRepo := s.leaveRepo.WithTx(tx)
		shiftRepo := s.shiftRepo.WithTx(tx)
		memberRepo := s.memberRepo.WithTx(tx)
		assignRepo := s.assignRepo.WithTx(tx)

		// 1. The pending request must still exist
		var err error
		request, err = leaveRepo.GetPending(memberID, shiftID)
		if err != nil {
			return errors.Wrap(err, "load pending request")
		}
		if request == nil {
			return domain.ErrLeaveNotFound
		}

		shift, err = shiftRepo.GetByID(shiftID)
		if err == gorm.ErrRecordNotFound {
			return domain.ErrShiftNotFound
		}
		if err != nil {
			return errors.Wrap(err, "load shift")
		}

		// Only SCHEDULED and PRESENT rows may transition to LEAVE; an
		// assignment already marked ABSENT (or LEAVE) cannot be approved
		assignment, err := assignRepo.GetByShiftAndMember(shiftID, memberID)
		if err != nil {
			return errors.Wrap(err, "load assignment")
		}
		if assignment == nil || !isLeaveRequestable(assignment.Attendance) {
			return domain.ErrNotAssigned
		}

		// 2. Approve the request
		now := time.Now()
		request.Approval = string(domain.ApprovalApproved)
		request.DecisionNote = note
		request.DecidedAt = &now
		if err := leaveRepo.Update(request); err != nil {
			return errors.Wrap(err, "update leave request")
		}

		// 3. Release the slot; the assignment row persists for audit
		if err := assignRepo.UpdateAttendance(assignment.ID, domain.AttendanceLeave); err != nil {
			return errors.Wrap(err, "mark assignment on leave")
		}

		// 4. Spend one unit of the member's paid leave budget
		if err := memberRepo.DecrementAllowedLeaves(memberID); err != nil {
			return errors.Wrap(err, "decrement paid leaves")
		}

		// 5. Backfill exactly the freed slot, excluding the leaver and
		// anyone already on the shift
		current, err := assignRepo.ListByShift(shiftID)
		if err != nil {
			return errors.Wrap(err, "load assignments")
		}
		excluded := make(map[uint]bool, len(current)+1)
		excluded[memberID] = true
		for _, a := range current {
			excluded[a.MemberID] = true
		}

		replacement, err = s.assignSvc.BackfillSlot(tx, shift, assignment.RoleID, excluded)
		return err
	})
	if err != nil {
		return nil, nil, nil, err
	}

	reassignments := []models.Assignment{}
	if replacement != nil {
		reassignments = append(reassignments, *replacement)
	}

	log.WithFields(log.Fields{
		"member_id":     memberID,
		"shift_id":      shiftID,
		"reassignments": len(reassignments),
	}).Info("leave request approved")
	return &HandleResult{Request: request, Reassignments: reassignments}, shift, replacement, nil
}

// ============================================================
// Queries
// ============================================================

// PendingForManager returns pending requests for shifts held at the
// manager's location, oldest first
func (s *LeaveService) PendingForManager(locationID uint) ([]models.LeaveRequest, error) {
	return s.leaveRepo.ListPendingByLocation(locationID)
}

// ListForMember returns a member's leave request history
func (s *LeaveService) ListForMember(memberID uint) ([]models.LeaveRequest, error) {
	if _, err := s.memberRepo.GetByID(memberID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrMemberNotFound
		}
		return nil, errors.Wrap(err, "load member")
	}
	return s.leaveRepo.ListByMember(memberID)
}

// isLeaveRequestable reports whether an assignment state admits a new
// leave request
func isLeaveRequestable(attendance string) bool {
	return attendance == string(domain.AttendanceScheduled) ||
		attendance == string(domain.AttendancePresent)
}
