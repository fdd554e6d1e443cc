package services

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"crewshift/internal/adapters/persistence/models"
	"crewshift/internal/adapters/persistence/repositories"
	"crewshift/internal/config"
	"crewshift/internal/core/domain"
	"crewshift/internal/pkg/shiftlock"
)

// AssignmentService fills shift role requirements with eligible members
// and exposes the current fill state
type AssignmentService struct {
	db         *gorm.DB
	shiftRepo  *repositories.ShiftRepository
	memberRepo *repositories.MemberRepository
	assignRepo *repositories.AssignmentRepository
	notify     *NotificationService
	locks      *shiftlock.Locker
	scheduling config.SchedulingConfig
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(
	db *gorm.DB,
	shiftRepo *repositories.ShiftRepository,
	memberRepo *repositories.MemberRepository,
	assignRepo *repositories.AssignmentRepository,
	notify *NotificationService,
	locks *shiftlock.Locker,
	scheduling config.SchedulingConfig,
) *AssignmentService {
	return &AssignmentService{
		db:         db,
		shiftRepo:  shiftRepo,
		memberRepo: memberRepo,
		assignRepo: assignRepo,
		notify:     notify,
		locks:      locks,
		scheduling: scheduling,
	}
}

// ============================================================
// Auto-assign
// ============================================================

// AutoAssign fills every open role slot on a shift with eligible members
// and returns only the newly created assignments. Filling fewer slots than
// required is a successful partial result, and a second call on a fully
// staffed shift is a no-op returning an empty list.
func (s *AssignmentService) AutoAssign(shiftID uint) ([]models.Assignment, error) {
	created, shift, err := s.autoAssignLocked(shiftID)
	if err != nil {
		return nil, err
	}

	// Notification dispatch happens outside the capacity lock and never
	// fails the assignment batch
	if len(created) > 0 {
		s.notify.AssignmentsCreated(shift, created)
	}
	return created, nil
}

func (s *AssignmentService) autoAssignLocked(shiftID uint) ([]models.Assignment, *models.Shift, error) {
	s.locks.Lock(shiftID)
	defer s.locks.Unlock(shiftID)

	created := []models.Assignment{}
	var shift *models.Shift

	err := s.db.Transaction(func(tx *gorm.DB) error {
		shiftRepo := s.shiftRepo.WithTx(tx)
		memberRepo := s.memberRepo.WithTx(tx)
		assignRepo := s.assignRepo.WithTx(tx)

		// 1. Load shift and validate its requirements
		var err error
		shift, err = shiftRepo.GetByID(shiftID)
		if err == gorm.ErrRecordNotFound {
			return domain.ErrShiftNotFound
		}
		if err != nil {
			return errors.Wrap(err, "load shift")
		}
		if err := validateRequirements(shift.Requirements); err != nil {
			return err
		}

		// 2. Current assignment state: any existing row on the shift
		// excludes the member, LEAVE rows included
		existing, err := assignRepo.ListByShift(shiftID)
		if err != nil {
			return errors.Wrap(err, "load assignments")
		}
		taken := make(map[uint]bool, len(existing))
		activeByRole := make(map[uint]int)
		for _, a := range existing {
			taken[a.MemberID] = true
			if a.IsActive() {
				activeByRole[a.RoleID]++
			}
		}

		// 3. Candidate pool: active members at the shift's location,
		// ascending ID for deterministic output
		candidates, err := memberRepo.ListActiveByLocation(shift.LocationID)
		if err != nil {
			return errors.Wrap(err, "load candidates")
		}

		// 4. Fill each requirement in the order given
		for _, req := range shift.Requirements {
			need := req.Count - activeByRole[req.RoleID]
			for i := range candidates {
				if need <= 0 {
					break
				}
				candidate := &candidates[i]
				if taken[candidate.ID] {
					continue
				}
				if err := s.checkEligibility(assignRepo, candidate, shift, req.RoleID); err != nil {
					if isEligibilityError(err) {
						continue
					}
					return err
				}

				assignment := models.Assignment{
					ShiftID:    shift.ID,
					MemberID:   candidate.ID,
					RoleID:     req.RoleID,
					Attendance: string(domain.AttendanceScheduled),
				}
				if err := assignRepo.Create(&assignment); err != nil {
					return errors.Wrap(err, "create assignment")
				}
				created = append(created, assignment)
				taken[candidate.ID] = true
				need--
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	log.WithFields(log.Fields{
		"shift_id": shiftID,
		"created":  len(created),
	}).Info("auto-assign completed")
	return created, shift, nil
}

// ============================================================
// Manual assign
// ============================================================

// ManualAssign assigns one member to one role slot after validating
// eligibility and open capacity
func (s *AssignmentService) ManualAssign(shiftID, memberID, roleID uint) (*models.Assignment, error) {
	assignment, shift, err := s.manualAssignLocked(shiftID, memberID, roleID)
	if err != nil {
		return nil, err
	}

	s.notify.AssignmentsCreated(shift, []models.Assignment{*assignment})
	return assignment, nil
}

func (s *AssignmentService) manualAssignLocked(shiftID, memberID, roleID uint) (*models.Assignment, *models.Shift, error) {
	s.locks.Lock(shiftID)
	defer s.locks.Unlock(shiftID)

	var assignment *models.Assignment
	var shift *models.Shift

	err := s.db.Transaction(func(tx *gorm.DB) error {
		shiftRepo := s.shiftRepo.WithTx(tx)
		memberRepo := s.memberRepo.WithTx(tx)
		assignRepo := s.assignRepo.WithTx(tx)

		var err error
		shift, err = shiftRepo.GetByID(shiftID)
		if err == gorm.ErrRecordNotFound {
			return domain.ErrShiftNotFound
		}
		if err != nil {
			return errors.Wrap(err, "load shift")
		}

		member, err := memberRepo.GetByID(memberID)
		if err == gorm.ErrRecordNotFound {
			return domain.ErrMemberNotFound
		}
		if err != nil {
			return errors.Wrap(err, "load member")
		}

		required := shift.ToDomain().RequiredFor(roleID)
		if required == 0 {
			return domain.ErrRoleNotRequired
		}

		if err := s.checkEligibility(assignRepo, member, shift, roleID); err != nil {
			return err
		}

		active, err := assignRepo.CountActive(shiftID, roleID)
		if err != nil {
			return errors.Wrap(err, "count active assignments")
		}
		if active >= int64(required) {
			return domain.ErrCapacityExceeded
		}

		assignment = &models.Assignment{
			ShiftID:    shiftID,
			MemberID:   memberID,
			RoleID:     roleID,
			Attendance: string(domain.AttendanceScheduled),
		}
		return errors.Wrap(assignRepo.Create(assignment), "create assignment")
	})
	if err != nil {
		return nil, nil, err
	}
	return assignment, shift, nil
}

// ============================================================
// Queries & attendance
// ============================================================

// ListByShift returns every assignment on the shift, LEAVE rows included
func (s *AssignmentService) ListByShift(shiftID uint) ([]models.Assignment, error) {
	if _, err := s.shiftRepo.GetByID(shiftID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrShiftNotFound
		}
		return nil, errors.Wrap(err, "load shift")
	}
	return s.assignRepo.ListByShift(shiftID)
}

// MarkAttendance records attendance-taking for a scheduled assignment.
// Only SCHEDULED slots can move to PRESENT or ABSENT; LEAVE rows are
// never touched.
func (s *AssignmentService) MarkAttendance(shiftID, memberID uint, attendance domain.Attendance) (*models.Assignment, error) {
	if attendance != domain.AttendancePresent && attendance != domain.AttendanceAbsent {
		return nil, domain.ErrInvalidAttendance
	}

	s.locks.Lock(shiftID)
	defer s.locks.Unlock(shiftID)

	assignment, err := s.assignRepo.GetByShiftAndMember(shiftID, memberID)
	if err != nil {
		return nil, errors.Wrap(err, "load assignment")
	}
	if assignment == nil {
		return nil, domain.ErrNotAssigned
	}
	if assignment.Attendance != string(domain.AttendanceScheduled) {
		return nil, domain.ErrInvalidAttendance
	}

	if err := s.assignRepo.UpdateAttendance(assignment.ID, attendance); err != nil {
		return nil, errors.Wrap(err, "update attendance")
	}
	assignment.Attendance = string(attendance)
	return assignment, nil
}

// ============================================================
// Backfill (used by the leave engine)
// ============================================================

// BackfillSlot fills one freed (shift, role) slot with the first eligible
// member not excluded and not already on the shift. Returns nil when no
// candidate is eligible; that is not an error, the slot stays open. The
// caller is responsible for holding the shift lock and transaction.
func (s *AssignmentService) BackfillSlot(tx *gorm.DB, shift *models.Shift, roleID uint, excluded map[uint]bool) (*models.Assignment, error) {
	memberRepo := s.memberRepo.WithTx(tx)
	assignRepo := s.assignRepo.WithTx(tx)

	candidates, err := memberRepo.ListActiveByLocation(shift.LocationID)
	if err != nil {
		return nil, errors.Wrap(err, "load candidates")
	}

	for i := range candidates {
		candidate := &candidates[i]
		if excluded[candidate.ID] {
			continue
		}
		if err := s.checkEligibility(assignRepo, candidate, shift, roleID); err != nil {
			if isEligibilityError(err) {
				continue
			}
			return nil, err
		}

		assignment := &models.Assignment{
			ShiftID:    shift.ID,
			MemberID:   candidate.ID,
			RoleID:     roleID,
			Attendance: string(domain.AttendanceScheduled),
		}
		if err := assignRepo.Create(assignment); err != nil {
			return nil, errors.Wrap(err, "create replacement assignment")
		}
		return assignment, nil
	}
	return nil, nil
}

// ============================================================
// Eligibility
// ============================================================

// checkEligibility validates the full eligibility predicate for one
// member against one role slot
func (s *AssignmentService) checkEligibility(assignRepo *repositories.AssignmentRepository, member *models.Member, shift *models.Shift, roleID uint) error {
	if !member.IsActive {
		return domain.ErrNotEligible
	}
	if member.WorksAt != shift.LocationID {
		return domain.ErrNotEligible
	}
	if !member.ToDomain().CanWork(roleID) {
		return domain.ErrNotEligible
	}

	existing, err := assignRepo.GetByShiftAndMember(shift.ID, member.ID)
	if err != nil {
		return errors.Wrap(err, "check existing assignment")
	}
	if existing != nil {
		return domain.ErrAlreadyAssigned
	}

	// A member cannot hold two assignments on overlapping shifts
	others, err := assignRepo.ListActiveShiftsForMemberOnDay(member.ID, shift.Day)
	if err != nil {
		return errors.Wrap(err, "check overlapping shifts")
	}
	for i := range others {
		if others[i].ID == shift.ID {
			continue
		}
		overlap, err := shiftsOverlap(shift, &others[i])
		if err != nil {
			return err
		}
		if overlap {
			return domain.ErrNotEligible
		}
	}

	if s.scheduling.EnforceHours && member.AllowedHours > 0 {
		committed, err := shiftHours(shift)
		if err != nil {
			return err
		}
		for i := range others {
			if others[i].ID == shift.ID {
				continue
			}
			hours, err := shiftHours(&others[i])
			if err != nil {
				return err
			}
			committed += hours
		}
		if committed > member.AllowedHours {
			return domain.ErrNotEligible
		}
	}
	return nil
}

// isEligibilityError reports whether err only disqualifies the candidate
// instead of failing the whole operation
func isEligibilityError(err error) bool {
	return err == domain.ErrNotEligible || err == domain.ErrAlreadyAssigned
}

// validateRequirements enforces role uniqueness and positive headcount
// within a shift's requirements
func validateRequirements(requirements []models.ShiftRequirement) error {
	seen := make(map[uint]bool, len(requirements))
	for _, req := range requirements {
		if req.Count < 1 {
			return domain.ErrInvalidInput
		}
		if seen[req.RoleID] {
			return domain.ErrDuplicateRole
		}
		seen[req.RoleID] = true
	}
	return nil
}

// ============================================================
// Clock helpers
// ============================================================

// clockMinutes converts an HH:MM:SS value to minutes since midnight.
// Shift times are validated on creation, so a parse failure here means
// a corrupted row and must surface instead of defaulting to midnight.
func clockMinutes(value string) (int, error) {
	t, err := time.Parse("15:04:05", value)
	if err != nil {
		return 0, errors.Wrapf(err, "bad clock value %q", value)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// shiftsOverlap reports whether two same-day shifts overlap in time
func shiftsOverlap(a, b *models.Shift) (bool, error) {
	aStart, err := clockMinutes(a.StartTime)
	if err != nil {
		return false, err
	}
	aEnd, err := clockMinutes(a.EndTime)
	if err != nil {
		return false, err
	}
	bStart, err := clockMinutes(b.StartTime)
	if err != nil {
		return false, err
	}
	bEnd, err := clockMinutes(b.EndTime)
	if err != nil {
		return false, err
	}
	return aStart < bEnd && bStart < aEnd, nil
}

// shiftHours returns the shift duration in hours
func shiftHours(s *models.Shift) (float64, error) {
	start, err := clockMinutes(s.StartTime)
	if err != nil {
		return 0, err
	}
	end, err := clockMinutes(s.EndTime)
	if err != nil {
		return 0, err
	}
	return float64(end-start) / 60.0, nil
}
