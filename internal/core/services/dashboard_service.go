package services

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"crewshift/internal/adapters/persistence/models"
	"crewshift/internal/adapters/persistence/repositories"
	"crewshift/internal/core/domain"
)

// DashboardService aggregates staffing state for manager views
type DashboardService struct {
	db         *gorm.DB
	shiftRepo  *repositories.ShiftRepository
	assignRepo *repositories.AssignmentRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB, shiftRepo *repositories.ShiftRepository, assignRepo *repositories.AssignmentRepository) *DashboardService {
	return &DashboardService{
		db:         db,
		shiftRepo:  shiftRepo,
		assignRepo: assignRepo,
	}
}

// RoleCoverage reports fill state of one role requirement
type RoleCoverage struct {
	RoleID   uint `json:"roleId"`
	Required int  `json:"required"`
	Active   int  `json:"active"`
}

// ShiftCoverage reports fill state of one shift
type ShiftCoverage struct {
	ShiftID      uint           `json:"shiftId"`
	Title        string         `json:"title"`
	Day          string         `json:"day"`
	StartTime    string         `json:"startTime"`
	EndTime      string         `json:"endTime"`
	LocationID   uint           `json:"locationId"`
	Roles        []RoleCoverage `json:"roles"`
	Understaffed bool           `json:"understaffed"`
}

// Coverage reports required vs. active headcount for every shift on a day.
// Callers detect under-staffing here; the engine itself never treats a
// partially filled shift as an error.
func (s *DashboardService) Coverage(day time.Time) ([]ShiftCoverage, error) {
	shifts, err := s.shiftRepo.ListByDay(day)
	if err != nil {
		return nil, errors.Wrap(err, "load shifts")
	}

	coverage := make([]ShiftCoverage, 0, len(shifts))
	for i := range shifts {
		entry, err := s.coverageForShift(&shifts[i])
		if err != nil {
			return nil, err
		}
		coverage = append(coverage, *entry)
	}
	return coverage, nil
}

func (s *DashboardService) coverageForShift(shift *models.Shift) (*ShiftCoverage, error) {
	active, err := s.assignRepo.ListActiveByShift(shift.ID)
	if err != nil {
		return nil, errors.Wrap(err, "load assignments")
	}
	activeByRole := make(map[uint]int)
	for _, a := range active {
		activeByRole[a.RoleID]++
	}

	entry := &ShiftCoverage{
		ShiftID:    shift.ID,
		Title:      shift.Title,
		Day:        shift.Day.Format("2006-01-02"),
		StartTime:  shift.StartTime,
		EndTime:    shift.EndTime,
		LocationID: shift.LocationID,
		Roles:      make([]RoleCoverage, 0, len(shift.Requirements)),
	}
	for _, req := range shift.Requirements {
		entry.Roles = append(entry.Roles, RoleCoverage{
			RoleID:   req.RoleID,
			Required: req.Count,
			Active:   activeByRole[req.RoleID],
		})
		if activeByRole[req.RoleID] < req.Count {
			entry.Understaffed = true
		}
	}
	return entry, nil
}

// Summary holds headline dashboard numbers
type Summary struct {
	TotalMembers      int64 `json:"totalMembers"`
	ShiftsToday       int64 `json:"shiftsToday"`
	PendingLeaves     int64 `json:"pendingLeaves"`
	UnderstaffedToday int   `json:"understaffedToday"`
}

// GetSummary returns headline numbers for today
func (s *DashboardService) GetSummary(today time.Time) (*Summary, error) {
	summary := &Summary{}

	if err := s.db.Model(&models.Member{}).Count(&summary.TotalMembers).Error; err != nil {
		return nil, errors.Wrap(err, "count members")
	}
	if err := s.db.Model(&models.Shift{}).Where("day = ?", today).Count(&summary.ShiftsToday).Error; err != nil {
		return nil, errors.Wrap(err, "count shifts")
	}
	if err := s.db.Model(&models.LeaveRequest{}).
		Where("approval = ?", string(domain.ApprovalPending)).
		Count(&summary.PendingLeaves).Error; err != nil {
		return nil, errors.Wrap(err, "count pending leaves")
	}

	coverage, err := s.Coverage(today)
	if err != nil {
		return nil, err
	}
	for _, entry := range coverage {
		if entry.Understaffed {
			summary.UnderstaffedToday++
		}
	}
	return summary, nil
}
