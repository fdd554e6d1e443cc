package services

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"crewshift/internal/adapters/persistence/models"
	"crewshift/internal/adapters/persistence/repositories"
	"crewshift/internal/config"
	"crewshift/internal/pkg/shiftlock"
)

// Fixture IDs seeded by newTestEnv
const (
	roleCashier = uint(1)
	roleCook    = uint(2)
	roleServer  = uint(3)

	locDowntown  = uint(1)
	locRiverside = uint(2)
)

var testDay = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

type testEnv struct {
	db *gorm.DB

	memberRepo *repositories.MemberRepository
	shiftRepo  *repositories.ShiftRepository
	assignRepo *repositories.AssignmentRepository
	leaveRepo  *repositories.LeaveRepository
	notifRepo  *repositories.NotificationRepository
	masterRepo *repositories.MasterRepository

	notifySvc *NotificationService
	assignSvc *AssignmentService
	leaveSvc  *LeaveService
	shiftSvc  *ShiftService
	memberSvc *MemberService
	dashSvc   *DashboardService
}

// newTestEnv builds the full service graph on an in-memory store with
// role and location masters seeded
func newTestEnv(t *testing.T, scheduling config.SchedulingConfig) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	masters := []interface{}{
		&models.Role{ID: roleCashier, Code: "CASHIER", Name: "Cashier", IsActive: true},
		&models.Role{ID: roleCook, Code: "COOK", Name: "Cook", IsActive: true},
		&models.Role{ID: roleServer, Code: "SERVER", Name: "Server", IsActive: true},
		&models.Location{ID: locDowntown, Code: "DOWNTOWN", Name: "Downtown", IsActive: true},
		&models.Location{ID: locRiverside, Code: "RIVERSIDE", Name: "Riverside", IsActive: true},
	}
	for _, row := range masters {
		require.NoError(t, db.Create(row).Error)
	}

	env := &testEnv{
		db:         db,
		memberRepo: repositories.NewMemberRepository(db),
		shiftRepo:  repositories.NewShiftRepository(db),
		assignRepo: repositories.NewAssignmentRepository(db),
		leaveRepo:  repositories.NewLeaveRepository(db),
		notifRepo:  repositories.NewNotificationRepository(db),
		masterRepo: repositories.NewMasterRepository(db),
	}

	locks := shiftlock.New()
	env.notifySvc = NewNotificationService(env.notifRepo, env.assignRepo, env.shiftRepo)
	env.assignSvc = NewAssignmentService(db, env.shiftRepo, env.memberRepo, env.assignRepo, env.notifySvc, locks, scheduling)
	env.leaveSvc = NewLeaveService(db, env.leaveRepo, env.shiftRepo, env.memberRepo, env.assignRepo, env.assignSvc, env.notifySvc, locks)
	env.shiftSvc = NewShiftService(db, env.shiftRepo, env.masterRepo)
	env.memberSvc = NewMemberService(env.memberRepo, env.masterRepo)
	env.dashSvc = NewDashboardService(db, env.shiftRepo, env.assignRepo)
	return env
}

func (e *testEnv) createMember(t *testing.T, name string, worksAt uint, roles []uint, hours float64, paidLeaves int) *models.Member {
	t.Helper()
	member := &models.Member{
		Name:              name,
		WorksAt:           worksAt,
		FeasibleRoles:     roles,
		AllowedHours:      hours,
		AllowedPaidLeaves: paidLeaves,
		IsActive:          true,
	}
	require.NoError(t, e.memberRepo.Create(member))
	return member
}

func (e *testEnv) createShift(t *testing.T, title string, day time.Time, start, end string, locationID uint, requirements ...models.ShiftRequirement) *models.Shift {
	t.Helper()
	shift := &models.Shift{
		Code:         title + "-" + day.Format("2006-01-02") + "-" + start + "-" + strconv.FormatUint(uint64(locationID), 10),
		Title:        title,
		Day:          day,
		StartTime:    start,
		EndTime:      end,
		LocationID:   locationID,
		Requirements: requirements,
	}
	require.NoError(t, e.shiftRepo.Create(shift))
	return shift
}

func req(roleID uint, count int) models.ShiftRequirement {
	return models.ShiftRequirement{RoleID: roleID, Count: count}
}

// reloadMember reads the member row back from the store
func (e *testEnv) reloadMember(t *testing.T, id uint) *models.Member {
	t.Helper()
	member, err := e.memberRepo.GetByID(id)
	require.NoError(t, err)
	return member
}

// assignmentsOn returns every assignment row on the shift, creation order
func (e *testEnv) assignmentsOn(t *testing.T, shiftID uint) []models.Assignment {
	t.Helper()
	rows, err := e.assignRepo.ListByShift(shiftID)
	require.NoError(t, err)
	return rows
}
