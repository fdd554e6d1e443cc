package services

import (
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"crewshift/internal/adapters/persistence/repositories"
)

// CronService runs scheduled background jobs: currently the daily
// next-day shift reminder
type CronService struct {
	cron       *cron.Cron
	shiftRepo  *repositories.ShiftRepository
	assignRepo *repositories.AssignmentRepository
	notify     *NotificationService
}

// NewCronService creates a new cron service
func NewCronService(
	shiftRepo *repositories.ShiftRepository,
	assignRepo *repositories.AssignmentRepository,
	notify *NotificationService,
) *CronService {
	return &CronService{
		cron:       cron.New(),
		shiftRepo:  shiftRepo,
		assignRepo: assignRepo,
		notify:     notify,
	}
}

// Start registers the jobs and launches the scheduler
func (s *CronService) Start(reminderSpec string) error {
	if _, err := s.cron.AddFunc(reminderSpec, s.sendShiftReminders); err != nil {
		return err
	}
	s.cron.Start()
	log.Infof("🚀 CronService started [reminders: %s]", reminderSpec)
	return nil
}

// Stop stops the scheduler, waiting for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("🛑 CronService stopped")
}

// sendShiftReminders notifies every member actively assigned to one of
// tomorrow's shifts
func (s *CronService) sendShiftReminders() {
	tomorrow := time.Now().AddDate(0, 0, 1).Truncate(24 * time.Hour)

	shifts, err := s.shiftRepo.ListByDay(tomorrow)
	if err != nil {
		log.WithError(err).Error("reminder query failed")
		return
	}

	sent := 0
	for i := range shifts {
		assignments, err := s.assignRepo.ListActiveByShift(shifts[i].ID)
		if err != nil {
			log.WithField("shift_id", shifts[i].ID).WithError(err).Error("reminder query failed")
			continue
		}
		for _, a := range assignments {
			s.notify.ShiftReminder(a.MemberID, &shifts[i])
			sent++
		}
	}

	if sent > 0 {
		log.Infof("📅 Sent %d shift reminders for tomorrow", sent)
	}
}
