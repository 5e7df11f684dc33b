package jobs

import (
	"carwash-booking/internal/data/repository"
	"carwash-booking/internal/usecase"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler owns the background jobs: hourly reminders for upcoming
// washes, a sweeper that cancels stale pending bookings, and session
// table cleanup.
type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
}

func NewScheduler(repo *repository.Repository, notifier usecase.NotificationService, log *zap.Logger) *Scheduler {
	log = log.With(zap.String("component", "jobs"))

	c := cron.New()

	reminder := newReminderJob(repo, notifier, log)
	sweeper := newSweeperJob(repo, notifier, log)
	sessions := newSessionCleanupJob(repo, log)

	c.AddFunc("*/5 * * * *", reminder.Run)
	c.AddFunc("*/10 * * * *", sweeper.Run)
	c.AddFunc("0 3 * * *", sessions.Run)

	return &Scheduler{cron: c, log: log}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Background jobs started")
}

// Stop waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Background jobs stopped")
}
